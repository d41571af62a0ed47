// Package http exposes the roulette REST API.
package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/yuuhLKT/roulette-api/internal/metrics"
	"github.com/yuuhLKT/roulette-api/internal/modules/roulette/domain"
	"github.com/yuuhLKT/roulette-api/internal/modules/roulette/machine"
	"github.com/yuuhLKT/roulette-api/internal/modules/roulette/usecase"
	"github.com/yuuhLKT/roulette-api/pkg/logger"
)

// Handler handles roulette HTTP requests
type Handler struct {
	machine *machine.StateMachine
	userUC  *usecase.UserUseCase
	roundUC *usecase.RoundUseCase
}

// NewHandler creates a new roulette HTTP handler
func NewHandler(m *machine.StateMachine, userUC *usecase.UserUseCase, roundUC *usecase.RoundUseCase) *Handler {
	return &Handler{machine: m, userUC: userUC, roundUC: roundUC}
}

// RegisterRoutes registers the roulette API under the given router group
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bet", h.PlaceBet)
	rg.POST("/user", h.CreateUser)
	rg.POST("/user/:userId/balance", h.AddBalance)
	rg.GET("/users", h.GetAllUsers)
	rg.GET("/user/:userId", h.GetUser)
	rg.GET("/user/:userId/bets", h.GetUserBets)
	rg.DELETE("/user/:userId", h.DeleteUser)
	rg.GET("/round/:roundId", h.GetRound)
	rg.GET("/rounds", h.GetAllRounds)
}

type betRequest struct {
	UserID int64           `json:"userId" binding:"required"`
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Color  string          `json:"color" binding:"required"`
}

type betResponse struct {
	ID        int64            `json:"id"`
	UserID    int64            `json:"userId"`
	RoundID   int64            `json:"roundId"`
	Amount    decimal.Decimal  `json:"amount"`
	Color     domain.Color     `json:"color"`
	Status    domain.BetStatus `json:"status"`
	Timestamp time.Time        `json:"timestamp"`
	Winnings  *decimal.Decimal `json:"winnings"`
}

func toBetResponse(bet *domain.Bet) betResponse {
	resp := betResponse{
		ID:        bet.ID,
		UserID:    bet.UserID,
		RoundID:   bet.RoundID,
		Amount:    bet.Amount,
		Color:     bet.Color,
		Status:    bet.Status,
		Timestamp: bet.PlacedAt,
	}
	if bet.Winnings.Valid {
		w := bet.Winnings.Decimal
		resp.Winnings = &w
	}
	return resp
}

type createUserRequest struct {
	Username string          `json:"username" binding:"required"`
	Balance  decimal.Decimal `json:"balance"`
}

type addBalanceRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// PlaceBet handles POST /bet
func (h *Handler) PlaceBet(c *gin.Context) {
	started := time.Now()
	ctx := c.Request.Context()

	var req betRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.RecordBet("fail", "unknown", started)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	bet, err := h.machine.PlaceBet(ctx, req.UserID, req.Amount, domain.Color(req.Color))
	if err != nil {
		metrics.RecordBet("fail", req.Color, started)
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		case errors.Is(err, domain.ErrInsufficientBalance):
			c.JSON(http.StatusBadRequest, gin.H{"error": "insufficient balance"})
		default:
			logger.Warn(ctx).Err(err).Int64("user_id", req.UserID).Msg("bet rejected")
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	metrics.RecordBet("success", req.Color, started)
	c.JSON(http.StatusCreated, toBetResponse(bet))
}

// CreateUser handles POST /user
func (h *Handler) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.userUC.CreateUser(c.Request.Context(), req.Username, req.Balance)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, user)
}

// AddBalance handles POST /user/:userId/balance
func (h *Handler) AddBalance(c *gin.Context) {
	userID, ok := h.pathID(c, "userId")
	if !ok {
		return
	}

	var req addBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.userUC.AddBalance(c.Request.Context(), userID, req.Amount)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetUser handles GET /user/:userId
func (h *Handler) GetUser(c *gin.Context) {
	userID, ok := h.pathID(c, "userId")
	if !ok {
		return
	}

	user, err := h.userUC.GetUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetAllUsers handles GET /users
func (h *Handler) GetAllUsers(c *gin.Context) {
	users, err := h.userUC.GetAllUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetUserBets handles GET /user/:userId/bets
func (h *Handler) GetUserBets(c *gin.Context) {
	userID, ok := h.pathID(c, "userId")
	if !ok {
		return
	}

	bets, err := h.userUC.GetUserBets(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	resp := make([]betResponse, 0, len(bets))
	for _, bet := range bets {
		resp = append(resp, toBetResponse(bet))
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteUser handles DELETE /user/:userId
func (h *Handler) DeleteUser(c *gin.Context) {
	userID, ok := h.pathID(c, "userId")
	if !ok {
		return
	}

	if err := h.userUC.DeleteUser(c.Request.Context(), userID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.Status(http.StatusNoContent)
}

// GetRound handles GET /round/:roundId
func (h *Handler) GetRound(c *gin.Context) {
	roundID, ok := h.pathID(c, "roundId")
	if !ok {
		return
	}

	snapshot, err := h.roundUC.GetRound(c.Request.Context(), roundID)
	if err != nil {
		if errors.Is(err, domain.ErrRoundNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "round not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// GetAllRounds handles GET /rounds
func (h *Handler) GetAllRounds(c *gin.Context) {
	rounds, err := h.roundUC.GetAllRounds(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, rounds)
}

func (h *Handler) pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}
