// Package memory provides in-memory ledger repositories, used by tests and
// by deployments that run without a database.
package memory

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/yuuhLKT/roulette-api/internal/modules/roulette/domain"
)

// UserRepository implements domain.UserRepository in memory
type UserRepository struct {
	mu     sync.Mutex
	users  map[int64]*domain.User
	nextID int64
}

// NewUserRepository creates a new memory user repository
func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[int64]*domain.User)}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == 0 {
		r.nextID++
		user.ID = r.nextID
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, userID int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *UserRepository) GetAll(ctx context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users := make([]*domain.User, 0, len(r.users))
	for id := int64(1); id <= r.nextID; id++ {
		if user, ok := r.users[id]; ok {
			clone := *user
			users = append(users, &clone)
		}
	}
	return users, nil
}

// AdjustBalance applies the delta under the repository lock so the
// read-modify-write never interleaves with another adjustment.
func (r *UserRepository) AdjustBalance(ctx context.Context, userID int64, delta decimal.Decimal) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	user.Balance = user.Balance.Add(delta)
	clone := *user
	return &clone, nil
}

func (r *UserRepository) Delete(ctx context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[userID]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, userID)
	return nil
}
