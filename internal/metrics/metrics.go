// Package metrics exposes prometheus instruments for the roulette game.
package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	betTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roulette_bet_requests_total",
			Help: "Total bet requests by result and color",
		},
		[]string{"result", "color"},
	)

	betDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "roulette_bet_request_duration_ms",
			Help:    "Bet request duration in milliseconds",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		},
		[]string{"result"},
	)

	settlementTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roulette_rounds_settled_total",
			Help: "Total settled rounds by winning color",
		},
		[]string{"winning_color"},
	)

	settlementBets = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "roulette_bets_settled_total",
			Help: "Total bets resolved during settlement",
		},
	)

	settlementDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "roulette_settlement_duration_ms",
			Help:    "Round settlement duration in milliseconds",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		},
	)

	subscribers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "roulette_ws_subscribers",
			Help: "Currently connected snapshot subscribers",
		},
	)
)

// RecordBet records business metrics for a bet request.
// result should be "success" or "fail"; color is normalized to lower-case.
func RecordBet(result, color string, started time.Time) {
	res := result
	if res != "success" {
		res = "fail"
	}
	betTotal.WithLabelValues(res, strings.ToLower(color)).Inc()
	betDuration.WithLabelValues(res).Observe(float64(time.Since(started).Milliseconds()))
}

// RecordSettlement records a completed round settlement
func RecordSettlement(winningColor string, bets int, started time.Time) {
	settlementTotal.WithLabelValues(strings.ToLower(winningColor)).Inc()
	settlementBets.Add(float64(bets))
	settlementDuration.Observe(float64(time.Since(started).Milliseconds()))
}

// SubscriberConnected increments the live subscriber gauge
func SubscriberConnected() {
	subscribers.Inc()
}

// SubscriberDisconnected decrements the live subscriber gauge
func SubscriberDisconnected() {
	subscribers.Dec()
}
