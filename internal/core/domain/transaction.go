package domain

import "time"

// Transaction is a single customer purchase used as input to the reward
// calculation.
type Transaction struct {
	ID         string    `json:"id"`
	CustomerID int       `json:"customer_id"`
	Amount     float64   `json:"amount"`
	Date       time.Time `json:"date"`
}

// CustomerRewards is the computed reward summary for one customer over the
// reporting window. Monthly keys are English month names ("January", ...).
type CustomerRewards struct {
	CustomerID        int            `json:"customer_id"`
	MonthlyRewards    map[string]int `json:"monthly_rewards"`
	TotalRewardPoints int            `json:"total_reward_points"`
}
