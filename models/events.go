package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleCompletedEvent is published after a checkout commits.
type SaleCompletedEvent struct {
	Event      string          `json:"event"` // "sale.completed"
	SaleID     string          `json:"sale_id"`
	SessionID  string          `json:"session_id"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Items      []SaleItem      `json:"items"`
	Timestamp  time.Time       `json:"timestamp"`
}
