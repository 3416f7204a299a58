package orders

import (
	"time"
)

// Order is one accepted Mini-App submission. It lives for a single request.
type Order struct {
	ID        string
	UserID    int64
	Receipt   Receipt
	CreatedAt time.Time
}

func NewOrder(userID int64, receipt Receipt, now time.Time) Order {
	return Order{
		ID:        generateOrderID(now),
		UserID:    userID,
		Receipt:   receipt,
		CreatedAt: now,
	}
}

func generateOrderID(now time.Time) string {
	return now.Format("20060102150405")
}
