package models

// Budget is a spending ceiling for one (category, month) pair.
// The pair is unique per user.
type Budget struct {
	ID          int     `json:"id"`
	UserID      int     `json:"user_id"`
	Category    string  `json:"category"`
	LimitAmount float64 `json:"limit_amount"` // always > 0
	Month       string  `json:"month"`        // YYYY-MM
}
