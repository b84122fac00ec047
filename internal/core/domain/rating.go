package domain

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

// Rating records a single user's score for a single store. At most one Rating
// exists per (UserID, StoreID) pair; resubmission replaces the value in place
// and leaves CreatedAt untouched.
type Rating struct {
	UserID    int64     `json:"user_id"`
	StoreID   int64     `json:"store_id"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

// ValidRatingValue reports whether v is inside the allowed 1..5 range.
func ValidRatingValue(v int) bool {
	return v >= MinRating && v <= MaxRating
}
