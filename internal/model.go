package internal

import "time"

type Feeling string

const (
	FeelingTerrible Feeling = "terrible"
	FeelingTired    Feeling = "tired"
	FeelingOkay     Feeling = "okay"
	FeelingGood     Feeling = "good"
	FeelingAmazing  Feeling = "amazing"
)

type User struct {
	ID      string   `json:"id"`
	Token   string   `json:"token"`
	Name    string   `json:"name"`
	Friends []string `json:"friends,omitempty"`
}

type SleepEntry struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Date      string    `json:"date"`     // YYYY-MM-DD, the night the entry represents
	Bedtime   string    `json:"bedtime"`  // HH:MM, 24h
	Waketime  string    `json:"waketime"` // HH:MM, 24h
	Quality   int       `json:"quality"`  // 1–10 scale
	Feeling   Feeling   `json:"feeling"`
	Duration  float64   `json:"duration"` // hours, derived
	Score     int       `json:"score"`    // 0–100, derived
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SleepStats struct {
	TotalNights   int     `json:"total_nights"`
	AverageScore  float64 `json:"average_score"`
	CurrentStreak int     `json:"current_streak"`
	BestStreak    int     `json:"best_streak"`
}

// BadgeState is a user's persisted evaluation of one catalog badge.
// EarnedDate is stamped the first time Earned flips true and never cleared.
type BadgeState struct {
	BadgeID    string  `json:"badge_id"`
	Earned     bool    `json:"earned"`
	Progress   float64 `json:"progress"` // 0–100
	EarnedDate string  `json:"earned_date,omitempty"`
}
