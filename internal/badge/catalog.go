// Package badge evaluates a fixed achievement catalog against an owner's
// entry history. The catalog itself is immutable; per-user earned state
// lives in internal.BadgeState records owned by the caller.
package badge

import "github.com/sherm18/ThriveOS/internal"

type Category string

const (
	CategoryTiming      Category = "timing"
	CategoryConsistency Category = "consistency"
	CategoryQuality     Category = "quality"
	CategorySpecial     Category = "special"
)

// Tier is a cosmetic ranking label. It plays no part in rule evaluation.
type Tier string

const (
	TierBronze   Tier = "bronze"
	TierSilver   Tier = "silver"
	TierGold     Tier = "gold"
	TierPlatinum Tier = "platinum"
)

// Evaluation is the output of one rule over one entry history.
type Evaluation struct {
	BadgeID  string
	Earned   bool
	Progress float64 // 0–100, capped
}

// Definition is one row of the catalog. Check must be pure.
type Definition struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Category    Category
	Tier        Tier
	Check       func(entries []internal.SleepEntry) Evaluation
}

// Badge is a catalog definition merged with a user's evaluation state,
// the shape handed back to API callers.
type Badge struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
	Category    Category `json:"category"`
	Tier        Tier     `json:"tier"`
	Earned      bool     `json:"earned"`
	Progress    float64  `json:"progress"`
	EarnedDate  string   `json:"earned_date,omitempty"`
}

var catalog = []Definition{
	{
		ID:          "early_bird",
		Name:        "Early Bird",
		Description: "Sleep before 10:00 PM for 7 consecutive nights",
		Icon:        "🐦",
		Category:    CategoryTiming,
		Tier:        TierBronze,
		Check:       checkEarlyBird,
	},
	{
		ID:          "night_owl",
		Name:        "Night Owl",
		Description: "Consistently sleep after midnight for 10 nights",
		Icon:        "🦉",
		Category:    CategoryTiming,
		Tier:        TierBronze,
		Check:       checkNightOwl,
	},
	{
		ID:          "weekend_warrior",
		Name:        "Weekend Warrior",
		Description: "Score 80+ on both weekend days for 4 consecutive weekends",
		Icon:        "🏆",
		Category:    CategorySpecial,
		Tier:        TierSilver,
		Check:       checkWeekendWarrior,
	},
	{
		ID:          "consistent_sleeper",
		Name:        "Consistent Sleeper",
		Description: "Log sleep for 7 consecutive days",
		Icon:        "📅",
		Category:    CategoryConsistency,
		Tier:        TierBronze,
		Check:       streakCheck("consistent_sleeper", 7),
	},
	{
		ID:          "habit_master",
		Name:        "Habit Master",
		Description: "Log sleep for 30 consecutive days",
		Icon:        "🎯",
		Category:    CategoryConsistency,
		Tier:        TierGold,
		Check:       streakCheck("habit_master", 30),
	},
	{
		ID:          "sleep_champion",
		Name:        "Sleep Champion",
		Description: "Achieve a score of 90+ points",
		Icon:        "👑",
		Category:    CategoryQuality,
		Tier:        TierGold,
		Check:       checkSleepChampion,
	},
	{
		ID:          "quality_sleeper",
		Name:        "Quality Sleeper",
		Description: "Rate sleep quality 9+ for 5 consecutive nights",
		Icon:        "⭐",
		Category:    CategoryQuality,
		Tier:        TierSilver,
		Check:       checkQualitySleeper,
	},
	{
		ID:          "perfect_sleeper",
		Name:        "Perfect Sleeper",
		Description: "Achieve three 100-point scores",
		Icon:        "💎",
		Category:    CategoryQuality,
		Tier:        TierPlatinum,
		Check:       checkPerfectSleeper,
	},
	{
		ID:          "first_entry",
		Name:        "Sleep Tracker",
		Description: "Log your first sleep entry",
		Icon:        "🌙",
		Category:    CategorySpecial,
		Tier:        TierBronze,
		Check:       checkFirstEntry,
	},
	{
		ID:          "optimal_sleeper",
		Name:        "Optimal Sleeper",
		Description: "Sleep exactly 8 hours for 3 consecutive nights",
		Icon:        "🎪",
		Category:    CategoryTiming,
		Tier:        TierSilver,
		Check:       checkOptimalSleeper,
	},
}

// Catalog returns the badge definitions in evaluation order. Callers must
// not mutate the returned slice.
func Catalog() []Definition {
	return catalog
}
