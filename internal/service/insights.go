package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/sherm18/ThriveOS/internal"
	"github.com/sherm18/ThriveOS/internal/badge"
	"github.com/sherm18/ThriveOS/internal/stats"
	"github.com/sherm18/ThriveOS/internal/storage"
)

// CalculateSleepStats recomputes the owner's aggregate stats from their
// full history on every call.
func CalculateSleepStats(ctx context.Context, entryRepo storage.EntryRepository, user *internal.User) (internal.SleepStats, error) {
	entries, err := entryRepo.ListEntries(ctx, user.ID)
	if err != nil {
		return internal.SleepStats{}, err
	}
	return stats.Compute(entries), nil
}

// BadgeCollection is the evaluated catalog for one user, split into
// earned and still-in-progress badges, plus the ids earned by this very
// evaluation (for one-time notifications).
type BadgeCollection struct {
	Earned      []badge.Badge `json:"earned"`
	InProgress  []badge.Badge `json:"in_progress"`
	NewlyEarned []string      `json:"newly_earned,omitempty"`
}

// EvaluateBadges runs the catalog over the user's entries, merges with the
// persisted badge state (carrying earned dates forward) and persists the
// merged result.
func EvaluateBadges(ctx context.Context, entryRepo storage.EntryRepository, badgeRepo storage.BadgeStateRepository, user *internal.User, now time.Time) (*BadgeCollection, error) {
	entries, err := entryRepo.ListEntries(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	prev, err := badgeRepo.GetBadgeStates(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	merged, newlyEarned := badge.Merge(prev, badge.Evaluate(entries), now)
	if err := badgeRepo.SaveBadgeStates(ctx, user.ID, merged); err != nil {
		return nil, err
	}

	earned, unearned := badge.Collection(merged)
	return &BadgeCollection{Earned: earned, InProgress: unearned, NewlyEarned: newlyEarned}, nil
}

type LeaderboardEntry struct {
	Rank   int                 `json:"rank"`
	UserID string              `json:"user_id"`
	Name   string              `json:"name"`
	Stats  internal.SleepStats `json:"stats"`
}

// CalculateLeaderboard ranks the user and their friends by average score.
// Friends that no longer resolve to a user are skipped.
func CalculateLeaderboard(ctx context.Context, entryRepo storage.EntryRepository, userRepo storage.UserRepository, user *internal.User) ([]LeaderboardEntry, error) {
	members := []*internal.User{user}
	for _, friendID := range user.Friends {
		friend, err := userRepo.GetUser(ctx, friendID)
		if err != nil {
			if errors.Is(err, internal.ErrNotFound) {
				continue
			}
			return nil, err
		}
		members = append(members, friend)
	}

	board := make([]LeaderboardEntry, 0, len(members))
	for _, m := range members {
		entries, err := entryRepo.ListEntries(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		board = append(board, LeaderboardEntry{
			UserID: m.ID,
			Name:   m.Name,
			Stats:  stats.Compute(entries),
		})
	}

	sort.SliceStable(board, func(i, j int) bool {
		if board[i].Stats.AverageScore != board[j].Stats.AverageScore {
			return board[i].Stats.AverageScore > board[j].Stats.AverageScore
		}
		return board[i].Stats.TotalNights > board[j].Stats.TotalNights
	})
	for i := range board {
		board[i].Rank = i + 1
	}
	return board, nil
}
