package storage

import (
	"context"

	"github.com/sherm18/ThriveOS/internal"
)

type EntryRepository interface {
	SaveEntry(ctx context.Context, entry *internal.SleepEntry) error
	GetEntry(ctx context.Context, id string) (*internal.SleepEntry, error)
	UpdateEntry(ctx context.Context, entry *internal.SleepEntry) error
	DeleteEntry(ctx context.Context, id string) error
	ListEntries(ctx context.Context, ownerID string) ([]internal.SleepEntry, error)
}

type BadgeStateRepository interface {
	GetBadgeStates(ctx context.Context, ownerID string) ([]internal.BadgeState, error)
	SaveBadgeStates(ctx context.Context, ownerID string, states []internal.BadgeState) error
}

type UserRepository interface {
	GetUserByToken(ctx context.Context, token string) (*internal.User, error)
	GetUser(ctx context.Context, id string) (*internal.User, error)
}
