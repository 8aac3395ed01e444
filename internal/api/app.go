package api

import (
	"github.com/sherm18/ThriveOS/internal"
	"github.com/sherm18/ThriveOS/internal/storage"
)

type App interface {
	Logger() internal.Logger
	EntryRepo() storage.EntryRepository
	BadgeRepo() storage.BadgeStateRepository
	UserRepo() storage.UserRepository
}
