package storage

import "github.com/sherm18/ThriveOS/internal"

// Repositories bundles the three repository views a backend provides.
type Repositories struct {
	Entries EntryRepository
	Badges  BadgeStateRepository
	Users   UserRepository
	Closer  interface{ Close() error }
}

func NewFileRepositories(entriesFile, usersFile, badgesFile string, logger internal.Logger) (*Repositories, error) {
	storage, err := NewFileStorage(entriesFile, usersFile, badgesFile, logger)
	if err != nil {
		return nil, err
	}
	return &Repositories{Entries: storage, Badges: storage, Users: storage, Closer: storage}, nil
}

func NewPostgresRepositories(dsn string, logger internal.Logger) (*Repositories, error) {
	storage, err := NewPostgresStorage(dsn, logger)
	if err != nil {
		return nil, err
	}
	return &Repositories{Entries: storage, Badges: storage, Users: storage, Closer: storage}, nil
}

func NewSQLiteRepositories(dir string, logger internal.Logger) (*Repositories, error) {
	storage, err := NewSQLiteStorage(dir, logger)
	if err != nil {
		return nil, err
	}
	return &Repositories{Entries: storage, Badges: storage, Users: storage, Closer: storage}, nil
}
