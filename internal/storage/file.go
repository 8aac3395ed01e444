package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/sherm18/ThriveOS/internal"
)

type FileStorage struct {
	entries         map[string]*internal.SleepEntry   // id -> entry
	ownerEntryIndex map[string][]*internal.SleepEntry // ownerID -> entries (sorted descending by date)
	badgeStates     map[string][]internal.BadgeState  // ownerID -> persisted badge states
	users           map[string]*internal.User         // token -> user
	usersByID       map[string]*internal.User
	mu              sync.RWMutex
	entriesFile     string
	usersFile       string
	badgesFile      string
	saveEntriesChan chan struct{}
	saveBadgesChan  chan struct{}
	shutdownChan    chan struct{}
	saveDelay       time.Duration
	logger          internal.Logger
}

func NewFileStorage(entriesFile, usersFile, badgesFile string, logger internal.Logger) (*FileStorage, error) {
	s := &FileStorage{
		entries:         make(map[string]*internal.SleepEntry),
		ownerEntryIndex: make(map[string][]*internal.SleepEntry),
		badgeStates:     make(map[string][]internal.BadgeState),
		users:           make(map[string]*internal.User),
		usersByID:       make(map[string]*internal.User),
		entriesFile:     entriesFile,
		usersFile:       usersFile,
		badgesFile:      badgesFile,
		saveEntriesChan: make(chan struct{}, 1),
		saveBadgesChan:  make(chan struct{}, 1),
		shutdownChan:    make(chan struct{}),
		saveDelay:       500 * time.Millisecond,
		logger:          logger,
	}

	if err := s.loadUsers(); err != nil {
		logger.Errorf("storage: failed to load users: %v", err)
		return nil, internal.NewStoreError("load users", err)
	}
	if err := s.loadEntries(); err != nil {
		logger.Errorf("storage: failed to load sleep entries: %v", err)
		return nil, internal.NewStoreError("load entries", err)
	}
	if err := s.loadBadgeStates(); err != nil {
		logger.Errorf("storage: failed to load badge states: %v", err)
		return nil, internal.NewStoreError("load badge states", err)
	}

	go s.saveEntriesWorker()
	go s.saveBadgesWorker()

	return s, nil
}

func (s *FileStorage) loadUsers() error {
	file, err := os.Open(s.usersFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	var users []*internal.User
	if err := json.NewDecoder(file).Decode(&users); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range users {
		s.users[u.Token] = u
		s.usersByID[u.ID] = u
	}
	return nil
}

func (s *FileStorage) loadEntries() error {
	file, err := os.Open(s.entriesFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	var entries []*internal.SleepEntry
	if err := json.NewDecoder(file).Decode(&entries); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range entries {
		s.entries[e.ID] = e
		s.ownerEntryIndex[e.OwnerID] = append(s.ownerEntryIndex[e.OwnerID], e)
	}

	// Sort each owner's entries descending by date
	for ownerID := range s.ownerEntryIndex {
		sortEntryIndex(s.ownerEntryIndex[ownerID])
	}

	return nil
}

func (s *FileStorage) loadBadgeStates() error {
	file, err := os.Open(s.badgesFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	var states map[string][]internal.BadgeState
	if err := json.NewDecoder(file).Decode(&states); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if states != nil {
		s.badgeStates = states
	}
	return nil
}

func sortEntryIndex(entries []*internal.SleepEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date > entries[j].Date
	})
}

func atomicWriteFileJSON(filePath string, data interface{}) error {
	tempFile := filePath + ".tmp"
	f, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}

	return os.Rename(tempFile, filePath)
}

func (s *FileStorage) saveEntries() error {
	// Snapshot values, not pointers: the encode below runs outside the
	// lock and UpdateEntry writes through the stored pointers.
	s.mu.RLock()
	entries := make([]internal.SleepEntry, 0, len(s.entries))
	for _, e := range s.entries {
		entries = append(entries, *e)
	}
	s.mu.RUnlock()

	return atomicWriteFileJSON(s.entriesFile, entries)
}

func (s *FileStorage) saveBadges() error {
	s.mu.RLock()
	states := make(map[string][]internal.BadgeState, len(s.badgeStates))
	for owner, sts := range s.badgeStates {
		states[owner] = sts
	}
	s.mu.RUnlock()

	return atomicWriteFileJSON(s.badgesFile, states)
}

// saveEntriesWorker batches save operations to avoid frequent disk writes
func (s *FileStorage) saveEntriesWorker() {
	timer := time.NewTimer(s.saveDelay)
	defer timer.Stop()

	for {
		select {
		case <-s.saveEntriesChan:
			timer.Reset(s.saveDelay)
		case <-timer.C:
			if err := s.saveEntries(); err != nil {
				s.logger.Errorf("storage: error saving sleep entries: %v", err)
			}
		case <-s.shutdownChan:
			return
		}
	}
}

func (s *FileStorage) saveBadgesWorker() {
	timer := time.NewTimer(s.saveDelay)
	defer timer.Stop()

	for {
		select {
		case <-s.saveBadgesChan:
			timer.Reset(s.saveDelay)
		case <-timer.C:
			if err := s.saveBadges(); err != nil {
				s.logger.Errorf("storage: error saving badge states: %v", err)
			}
		case <-s.shutdownChan:
			return
		}
	}
}

func (s *FileStorage) Close() error {
	close(s.shutdownChan)

	// Save pending data synchronously on shutdown
	if err := s.saveEntries(); err != nil {
		return err
	}
	if err := s.saveBadges(); err != nil {
		return err
	}
	return nil
}

// --- EntryRepository ---
func (s *FileStorage) SaveEntry(ctx context.Context, entry *internal.SleepEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[entry.ID] = entry
	s.ownerEntryIndex[entry.OwnerID] = append(s.ownerEntryIndex[entry.OwnerID], entry)
	sortEntryIndex(s.ownerEntryIndex[entry.OwnerID])

	select {
	case s.saveEntriesChan <- struct{}{}:
	default:
	}
	return nil
}

func (s *FileStorage) GetEntry(ctx context.Context, id string) (*internal.SleepEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[id]
	if !ok {
		return nil, fmt.Errorf("sleep entry %s: %w", id, internal.ErrNotFound)
	}
	cp := *e
	return &cp, nil
}

func (s *FileStorage) UpdateEntry(ctx context.Context, entry *internal.SleepEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.entries[entry.ID]
	if !ok {
		return fmt.Errorf("sleep entry %s: %w", entry.ID, internal.ErrNotFound)
	}
	*old = *entry
	sortEntryIndex(s.ownerEntryIndex[entry.OwnerID])

	select {
	case s.saveEntriesChan <- struct{}{}:
	default:
	}
	return nil
}

func (s *FileStorage) DeleteEntry(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return fmt.Errorf("sleep entry %s: %w", id, internal.ErrNotFound)
	}
	delete(s.entries, id)

	index := s.ownerEntryIndex[e.OwnerID]
	for i, existing := range index {
		if existing.ID == id {
			s.ownerEntryIndex[e.OwnerID] = append(index[:i], index[i+1:]...)
			break
		}
	}

	select {
	case s.saveEntriesChan <- struct{}{}:
	default:
	}
	return nil
}

func (s *FileStorage) ListEntries(ctx context.Context, ownerID string) ([]internal.SleepEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entriesPtr, ok := s.ownerEntryIndex[ownerID]
	if !ok {
		return []internal.SleepEntry{}, nil
	}
	entries := make([]internal.SleepEntry, len(entriesPtr))
	for i, e := range entriesPtr {
		entries[i] = *e
	}
	return entries, nil
}

// --- BadgeStateRepository ---
func (s *FileStorage) GetBadgeStates(ctx context.Context, ownerID string) ([]internal.BadgeState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	states := make([]internal.BadgeState, len(s.badgeStates[ownerID]))
	copy(states, s.badgeStates[ownerID])
	return states, nil
}

func (s *FileStorage) SaveBadgeStates(ctx context.Context, ownerID string, states []internal.BadgeState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]internal.BadgeState, len(states))
	copy(cp, states)
	s.badgeStates[ownerID] = cp

	select {
	case s.saveBadgesChan <- struct{}{}:
	default:
	}
	return nil
}

// --- UserRepository ---
func (s *FileStorage) GetUserByToken(ctx context.Context, token string) (*internal.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[token]
	if !ok {
		return nil, fmt.Errorf("user: %w", internal.ErrNotFound)
	}
	cp := *u
	return &cp, nil
}

func (s *FileStorage) GetUser(ctx context.Context, id string) (*internal.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.usersByID[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, internal.ErrNotFound)
	}
	cp := *u
	return &cp, nil
}

// --- Compile-time assertions ---
var _ EntryRepository = (*FileStorage)(nil)
var _ BadgeStateRepository = (*FileStorage)(nil)
var _ UserRepository = (*FileStorage)(nil)
