package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/sherm18/ThriveOS/internal"
	"github.com/sherm18/ThriveOS/internal/score"
	"github.com/sherm18/ThriveOS/internal/storage"
)

var validate = validator.New()

type SleepEntryRequest struct {
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	Bedtime  string `json:"bedtime" validate:"required"`
	Waketime string `json:"waketime" validate:"required"`
	Quality  int    `json:"quality" validate:"required,gte=1,lte=10"`
	Feeling  string `json:"feeling" validate:"required,oneof=terrible tired okay good amazing"`
}

func ValidateSleepEntryRequest(body *SleepEntryRequest) error {
	return validate.Struct(body)
}

// CreateEntry validates, computes duration/score and persists a new entry.
// One entry per owner per date: a second create for the same date is a
// validation failure, keeping the streak math honest.
func CreateEntry(ctx context.Context, entryRepo storage.EntryRepository, user *internal.User, body *SleepEntryRequest) (*internal.SleepEntry, error) {
	result, err := score.Compute(body.Bedtime, body.Waketime, body.Quality, internal.Feeling(body.Feeling))
	if err != nil {
		return nil, err
	}

	existing, err := entryRepo.ListEntries(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	for _, e := range existing {
		if e.Date == body.Date {
			return nil, internal.NewValidationError("an entry for " + body.Date + " already exists")
		}
	}

	now := time.Now()
	entry := &internal.SleepEntry{
		ID:        uuid.NewString(),
		OwnerID:   user.ID,
		Date:      body.Date,
		Bedtime:   body.Bedtime,
		Waketime:  body.Waketime,
		Quality:   body.Quality,
		Feeling:   internal.Feeling(body.Feeling),
		Duration:  result.Duration,
		Score:     result.Score,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := entryRepo.SaveEntry(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// UpdateEntry recomputes duration/score from the submitted fields and
// overwrites the stored entry. Entries belonging to another owner are
// indistinguishable from missing ones.
func UpdateEntry(ctx context.Context, entryRepo storage.EntryRepository, user *internal.User, id string, body *SleepEntryRequest) (*internal.SleepEntry, error) {
	entry, err := entryRepo.GetEntry(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry.OwnerID != user.ID {
		return nil, internal.ErrNotFound
	}

	result, err := score.Compute(body.Bedtime, body.Waketime, body.Quality, internal.Feeling(body.Feeling))
	if err != nil {
		return nil, err
	}

	// moving the entry must not collide with another night
	existing, err := entryRepo.ListEntries(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	for _, e := range existing {
		if e.Date == body.Date && e.ID != entry.ID {
			return nil, internal.NewValidationError("an entry for " + body.Date + " already exists")
		}
	}

	entry.Date = body.Date
	entry.Bedtime = body.Bedtime
	entry.Waketime = body.Waketime
	entry.Quality = body.Quality
	entry.Feeling = internal.Feeling(body.Feeling)
	entry.Duration = result.Duration
	entry.Score = result.Score
	entry.UpdatedAt = time.Now()

	if err := entryRepo.UpdateEntry(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func DeleteEntry(ctx context.Context, entryRepo storage.EntryRepository, user *internal.User, id string) error {
	entry, err := entryRepo.GetEntry(ctx, id)
	if err != nil {
		return err
	}
	if entry.OwnerID != user.ID {
		return internal.ErrNotFound
	}
	return entryRepo.DeleteEntry(ctx, id)
}
