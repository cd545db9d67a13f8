package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"fruitfriends/internal/catalog"
	"fruitfriends/internal/models"
	"fruitfriends/internal/storage"
	"fruitfriends/internal/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const feedbackKeyPrefix = "feedback_"

// FeedbackService stores the kids' feedback form submissions
type FeedbackService struct {
	store storage.Store
	log   *zap.Logger
	now   func() time.Time
	newID func() string
}

// NewFeedbackService creates a new feedback service
func NewFeedbackService(store storage.Store, log *zap.Logger) *FeedbackService {
	return &FeedbackService{
		store: store,
		log:   log,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Submit validates and stores a feedback entry. ID and SubmittedAt are
// assigned here; any values the caller set are ignored.
func (s *FeedbackService) Submit(ctx context.Context, f models.Feedback) (*models.Feedback, error) {
	f.ChildName = strings.TrimSpace(f.ChildName)
	f.Comments = strings.TrimSpace(f.Comments)

	if err := validation.ValidateFeedback(f); err != nil {
		return nil, err
	}
	if _, ok := catalog.GetByID(f.FavoriteFruit); !ok {
		return nil, validation.ValidationError{Field: "favoriteFruit", Message: "please choose a fruit from the list"}
	}

	f.ID = s.newID()
	f.SubmittedAt = s.now()

	if err := storage.SetJSON(ctx, s.store, feedbackKeyPrefix+f.ID, &f); err != nil {
		return nil, fmt.Errorf("failed to save feedback: %w", err)
	}

	s.log.Info("Feedback submitted",
		zap.String("id", f.ID),
		zap.String("favorite_fruit", f.FavoriteFruit),
		zap.Int("rating", f.EnjoymentRating),
	)

	return &f, nil
}

// List returns all stored feedback, oldest first. Malformed entries are skipped.
func (s *FeedbackService) List(ctx context.Context) ([]models.Feedback, error) {
	keys, err := s.store.Keys(ctx, feedbackKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback keys: %w", err)
	}

	entries := make([]models.Feedback, 0, len(keys))
	for _, key := range keys {
		var f models.Feedback
		if err := storage.GetJSON(ctx, s.store, key, &f); err != nil {
			var malformed *storage.MalformedError
			if errors.As(err, &malformed) {
				s.log.Warn("Skipping malformed feedback", zap.String("key", key), zap.Error(err))
				continue
			}
			return nil, fmt.Errorf("failed to read %s: %w", key, err)
		}
		entries = append(entries, f)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].SubmittedAt.Before(entries[j].SubmittedAt)
	})

	return entries, nil
}

// Restore writes entries back under their existing ids, as read from a
// backup. Nothing is written if any entry lacks an id.
func (s *FeedbackService) Restore(ctx context.Context, entries []models.Feedback) (int, error) {
	if err := checkRestorable(entries); err != nil {
		return 0, err
	}

	restored := 0
	for _, f := range entries {
		if err := storage.SetJSON(ctx, s.store, feedbackKeyPrefix+f.ID, &f); err != nil {
			return restored, fmt.Errorf("failed to restore feedback %s: %w", f.ID, err)
		}
		restored++
	}
	return restored, nil
}

func checkRestorable(entries []models.Feedback) error {
	for i, f := range entries {
		if strings.TrimSpace(f.ID) == "" {
			return fmt.Errorf("feedback entry %d has no id", i)
		}
	}
	return nil
}
