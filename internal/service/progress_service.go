package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"fruitfriends/internal/models"
	"fruitfriends/internal/storage"
	"fruitfriends/internal/validation"

	"go.uber.org/zap"
)

const progressKeyPrefix = "progress_"

// ProgressKey returns the storage key of a child's progress record
func ProgressKey(childName string) string {
	return progressKeyPrefix + childName
}

// loadStatus says how a progress read ended
type loadStatus int

const (
	loadFound loadStatus = iota
	loadAbsent
	loadMalformed
	loadFailed
)

// loadResult is the outcome of reading a progress record. record is always
// usable; it is a fresh default unless status is loadFound.
type loadResult struct {
	record *models.ProgressRecord
	status loadStatus
	err    error
}

// ProgressService owns the per-child progress records. None of its quiz-facing
// methods return storage errors: failures are logged and a best-effort
// in-memory record is returned instead.
type ProgressService struct {
	store storage.Store
	log   *zap.Logger
	now   func() time.Time
}

// NewProgressService creates a new progress service over store
func NewProgressService(store storage.Store, log *zap.Logger) *ProgressService {
	return &ProgressService{
		store: store,
		log:   log,
		now:   time.Now,
	}
}

// GetProgress returns the stored record for childName, or a zeroed record
// (not persisted) if there is none
func (s *ProgressService) GetProgress(ctx context.Context, childName string) *models.ProgressRecord {
	return s.load(ctx, childName).record
}

// UpdateProgress records one quiz attempt and returns the updated record
func (s *ProgressService) UpdateProgress(ctx context.Context, childName string, isCorrect bool, fruitID string) *models.ProgressRecord {
	res := s.load(ctx, childName)
	progress := res.record

	progress.TotalAttempts++
	if isCorrect {
		progress.CorrectAnswers++
		progress.CompletedQuizzes++
	}
	if !progress.HasFruit(fruitID) {
		progress.FavoriteFruits = append(progress.FavoriteFruits, fruitID)
	}
	progress.LastPlayed = s.now()

	// Writing after a failed read would replace a record we could not see
	if res.status == loadFailed {
		s.log.Warn("Skipping progress save after failed read",
			zap.String("child_name", childName),
			zap.Error(res.err),
		)
		return progress
	}

	if err := storage.SetJSON(ctx, s.store, ProgressKey(childName), progress); err != nil {
		s.log.Error("Failed to save progress",
			zap.String("key", ProgressKey(childName)),
			zap.Error(err),
		)
	}

	return progress
}

// GetAccuracy returns the child's rounded percentage of correct attempts
func (s *ProgressService) GetAccuracy(ctx context.Context, childName string) int {
	return Accuracy(s.GetProgress(ctx, childName))
}

// Accuracy is round(correct / total * 100), or 0 when nothing was attempted
func Accuracy(p *models.ProgressRecord) int {
	if p == nil || p.TotalAttempts == 0 {
		return 0
	}
	return int(math.Round(float64(p.CorrectAnswers) / float64(p.TotalAttempts) * 100))
}

// ListProgress returns every stored record in key order. Unlike the quiz
// methods it reports storage errors, since it only serves maintenance tools.
func (s *ProgressService) ListProgress(ctx context.Context) ([]models.ProgressRecord, error) {
	keys, err := s.store.Keys(ctx, progressKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list progress keys: %w", err)
	}

	records := make([]models.ProgressRecord, 0, len(keys))
	for _, key := range keys {
		childName := strings.TrimPrefix(key, progressKeyPrefix)
		res := s.load(ctx, childName)
		switch res.status {
		case loadFound:
			records = append(records, *res.record)
		case loadFailed:
			return nil, fmt.Errorf("failed to read %s: %w", key, res.err)
		}
	}

	return records, nil
}

// ImportProgress writes records, replacing any existing ones for the same
// child. Every record is checked before the first write, so an invalid
// record leaves the store untouched. Records are normalized before writing.
// It returns how many were written.
func (s *ProgressService) ImportProgress(ctx context.Context, records []models.ProgressRecord) (int, error) {
	if err := checkImportable(records); err != nil {
		return 0, err
	}

	imported := 0
	for i := range records {
		record := records[i]
		normalize(&record, strings.TrimSpace(record.ChildName))

		if err := storage.SetJSON(ctx, s.store, ProgressKey(record.ChildName), &record); err != nil {
			return imported, fmt.Errorf("failed to import %s: %w", record.ChildName, err)
		}
		imported++
	}
	return imported, nil
}

func checkImportable(records []models.ProgressRecord) error {
	for i, record := range records {
		name := strings.TrimSpace(record.ChildName)
		if name == "" {
			return fmt.Errorf("record %d has no child name", i)
		}
		if err := validation.ValidateChildName(name); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}
	return nil
}

// load reads and normalizes a record, never failing
func (s *ProgressService) load(ctx context.Context, childName string) loadResult {
	key := ProgressKey(childName)

	var record models.ProgressRecord
	err := storage.GetJSON(ctx, s.store, key, &record)

	var malformed *storage.MalformedError
	switch {
	case err == nil:
		normalize(&record, childName)
		return loadResult{record: &record, status: loadFound}
	case errors.Is(err, storage.ErrNotFound):
		return loadResult{record: s.newRecord(childName), status: loadAbsent}
	case errors.As(err, &malformed):
		s.log.Warn("Discarding malformed progress record",
			zap.String("key", key),
			zap.Error(err),
		)
		return loadResult{record: s.newRecord(childName), status: loadMalformed, err: err}
	default:
		s.log.Error("Failed to read progress",
			zap.String("key", key),
			zap.Error(err),
		)
		return loadResult{record: s.newRecord(childName), status: loadFailed, err: err}
	}
}

func (s *ProgressService) newRecord(childName string) *models.ProgressRecord {
	return &models.ProgressRecord{
		ChildName:      childName,
		FavoriteFruits: []string{},
		LastPlayed:     s.now(),
	}
}

// normalize restores the record invariants on data read from outside:
// non-negative counters, correct <= total, no duplicate fruit ids
func normalize(p *models.ProgressRecord, childName string) {
	p.ChildName = childName

	if p.TotalAttempts < 0 {
		p.TotalAttempts = 0
	}
	if p.CorrectAnswers < 0 {
		p.CorrectAnswers = 0
	}
	if p.CompletedQuizzes < 0 {
		p.CompletedQuizzes = 0
	}
	if p.CorrectAnswers > p.TotalAttempts {
		p.CorrectAnswers = p.TotalAttempts
	}
	if p.CompletedQuizzes > p.TotalAttempts {
		p.CompletedQuizzes = p.TotalAttempts
	}

	fruits := make([]string, 0, len(p.FavoriteFruits))
	seen := make(map[string]bool, len(p.FavoriteFruits))
	for _, id := range p.FavoriteFruits {
		if seen[id] {
			continue
		}
		seen[id] = true
		fruits = append(fruits, id)
	}
	p.FavoriteFruits = fruits
}
