package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"fruitfriends/internal/models"

	"go.uber.org/zap"
)

const backupVersion = "1.0"

// BackupData is the JSON document written by Export and read by Import
type BackupData struct {
	Version    string                  `json:"version"`
	ExportedAt time.Time               `json:"exported_at"`
	Progress   []models.ProgressRecord `json:"progress"`
	Feedback   []models.Feedback       `json:"feedback"`
}

// BackupService moves stored progress and feedback in and out of JSON files
type BackupService struct {
	progress *ProgressService
	feedback *FeedbackService
	log      *zap.Logger
	now      func() time.Time
}

// NewBackupService creates a new backup service
func NewBackupService(progress *ProgressService, feedback *FeedbackService, log *zap.Logger) *BackupService {
	return &BackupService{
		progress: progress,
		feedback: feedback,
		log:      log,
		now:      time.Now,
	}
}

// Export writes every stored record to w as indented JSON
func (s *BackupService) Export(ctx context.Context, w io.Writer) (*BackupData, error) {
	s.log.Info("Starting export")

	backup := &BackupData{
		Version:    backupVersion,
		ExportedAt: s.now(),
	}

	var err error
	if backup.Progress, err = s.progress.ListProgress(ctx); err != nil {
		return nil, fmt.Errorf("failed to export progress: %w", err)
	}
	if backup.Feedback, err = s.feedback.List(ctx); err != nil {
		return nil, fmt.Errorf("failed to export feedback: %w", err)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return nil, fmt.Errorf("failed to encode backup: %w", err)
	}

	s.log.Info("Export complete",
		zap.Int("progress", len(backup.Progress)),
		zap.Int("feedback", len(backup.Feedback)),
	)
	return backup, nil
}

// Import reads a backup from r and writes its records, replacing existing
// records with the same key. Records not in the backup are left alone.
func (s *BackupService) Import(ctx context.Context, r io.Reader) (*BackupData, error) {
	var backup BackupData
	if err := json.NewDecoder(r).Decode(&backup); err != nil {
		return nil, fmt.Errorf("failed to decode backup: %w", err)
	}
	if backup.Version != backupVersion {
		return nil, fmt.Errorf("unsupported backup version: %q", backup.Version)
	}

	// Check both sections up front so a bad entry in either writes nothing
	if err := checkImportable(backup.Progress); err != nil {
		return nil, fmt.Errorf("invalid progress: %w", err)
	}
	if err := checkRestorable(backup.Feedback); err != nil {
		return nil, fmt.Errorf("invalid feedback: %w", err)
	}

	s.log.Info("Starting import",
		zap.String("version", backup.Version),
		zap.Time("exported_at", backup.ExportedAt),
	)

	if _, err := s.progress.ImportProgress(ctx, backup.Progress); err != nil {
		return nil, fmt.Errorf("failed to import progress: %w", err)
	}
	if _, err := s.feedback.Restore(ctx, backup.Feedback); err != nil {
		return nil, fmt.Errorf("failed to import feedback: %w", err)
	}

	s.log.Info("Import complete",
		zap.Int("progress", len(backup.Progress)),
		zap.Int("feedback", len(backup.Feedback)),
	)
	return &backup, nil
}
