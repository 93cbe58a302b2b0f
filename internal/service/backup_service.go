package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/alexanderramin/syllabus/internal/backup"
	"github.com/alexanderramin/syllabus/internal/db"
	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/alexanderramin/syllabus/internal/repository"
	"github.com/alexanderramin/syllabus/internal/state"
)

const (
	ImportSuccessMessage = "Data imported successfully! Your backup has been restored."
	ImportFailureMessage = "Failed to import data. Please check the file format."

	useCaseImport   = "backup.import"
	useCaseExport   = "backup.export"
	useCaseRollback = "backup.rollback"

	snapshotReasonImport = "pre-import"
)

// ImportResult is the banner shown after an import attempt.
type ImportResult struct {
	OK      bool
	Message string
}

// BackupService exports the tracker state and restores it from backup files.
// When a UnitOfWork is configured, the stored state is snapshotted before
// every import so it can be rolled back.
type BackupService struct {
	tracker  *Tracker
	uow      db.UnitOfWork
	keep     int
	observer UseCaseObserver
}

func NewBackupService(tracker *Tracker, uow db.UnitOfWork, keep int, observers ...UseCaseObserver) *BackupService {
	return &BackupService{
		tracker:  tracker,
		uow:      uow,
		keep:     keep,
		observer: useCaseObserverOrNoop(observers),
	}
}

// Export writes the current state as a backup document to w.
func (s *BackupService) Export(ctx context.Context, w io.Writer) (err error) {
	startedAt := time.Now()
	defer func() {
		s.observe(ctx, useCaseExport, startedAt, err, nil)
	}()

	data, err := backup.Marshal(backup.Export(s.tracker.State(), s.tracker.Now()))
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing backup: %w", err)
	}
	return nil
}

// ExportToDir writes a dated backup file into dir and returns its path.
func (s *BackupService) ExportToDir(ctx context.Context, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating backup directory: %w", err)
	}
	path := filepath.Join(dir, backup.FileName(s.tracker.Now()))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating backup file: %w", err)
	}
	if err := s.Export(ctx, f); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing backup file: %w", err)
	}
	return path, nil
}

// ImportFile reads path and restores it.
func (s *BackupService) ImportFile(ctx context.Context, path string) (ImportResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		s.observe(ctx, useCaseImport, time.Now(), err, map[string]any{"path": path})
		return ImportResult{Message: ImportFailureMessage}, fmt.Errorf("reading backup: %w", err)
	}
	return s.ImportBytes(ctx, data)
}

// ImportBytes replaces the tracker state with the backup in data. On any
// failure the state is left untouched.
func (s *BackupService) ImportBytes(ctx context.Context, data []byte) (res ImportResult, err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer func() {
		s.observe(ctx, useCaseImport, startedAt, err, fields)
	}()

	parsed, err := backup.Parse(data)
	if err != nil {
		return ImportResult{Message: ImportFailureMessage}, err
	}
	if err := s.snapshot(ctx, snapshotReasonImport); err != nil {
		return ImportResult{Message: ImportFailureMessage}, err
	}
	next := s.tracker.Dispatch(ctx, state.ImportData{State: parsed})
	fields["subjects"] = len(next.Subjects)
	fields["tests"] = len(next.Tests)
	return ImportResult{OK: true, Message: ImportSuccessMessage}, nil
}

func (s *BackupService) snapshot(ctx context.Context, reason string) error {
	if s.uow == nil {
		return nil
	}
	key := s.tracker.StorageKey()
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		current, err := repository.NewSQLiteBlobStore(tx).Get(ctx, key)
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading current state: %w", err)
		}
		snaps := repository.NewSQLiteSnapshotStore(tx)
		if _, err := snaps.Save(ctx, key, current, reason); err != nil {
			return err
		}
		if s.keep > 0 {
			if _, err := snaps.Prune(ctx, key, s.keep); err != nil {
				return err
			}
		}
		return nil
	})
}

// Snapshots lists the saved pre-import states, newest first.
func (s *BackupService) Snapshots(ctx context.Context) ([]repository.Snapshot, error) {
	if s.uow == nil {
		return nil, nil
	}
	var out []repository.Snapshot
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		out, err = repository.NewSQLiteSnapshotStore(tx).List(ctx, s.tracker.StorageKey())
		return err
	})
	return out, err
}

// Rollback restores the most recent pre-import snapshot and discards it.
func (s *BackupService) Rollback(ctx context.Context) (snap *repository.Snapshot, err error) {
	startedAt := time.Now()
	defer func() {
		s.observe(ctx, useCaseRollback, startedAt, err, nil)
	}()

	if s.uow == nil {
		return nil, fmt.Errorf("no snapshot: %w", repository.ErrNotFound)
	}
	var restored domain.AppState
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		snaps := repository.NewSQLiteSnapshotStore(tx)
		latest, err := snaps.Latest(ctx, s.tracker.StorageKey())
		if err != nil {
			return err
		}
		// An unreadable snapshot stays in place.
		restored, err = backup.Parse(latest.Value)
		if err != nil {
			return fmt.Errorf("snapshot %d: %w", latest.ID, err)
		}
		if err := snaps.Delete(ctx, latest.ID); err != nil {
			return err
		}
		snap = latest
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.tracker.Dispatch(ctx, state.ImportData{State: restored})
	return snap, nil
}

func (s *BackupService) observe(ctx context.Context, name string, startedAt time.Time, err error, fields map[string]any) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
		StartedAt: startedAt,
	})
}
