package jsonstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/yungbote/studycards-backend/internal/domain"
	"github.com/yungbote/studycards-backend/internal/logger"
)

type FileStore interface {
	Add(ctx context.Context, rec domain.FileRecord) (domain.FileRecord, error)
	List(ctx context.Context) ([]domain.FileRecord, error)
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]domain.FileRecord, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.FileRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type fileDoc struct {
	Files []domain.FileRecord `json:"files"`
}

type recordStore struct {
	*fileStore
	log *logger.Logger
}

func NewFileStore(dir string, log *logger.Logger) (FileStore, error) {
	fs, err := newFileStore(dir, "files.json")
	if err != nil {
		return nil, err
	}
	return &recordStore{fileStore: fs, log: log.With("store", "files")}, nil
}

func (s *recordStore) Add(ctx context.Context, rec domain.FileRecord) (domain.FileRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var doc fileDoc
	if err := s.load(&doc); err != nil {
		return domain.FileRecord{}, err
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	doc.Files = append(doc.Files, rec)
	if err := s.save(doc); err != nil {
		return domain.FileRecord{}, err
	}
	return rec, nil
}

func (s *recordStore) List(ctx context.Context) ([]domain.FileRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var doc fileDoc
	if err := s.load(&doc); err != nil {
		return nil, err
	}
	return doc.Files, nil
}

func (s *recordStore) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]domain.FileRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var doc fileDoc
	if err := s.load(&doc); err != nil {
		return nil, err
	}
	var out []domain.FileRecord
	for _, f := range doc.Files {
		if f.CourseID == courseID {
			out = append(out, f)
		}
	}
	return out, nil
}

// GetByIDs returns the records for ids, preserving request order.
// Unknown ids are skipped rather than erroring so a stale reference in a
// generation request degrades instead of failing the whole batch.
func (s *recordStore) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.FileRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var doc fileDoc
	if err := s.load(&doc); err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]domain.FileRecord, len(doc.Files))
	for _, f := range doc.Files {
		byID[f.ID] = f
	}
	var out []domain.FileRecord
	for _, id := range ids {
		if f, ok := byID[id]; ok {
			out = append(out, f)
		}
	}
	return out, nil
}

func (s *recordStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var doc fileDoc
	if err := s.load(&doc); err != nil {
		return err
	}
	kept := doc.Files[:0]
	found := false
	for _, f := range doc.Files {
		if f.ID == id {
			found = true
			continue
		}
		kept = append(kept, f)
	}
	if !found {
		return fmt.Errorf("file %s: %w", id, ErrNotFound)
	}
	doc.Files = kept
	return s.save(doc)
}
