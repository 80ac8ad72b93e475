package jsonstore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/studycards-backend/internal/domain"
	"github.com/yungbote/studycards-backend/internal/logger"
)

var ErrNotFound = fmt.Errorf("not found")

type CourseStore interface {
	Create(ctx context.Context, name string) (domain.Course, error)
	List(ctx context.Context) ([]domain.Course, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Course, error)
	Update(ctx context.Context, id uuid.UUID, name string) (domain.Course, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type courseDoc struct {
	Courses []domain.Course `json:"courses"`
}

type courseStore struct {
	*fileStore
	log *logger.Logger
}

func NewCourseStore(dir string, log *logger.Logger) (CourseStore, error) {
	fs, err := newFileStore(dir, "courses.json")
	if err != nil {
		return nil, err
	}
	return &courseStore{fileStore: fs, log: log.With("store", "courses")}, nil
}

func (s *courseStore) Create(ctx context.Context, name string) (domain.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var doc courseDoc
	if err := s.load(&doc); err != nil {
		return domain.Course{}, err
	}
	course := domain.Course{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	doc.Courses = append(doc.Courses, course)
	if err := s.save(doc); err != nil {
		return domain.Course{}, err
	}
	return course, nil
}

func (s *courseStore) List(ctx context.Context) ([]domain.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var doc courseDoc
	if err := s.load(&doc); err != nil {
		return nil, err
	}
	return doc.Courses, nil
}

func (s *courseStore) Get(ctx context.Context, id uuid.UUID) (domain.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var doc courseDoc
	if err := s.load(&doc); err != nil {
		return domain.Course{}, err
	}
	for _, c := range doc.Courses {
		if c.ID == id {
			return c, nil
		}
	}
	return domain.Course{}, fmt.Errorf("course %s: %w", id, ErrNotFound)
}

func (s *courseStore) Update(ctx context.Context, id uuid.UUID, name string) (domain.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var doc courseDoc
	if err := s.load(&doc); err != nil {
		return domain.Course{}, err
	}
	for i := range doc.Courses {
		if doc.Courses[i].ID == id {
			doc.Courses[i].Name = name
			if err := s.save(doc); err != nil {
				return domain.Course{}, err
			}
			return doc.Courses[i], nil
		}
	}
	return domain.Course{}, fmt.Errorf("course %s: %w", id, ErrNotFound)
}

func (s *courseStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var doc courseDoc
	if err := s.load(&doc); err != nil {
		return err
	}
	kept := doc.Courses[:0]
	found := false
	for _, c := range doc.Courses {
		if c.ID == id {
			found = true
			continue
		}
		kept = append(kept, c)
	}
	if !found {
		return fmt.Errorf("course %s: %w", id, ErrNotFound)
	}
	doc.Courses = kept
	return s.save(doc)
}
