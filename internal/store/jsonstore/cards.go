package jsonstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/yungbote/studycards-backend/internal/domain"
	"github.com/yungbote/studycards-backend/internal/logger"
)

type CardStore interface {
	Add(ctx context.Context, card domain.NoteCard) (domain.NoteCard, error)
	List(ctx context.Context, courseID uuid.UUID) ([]domain.NoteCard, error)
	Get(ctx context.Context, id uuid.UUID) (domain.NoteCard, error)
	Update(ctx context.Context, id uuid.UUID, title, content string) (domain.NoteCard, error)
	Delete(ctx context.Context, id uuid.UUID) (domain.NoteCard, error)
}

type cardDoc struct {
	Cards []domain.NoteCard `json:"cards"`
}

type cardStore struct {
	*fileStore
	log *logger.Logger
}

func NewCardStore(dir string, log *logger.Logger) (CardStore, error) {
	fs, err := newFileStore(dir, "note_cards.json")
	if err != nil {
		return nil, err
	}
	return &cardStore{fileStore: fs, log: log.With("store", "cards")}, nil
}

func (s *cardStore) Add(ctx context.Context, card domain.NoteCard) (domain.NoteCard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var doc cardDoc
	if err := s.load(&doc); err != nil {
		return domain.NoteCard{}, err
	}
	if card.ID == uuid.Nil {
		card.ID = uuid.New()
	}
	doc.Cards = append(doc.Cards, card)
	if err := s.save(doc); err != nil {
		return domain.NoteCard{}, err
	}
	return card, nil
}

// List returns the cards for a course; the nil uuid lists everything.
func (s *cardStore) List(ctx context.Context, courseID uuid.UUID) ([]domain.NoteCard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var doc cardDoc
	if err := s.load(&doc); err != nil {
		return nil, err
	}
	if courseID == uuid.Nil {
		return doc.Cards, nil
	}
	var out []domain.NoteCard
	for _, c := range doc.Cards {
		if c.CourseID == courseID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *cardStore) Get(ctx context.Context, id uuid.UUID) (domain.NoteCard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var doc cardDoc
	if err := s.load(&doc); err != nil {
		return domain.NoteCard{}, err
	}
	for _, c := range doc.Cards {
		if c.ID == id {
			return c, nil
		}
	}
	return domain.NoteCard{}, fmt.Errorf("card %s: %w", id, ErrNotFound)
}

func (s *cardStore) Update(ctx context.Context, id uuid.UUID, title, content string) (domain.NoteCard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var doc cardDoc
	if err := s.load(&doc); err != nil {
		return domain.NoteCard{}, err
	}
	for i := range doc.Cards {
		if doc.Cards[i].ID == id {
			if title != "" {
				doc.Cards[i].Title = title
			}
			if content != "" {
				doc.Cards[i].Content = content
			}
			if err := s.save(doc); err != nil {
				return domain.NoteCard{}, err
			}
			return doc.Cards[i], nil
		}
	}
	return domain.NoteCard{}, fmt.Errorf("card %s: %w", id, ErrNotFound)
}

// Delete removes the card record and returns it so the caller can clean
// up the rendered image on disk.
func (s *cardStore) Delete(ctx context.Context, id uuid.UUID) (domain.NoteCard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var doc cardDoc
	if err := s.load(&doc); err != nil {
		return domain.NoteCard{}, err
	}
	kept := doc.Cards[:0]
	var removed domain.NoteCard
	found := false
	for _, c := range doc.Cards {
		if c.ID == id {
			removed = c
			found = true
			continue
		}
		kept = append(kept, c)
	}
	if !found {
		return domain.NoteCard{}, fmt.Errorf("card %s: %w", id, ErrNotFound)
	}
	doc.Cards = kept
	if err := s.save(doc); err != nil {
		return domain.NoteCard{}, err
	}
	return removed, nil
}
