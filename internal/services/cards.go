package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/studycards-backend/internal/domain"
	"github.com/yungbote/studycards-backend/internal/logger"
	"github.com/yungbote/studycards-backend/internal/render"
	"github.com/yungbote/studycards-backend/internal/store/jsonstore"
)

// CardService generates, lists, edits, and deletes knowledge cards.
type CardService interface {
	GenerateCard(ctx context.Context, courseID uuid.UUID, fileIDs []uuid.UUID, index int) (domain.NoteCard, error)
	GenerateCards(ctx context.Context, courseID uuid.UUID, fileIDs []uuid.UUID, count int) ([]domain.NoteCard, error)
	ListCards(ctx context.Context, courseID uuid.UUID) ([]domain.NoteCard, error)
	UpdateCard(ctx context.Context, id uuid.UUID, title, content string) (domain.NoteCard, error)
	DeleteCard(ctx context.Context, id uuid.UUID) error
}

type cardService struct {
	log           *logger.Logger
	files         jsonstore.FileStore
	cards         jsonstore.CardStore
	author        NoteAuthor
	classifier    *render.Classifier
	illustrator   *render.Illustrator
	composer      *render.CardComposer
	uploadDir     string
	maxConcurrent int
}

func NewCardService(
	log *logger.Logger,
	files jsonstore.FileStore,
	cards jsonstore.CardStore,
	author NoteAuthor,
	classifier *render.Classifier,
	illustrator *render.Illustrator,
	composer *render.CardComposer,
	uploadDir string,
	maxConcurrent int,
) CardService {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &cardService{
		log:           log.With("service", "CardService"),
		files:         files,
		cards:         cards,
		author:        author,
		classifier:    classifier,
		illustrator:   illustrator,
		composer:      composer,
		uploadDir:     uploadDir,
		maxConcurrent: maxConcurrent,
	}
}

// materialContent builds the study material text for a set of files. A
// useful summary wins; otherwise the file contributes a typed stand-in
// line so the authoring prompt still has something to anchor on.
func materialContent(files []domain.FileRecord) string {
	var sb strings.Builder
	for _, f := range files {
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		summary := strings.TrimSpace(f.Summary)
		if summary != "" {
			sb.WriteString(summary)
			continue
		}
		sb.WriteString(fmt.Sprintf("%s：%s", fallbackLabel(f.Type), f.Name))
	}
	if sb.Len() == 0 {
		return "学习材料"
	}
	return sb.String()
}

func fallbackLabel(fileType string) string {
	switch strings.ToLower(fileType) {
	case "video":
		return "视频文件"
	case "audio":
		return "音频文件"
	case "pdf":
		return "PDF文档"
	case "image":
		return "图片文件"
	default:
		return "学习材料"
	}
}

func (s *cardService) GenerateCard(ctx context.Context, courseID uuid.UUID, fileIDs []uuid.UUID, index int) (domain.NoteCard, error) {
	files, err := s.files.GetByIDs(ctx, fileIDs)
	if err != nil {
		return domain.NoteCard{}, fmt.Errorf("load files: %w", err)
	}
	material := materialContent(files)

	note := s.author.AuthorNote(ctx, material, index)

	classifyInput := note.DetailedContent
	if strings.TrimSpace(classifyInput) == "" {
		classifyInput = material
	}
	cls := s.classifier.Classify(ctx, classifyInput)

	illustration := s.illustrator.Illustrate(ctx, classifyInput, cls)
	imageSource := "generated"
	if illustration != nil {
		imageSource = "ai"
	}

	png, err := s.composer.ComposePNG(note.Title, note, cls, illustration)
	if err != nil {
		return domain.NoteCard{}, fmt.Errorf("compose card: %w", err)
	}

	cardID := uuid.New()
	fileName := fmt.Sprintf("card_%s.png", cardID)
	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return domain.NoteCard{}, fmt.Errorf("create upload dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.uploadDir, fileName), png, 0o644); err != nil {
		return domain.NoteCard{}, fmt.Errorf("write card image: %w", err)
	}

	card := domain.NoteCard{
		ID:                cardID,
		Title:             note.Title,
		Content:           note.DetailedContent,
		NoteData:          note,
		Subject:           cls.Subject,
		Confidence:        cls.Confidence,
		VisualizationType: cls.VisualizationType,
		Image:             "/uploads/" + fileName,
		ImageSource:       imageSource,
		CourseID:          courseID,
		FileIDs:           fileIDs,
		CreatedAt:         time.Now().UTC(),
	}
	stored, err := s.cards.Add(ctx, card)
	if err != nil {
		return domain.NoteCard{}, fmt.Errorf("store card: %w", err)
	}
	s.log.Info("card generated", "card_id", stored.ID, "subject", stored.Subject, "image_source", imageSource)
	return stored, nil
}

// GenerateCards renders count cards concurrently, bounded by the
// configured limit. Results keep their index order.
func (s *cardService) GenerateCards(ctx context.Context, courseID uuid.UUID, fileIDs []uuid.UUID, count int) ([]domain.NoteCard, error) {
	if count < 1 {
		count = 1
	}

	results := make([]domain.NoteCard, count)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)
	for i := 0; i < count; i++ {
		i := i
		g.Go(func() error {
			card, err := s.GenerateCard(gctx, courseID, fileIDs, i)
			if err != nil {
				return fmt.Errorf("card %d: %w", i+1, err)
			}
			results[i] = card
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *cardService) ListCards(ctx context.Context, courseID uuid.UUID) ([]domain.NoteCard, error) {
	return s.cards.List(ctx, courseID)
}

func (s *cardService) UpdateCard(ctx context.Context, id uuid.UUID, title, content string) (domain.NoteCard, error) {
	return s.cards.Update(ctx, id, title, content)
}

func (s *cardService) DeleteCard(ctx context.Context, id uuid.UUID) error {
	removed, err := s.cards.Delete(ctx, id)
	if err != nil {
		return err
	}
	if removed.Image != "" {
		imgPath := filepath.Join(s.uploadDir, filepath.Base(removed.Image))
		if err := os.Remove(imgPath); err != nil && !os.IsNotExist(err) {
			s.log.Warn("card image cleanup failed", "card_id", id, "path", imgPath, "error", err)
		}
	}
	return nil
}
