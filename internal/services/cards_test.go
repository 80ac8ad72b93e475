package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/studycards-backend/internal/domain"
	"github.com/yungbote/studycards-backend/internal/logger"
	"github.com/yungbote/studycards-backend/internal/render"
	"github.com/yungbote/studycards-backend/internal/store/jsonstore"
)

// newOfflineCardService wires a full card service with no AI clients, so
// every path runs its deterministic fallback.
func newOfflineCardService(t *testing.T) (CardService, jsonstore.FileStore, jsonstore.CardStore, string) {
	t.Helper()
	log := logger.Nop()
	dir := t.TempDir()
	uploadDir := filepath.Join(dir, "uploads")

	files, err := jsonstore.NewFileStore(dir, log)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	cards, err := jsonstore.NewCardStore(dir, log)
	if err != nil {
		t.Fatalf("NewCardStore failed: %v", err)
	}

	cfg := render.DefaultConfig()
	fonts := render.LoadFonts(log, nil)
	classifier := render.NewClassifier(log, nil, cfg.Keywords, 0)
	illustrator := render.NewIllustrator(log, nil, 0)
	composer := render.NewCardComposer(log, cfg, fonts)
	author := NewNoteAuthor(log, nil)

	svc := NewCardService(log, files, cards, author, classifier, illustrator, composer, uploadDir, 2)
	return svc, files, cards, uploadDir
}

func TestGenerateCardOffline(t *testing.T) {
	ctx := context.Background()
	svc, files, _, uploadDir := newOfflineCardService(t)

	courseID := uuid.New()
	rec, err := files.Add(ctx, domain.FileRecord{Name: "讲义.pdf", Type: "pdf", CourseID: courseID, Summary: "二次函数与导数"})
	if err != nil {
		t.Fatalf("Add file failed: %v", err)
	}

	card, err := svc.GenerateCard(ctx, courseID, []uuid.UUID{rec.ID}, 0)
	if err != nil {
		t.Fatalf("GenerateCard failed: %v", err)
	}
	if card.ID == uuid.Nil {
		t.Fatalf("expected a card id")
	}
	if card.Subject != domain.SubjectMath {
		t.Fatalf("expected math classification from the summary, got %s", card.Subject)
	}
	if card.ImageSource != "generated" {
		t.Fatalf("offline card must use the procedural path, got %q", card.ImageSource)
	}
	if !strings.HasPrefix(card.Image, "/uploads/card_") {
		t.Fatalf("unexpected image path: %q", card.Image)
	}

	imgPath := filepath.Join(uploadDir, filepath.Base(card.Image))
	info, err := os.Stat(imgPath)
	if err != nil {
		t.Fatalf("card image not written: %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("card image is empty")
	}
}

func TestGenerateCardsBatch(t *testing.T) {
	ctx := context.Background()
	svc, files, cards, _ := newOfflineCardService(t)

	courseID := uuid.New()
	rec, err := files.Add(ctx, domain.FileRecord{Name: "notes.pdf", Type: "pdf", CourseID: courseID, Summary: "力与能量"})
	if err != nil {
		t.Fatalf("Add file failed: %v", err)
	}

	got, err := svc.GenerateCards(ctx, courseID, []uuid.UUID{rec.ID}, 3)
	if err != nil {
		t.Fatalf("GenerateCards failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 cards, got %d", len(got))
	}
	for i, card := range got {
		if card.ID == uuid.Nil {
			t.Fatalf("card %d missing id", i)
		}
	}

	stored, err := cards.List(ctx, courseID)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(stored) != 3 {
		t.Fatalf("expected 3 stored cards, got %d", len(stored))
	}
}

func TestGenerateCardWithNoFilesStillProducesCard(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newOfflineCardService(t)

	card, err := svc.GenerateCard(ctx, uuid.New(), nil, 0)
	if err != nil {
		t.Fatalf("GenerateCard failed: %v", err)
	}
	if card.Title == "" {
		t.Fatalf("expected a fallback title")
	}
}

func TestDeleteCardRemovesImage(t *testing.T) {
	ctx := context.Background()
	svc, files, _, uploadDir := newOfflineCardService(t)

	courseID := uuid.New()
	rec, err := files.Add(ctx, domain.FileRecord{Name: "a.pdf", Type: "pdf", CourseID: courseID})
	if err != nil {
		t.Fatalf("Add file failed: %v", err)
	}
	card, err := svc.GenerateCard(ctx, courseID, []uuid.UUID{rec.ID}, 0)
	if err != nil {
		t.Fatalf("GenerateCard failed: %v", err)
	}

	if err := svc.DeleteCard(ctx, card.ID); err != nil {
		t.Fatalf("DeleteCard failed: %v", err)
	}
	imgPath := filepath.Join(uploadDir, filepath.Base(card.Image))
	if _, err := os.Stat(imgPath); !os.IsNotExist(err) {
		t.Fatalf("expected card image to be removed, stat err: %v", err)
	}
	if err := svc.DeleteCard(ctx, card.ID); !errors.Is(err, jsonstore.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestMaterialContentFallbackLabels(t *testing.T) {
	files := []domain.FileRecord{
		{Name: "lecture.mp4", Type: "video"},
		{Name: "slides.pdf", Type: "pdf", Summary: "有用的摘要"},
	}
	got := materialContent(files)
	if !strings.Contains(got, "视频文件：lecture.mp4") {
		t.Fatalf("expected typed stand-in for the video, got %q", got)
	}
	if !strings.Contains(got, "有用的摘要") {
		t.Fatalf("expected the summary to win, got %q", got)
	}
	if materialContent(nil) != "学习材料" {
		t.Fatalf("empty file set should yield the generic material text")
	}
}
