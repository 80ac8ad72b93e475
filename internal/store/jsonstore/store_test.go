package jsonstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/studycards-backend/internal/domain"
	"github.com/yungbote/studycards-backend/internal/logger"
)

func TestCourseStoreCRUD(t *testing.T) {
	ctx := context.Background()
	store, err := NewCourseStore(t.TempDir(), logger.Nop())
	if err != nil {
		t.Fatalf("NewCourseStore failed: %v", err)
	}

	created, err := store.Create(ctx, "高等数学")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatalf("expected a generated id")
	}

	got, err := store.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Name != "高等数学" {
		t.Fatalf("unexpected name: %q", got.Name)
	}

	updated, err := store.Update(ctx, created.ID, "线性代数")
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Name != "线性代数" {
		t.Fatalf("update did not apply: %q", updated.Name)
	}

	all, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 course, got %d", len(all))
	}

	if err := store.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Get(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestCourseStoreNotFound(t *testing.T) {
	ctx := context.Background()
	store, err := NewCourseStore(t.TempDir(), logger.Nop())
	if err != nil {
		t.Fatalf("NewCourseStore failed: %v", err)
	}
	if _, err := store.Get(ctx, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := store.Delete(ctx, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on delete, got %v", err)
	}
}

func TestCourseStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	first, err := NewCourseStore(dir, logger.Nop())
	if err != nil {
		t.Fatalf("NewCourseStore failed: %v", err)
	}
	created, err := first.Create(ctx, "物理")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	second, err := NewCourseStore(dir, logger.Nop())
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	got, err := second.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get after reopen failed: %v", err)
	}
	if got.Name != "物理" {
		t.Fatalf("persisted course corrupted: %q", got.Name)
	}
}

func TestFileStoreQueries(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir(), logger.Nop())
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	courseA := uuid.New()
	courseB := uuid.New()
	recA, err := store.Add(ctx, domain.FileRecord{Name: "a.pdf", Type: "pdf", CourseID: courseA, Summary: "微积分讲义"})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	recB, err := store.Add(ctx, domain.FileRecord{Name: "b.mp4", Type: "video", CourseID: courseB})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	byCourse, err := store.ListByCourse(ctx, courseA)
	if err != nil {
		t.Fatalf("ListByCourse failed: %v", err)
	}
	if len(byCourse) != 1 || byCourse[0].ID != recA.ID {
		t.Fatalf("unexpected course files: %+v", byCourse)
	}

	// Order follows the request; unknown ids are skipped.
	got, err := store.GetByIDs(ctx, []uuid.UUID{recB.ID, uuid.New(), recA.ID})
	if err != nil {
		t.Fatalf("GetByIDs failed: %v", err)
	}
	if len(got) != 2 || got[0].ID != recB.ID || got[1].ID != recA.ID {
		t.Fatalf("unexpected GetByIDs result: %+v", got)
	}

	if err := store.Delete(ctx, recA.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	all, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 file after delete, got %d", len(all))
	}
}

func TestCardStoreCRUD(t *testing.T) {
	ctx := context.Background()
	store, err := NewCardStore(t.TempDir(), logger.Nop())
	if err != nil {
		t.Fatalf("NewCardStore failed: %v", err)
	}

	courseID := uuid.New()
	card, err := store.Add(ctx, domain.NoteCard{
		Title:    "二次函数",
		Content:  "抛物线",
		Subject:  domain.SubjectMath,
		CourseID: courseID,
		Image:    "/uploads/card_x.png",
	})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if card.ID == uuid.Nil {
		t.Fatalf("expected a generated id")
	}

	byCourse, err := store.List(ctx, courseID)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(byCourse) != 1 {
		t.Fatalf("expected 1 card for course, got %d", len(byCourse))
	}
	if other, _ := store.List(ctx, uuid.New()); len(other) != 0 {
		t.Fatalf("unexpected cards for unrelated course: %d", len(other))
	}

	updated, err := store.Update(ctx, card.ID, "新标题", "")
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Title != "新标题" {
		t.Fatalf("title not updated: %q", updated.Title)
	}
	if updated.Content != "抛物线" {
		t.Fatalf("empty content must not overwrite: %q", updated.Content)
	}

	removed, err := store.Delete(ctx, card.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if removed.Image != "/uploads/card_x.png" {
		t.Fatalf("delete should return the removed card, got %+v", removed)
	}
	if _, err := store.Get(ctx, card.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestStoreWritesIndentedJSON(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := NewCourseStore(dir, logger.Nop())
	if err != nil {
		t.Fatalf("NewCourseStore failed: %v", err)
	}
	if _, err := store.Create(ctx, "化学"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "courses.json"))
	if err != nil {
		t.Fatalf("read document: %v", err)
	}
	if len(data) == 0 || data[0] != '{' {
		t.Fatalf("unexpected document shape: %q", string(data))
	}
}
