package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/noorstudy/noorstudy-backend/internal/domain"
	"github.com/noorstudy/noorstudy-backend/internal/repos/testutil"
)

func TestLessonRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewLessonRepo(db, testutil.Logger(t))

	sectionID := "math_term1_lessons"
	l1 := &domain.Lesson{
		ID:         uuid.New(),
		SectionID:  sectionID,
		Title:      "derivatives",
		Content:    datatypes.JSON([]byte(`{"type":"standard","blocks":[]}`)),
		Subject:    "Mathematics",
		OrderIndex: 2,
		CreatedAt:  time.Now().Add(-time.Hour),
	}
	l2 := &domain.Lesson{
		ID:         uuid.New(),
		SectionID:  sectionID,
		Title:      "integrals",
		Content:    datatypes.JSON([]byte(`{"type":"standard","blocks":[]}`)),
		Subject:    "Mathematics",
		OrderIndex: 1,
		CreatedAt:  time.Now(),
	}
	for _, l := range []*domain.Lesson{l1, l2} {
		if _, err := repo.Create(ctx, tx, l); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	rows, err := repo.ListBySection(ctx, tx, sectionID)
	if err != nil {
		t.Fatalf("ListBySection: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("ListBySection len=%d", len(rows))
	}
	if rows[0].ID != l2.ID || rows[1].ID != l1.ID {
		t.Fatalf("order_index sort broken: got %s,%s", rows[0].Title, rows[1].Title)
	}

	got, err := repo.GetByID(ctx, tx, l1.ID)
	if err != nil || got.Title != "derivatives" {
		t.Fatalf("GetByID: err=%v got=%+v", err, got)
	}

	if err := repo.Update(ctx, tx, l1.ID, map[string]any{"title": "limits"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got, err = repo.GetByID(ctx, tx, l1.ID); err != nil || got.Title != "limits" {
		t.Fatalf("after Update: err=%v title=%q", err, got.Title)
	}

	if err := repo.UpdateOrderIndex(ctx, tx, l1.ID, 1); err != nil {
		t.Fatalf("UpdateOrderIndex: %v", err)
	}
	rows, err = repo.ListBySection(ctx, tx, sectionID)
	if err != nil {
		t.Fatalf("ListBySection: %v", err)
	}
	// equal order_index falls back to created_at ascending
	if rows[0].ID != l1.ID {
		t.Fatalf("created_at tiebreak broken: first=%s", rows[0].Title)
	}

	if err := repo.Delete(ctx, tx, l1.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if rows, err = repo.ListBySection(ctx, tx, sectionID); err != nil || len(rows) != 1 {
		t.Fatalf("after Delete: err=%v len=%d", err, len(rows))
	}
}
