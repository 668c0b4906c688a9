package progress

import (
	"context"
	"strings"
	"testing"

	"github.com/coursepath/coursepath/pkg/catalog"
	"github.com/coursepath/coursepath/pkg/errors"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	rec := NewRecord()
	rec.CompletedCourses = []string{"a", "b"}
	rec.Standing = catalog.Junior

	if err := store.Put(ctx, rec); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	if rec.UpdatedAt.IsZero() {
		t.Error("Put did not stamp UpdatedAt")
	}

	got, err := store.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.Standing != catalog.Junior || len(got.CompletedCourses) != 2 {
		t.Errorf("got %+v, want stored record back", got)
	}
}

func TestMemoryStore_GetMissing(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Get(context.Background(), "nope")
	if !errors.Is(err, errors.ErrCodeRecordNotFound) {
		t.Errorf("got %v, want RECORD_NOT_FOUND", err)
	}
}

func TestMemoryStore_GetMissingVerbatimID(t *testing.T) {
	store := NewMemoryStore()

	// IDs pass through message formatting; verbs in the ID must not expand.
	_, err := store.Get(context.Background(), "id-100%s")
	if !errors.Is(err, errors.ErrCodeRecordNotFound) {
		t.Fatalf("got %v, want RECORD_NOT_FOUND", err)
	}
	if !strings.Contains(err.Error(), "id-100%s") {
		t.Errorf("error %q should contain the ID verbatim", err.Error())
	}
}

func TestMemoryStore_PutRequiresID(t *testing.T) {
	store := NewMemoryStore()

	err := store.Put(context.Background(), &Record{})
	if !errors.Is(err, errors.ErrCodeInvalidRecord) {
		t.Errorf("got %v, want INVALID_RECORD", err)
	}
}

func TestMemoryStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	rec := NewRecord()
	if err := store.Put(ctx, rec); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	if err := store.Delete(ctx, rec.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := store.Get(ctx, rec.ID); !errors.Is(err, errors.ErrCodeRecordNotFound) {
		t.Errorf("got %v after delete, want RECORD_NOT_FOUND", err)
	}

	// Deleting again is a no-op.
	if err := store.Delete(ctx, rec.ID); err != nil {
		t.Errorf("second Delete error: %v", err)
	}
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	rec := NewRecord()
	if err := store.Put(ctx, rec); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	got, _ := store.Get(ctx, rec.ID)
	got.Standing = catalog.Graduate

	again, _ := store.Get(ctx, rec.ID)
	if again.Standing == catalog.Graduate {
		t.Error("mutation of a returned record leaked into the store")
	}
}
