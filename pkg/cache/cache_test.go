package cache

import (
	"context"
	"testing"
	"time"
)

func TestFileCache_RoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !hit {
		t.Fatal("expected hit after Set")
	}
	if string(data) != "value" {
		t.Errorf("got %q, want %q", data, "value")
	}
}

func TestFileCache_Expiration(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Nanosecond); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	_, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("expected miss for expired entry")
	}
}

func TestFileCache_Delete(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("expected miss after Delete")
	}

	// Deleting a missing key is fine.
	if err := c.Delete(ctx, "missing"); err != nil {
		t.Errorf("Delete missing key error: %v", err)
	}
}

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("NullCache should never store data")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("catalog"))
	h2 := Hash([]byte("catalog"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("other")) {
		t.Error("different inputs should hash differently")
	}
	if len(h1) != 64 {
		t.Errorf("hash length = %d, want 64", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	// Catalog keys are stable per content hash.
	if k.CatalogKey("abc") != k.CatalogKey("abc") {
		t.Error("CatalogKey should be deterministic")
	}
	if k.CatalogKey("abc") == k.CatalogKey("def") {
		t.Error("different catalogs should key differently")
	}

	// Layout keys depend on the options.
	lk1 := k.LayoutKey("abc", LayoutKeyOpts{VizType: "grid", HSpacing: 160})
	lk2 := k.LayoutKey("abc", LayoutKeyOpts{VizType: "radial", HSpacing: 160})
	if lk1 == lk2 {
		t.Error("different viz types should key differently")
	}
	lk3 := k.LayoutKey("abc", LayoutKeyOpts{VizType: "grid", HSpacing: 200})
	if lk1 == lk3 {
		t.Error("different spacings should key differently")
	}

	// Entry course set is part of the key.
	lk4 := k.LayoutKey("abc", LayoutKeyOpts{VizType: "radial", EntryCourses: []string{"CSE 114"}})
	lk5 := k.LayoutKey("abc", LayoutKeyOpts{VizType: "radial"})
	if lk4 == lk5 {
		t.Error("entry course set should be part of the key")
	}

	ak1 := k.ArtifactKey("abc", ArtifactKeyOpts{Format: "svg"})
	ak2 := k.ArtifactKey("abc", ArtifactKeyOpts{Format: "png"})
	if ak1 == ak2 {
		t.Error("different formats should key differently")
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(NewDefaultKeyer(), "sbu:")

	key := scoped.CatalogKey("abc")
	if len(key) < 4 || key[:4] != "sbu:" {
		t.Errorf("scoped key should be prefixed: %s", key)
	}

	// Nil inner falls back to the default keyer.
	fallback := NewScopedKeyer(nil, "x:")
	if fallback.CatalogKey("abc") != "x:"+NewDefaultKeyer().CatalogKey("abc") {
		t.Error("nil inner should use the default keyer")
	}
}
