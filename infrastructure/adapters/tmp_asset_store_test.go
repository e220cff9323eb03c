package adapters

import (
	"bytes"
	"os"
	"testing"
)

func TestTmpAssetStore_AcquireRelease(t *testing.T) {
	store := NewTmpAssetStore(NewZerologWrapper())

	handle, err := store.Acquire([]byte("image-bytes"), "source-image.jpeg")
	if err != nil {
		t.Fatal("unexpected error:", err)
	}

	persisted, err := os.ReadFile(handle.Path)
	if err != nil {
		t.Fatal("asset should exist after acquire:", err)
	}
	if !bytes.Equal(persisted, []byte("image-bytes")) {
		t.Errorf("unexpected persisted content: %q", persisted)
	}

	if err := store.Release(handle); err != nil {
		t.Fatal("unexpected release error:", err)
	}
	if _, err := os.Stat(handle.Path); !os.IsNotExist(err) {
		t.Error("asset should be removed after release")
	}
}

func TestTmpAssetStore_ReleaseIsIdempotent(t *testing.T) {
	store := NewTmpAssetStore(NewZerologWrapper())

	handle, err := store.Acquire([]byte("audio-bytes"), "source-audio.webm")
	if err != nil {
		t.Fatal("unexpected error:", err)
	}

	if err := store.Release(handle); err != nil {
		t.Fatal("unexpected release error:", err)
	}
	if err := store.Release(handle); err != nil {
		t.Error("releasing an already-released handle should not fail:", err)
	}
}

func TestTmpAssetStore_HandlesNeverCollide(t *testing.T) {
	store := NewTmpAssetStore(NewZerologWrapper())

	first, err := store.Acquire([]byte("a"), "source-image.jpeg")
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	second, err := store.Acquire([]byte("b"), "source-image.jpeg")
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	defer func() {
		_ = store.Release(first)
		_ = store.Release(second)
	}()

	if first.Path == second.Path {
		t.Error("same logical name must still yield distinct paths")
	}
}
