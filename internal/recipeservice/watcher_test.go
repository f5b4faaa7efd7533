package recipeservice

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/marnhus/skillet/internal/testutil"
)

// eventually polls fn every tick until it returns true or timeout elapses.
func eventually(t *testing.T, timeout, tick time.Duration, fn func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if fn() {
			return
		}
		time.Sleep(tick)
	}
	t.Error(msg)
}

func TestWatchUploadsClearsDanglingPhoto(t *testing.T) {
	st := testutil.TestStore(t)
	_, photos := testutil.TestUploads(t)
	svc := NewService(st, photos, nil)
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rec, err := svc.CreateRecipe(ctx, "Focaccia")
	if err != nil {
		t.Fatal(err)
	}
	stored, err := svc.AttachPhoto(ctx, rec.ID, "focaccia.png", bytes.NewReader([]byte("img")))
	if err != nil {
		t.Fatal(err)
	}

	var mu sync.Mutex
	var events []string

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = WatchUploads(ctx, st, photos, logger, func(kind, filename string) {
			mu.Lock()
			events = append(events, kind+":"+filename)
			mu.Unlock()
		})
	}()

	// Give the watcher time to register before deleting.
	time.Sleep(100 * time.Millisecond)

	path, err := photos.Path(stored)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}

	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		got, err := svc.GetRecipe(ctx, rec.ID)
		return err == nil && got.Photo == nil
	}, "dangling photo reference not cleared")

	eventually(t, 2*time.Second, 50*time.Millisecond, func() bool {
		mu.Lock()
		defer mu.Unlock()
		for _, e := range events {
			if e == EventPhotoRemoved+":"+stored {
				return true
			}
		}
		return false
	}, "expected photo.removed callback")

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Error("watcher did not stop on context cancel")
	}
}

func TestWatchUploadsIgnoresUnknownFiles(t *testing.T) {
	st := testutil.TestStore(t)
	root, photos := testutil.TestUploads(t)
	svc := NewService(st, photos, nil)
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rec, err := svc.CreateRecipe(ctx, "Soup")
	if err != nil {
		t.Fatal(err)
	}
	stored, err := svc.AttachPhoto(ctx, rec.ID, "soup.png", bytes.NewReader([]byte("img")))
	if err != nil {
		t.Fatal(err)
	}

	var calls int32
	var mu sync.Mutex

	go func() {
		_ = WatchUploads(ctx, st, photos, logger, func(kind, filename string) {
			mu.Lock()
			calls++
			mu.Unlock()
		})
	}()
	time.Sleep(100 * time.Millisecond)

	// A file no recipe references comes and goes without a callback.
	unrelated := filepath.Join(root, "stray.png")
	if err := os.WriteFile(unrelated, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(unrelated); err != nil {
		t.Fatal(err)
	}
	time.Sleep(300 * time.Millisecond)

	mu.Lock()
	got := calls
	mu.Unlock()
	if got != 0 {
		t.Errorf("callback fired %d times for unreferenced file", got)
	}

	// The referenced photo is untouched.
	rec2, err := svc.GetRecipe(ctx, rec.ID)
	if err != nil {
		t.Fatal(err)
	}
	if rec2.Photo == nil || *rec2.Photo != stored {
		t.Errorf("photo = %v, want %q", rec2.Photo, stored)
	}
}
