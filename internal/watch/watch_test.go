package watch

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestDebouncer_Coalesces(t *testing.T) {
	got := make(chan []string, 4)
	d := newDebouncer(20*time.Millisecond, func(p []string) { got <- p })
	defer d.stop()

	d.add("b.txt")
	d.add("a.txt")
	d.add("b.txt")

	select {
	case paths := <-got:
		if diff := cmp.Diff([]string{"a.txt", "b.txt"}, paths); diff != "" {
			t.Errorf("flush mismatch (-want +got):\n%s", diff)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no flush")
	}

	select {
	case paths := <-got:
		t.Errorf("unexpected second flush: %v", paths)
	case <-time.After(60 * time.Millisecond):
	}
}

func TestDebouncer_StopDropsPending(t *testing.T) {
	var mu sync.Mutex
	flushed := 0
	d := newDebouncer(20*time.Millisecond, func([]string) {
		mu.Lock()
		flushed++
		mu.Unlock()
	})
	d.add("a.txt")
	d.stop()
	d.add("b.txt")

	time.Sleep(60 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if flushed != 0 {
		t.Errorf("flushed %d times after stop", flushed)
	}
}

func TestNew_NoFiles(t *testing.T) {
	if _, err := New(nil, 0, nil); err == nil {
		t.Fatal("expected error")
	}
}

func TestWatcher_Run(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "speech.txt")
	other := filepath.Join(dir, "notes.txt")
	for _, p := range []string{target, other} {
		if err := os.WriteFile(p, []byte("draft"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	w, err := New([]string{target}, 20*time.Millisecond, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	changed := make(chan string, 8)
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, func(p string) { changed <- p }) }()

	// Give the watcher a moment to be ready before writing.
	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(other, []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(target, []byte("second draft"), 0o644); err != nil {
		t.Fatal(err)
	}

	want, _ := filepath.Abs(target)
	select {
	case got := <-changed:
		if got != want {
			t.Errorf("changed = %q, want %q", got, want)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
