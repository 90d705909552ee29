package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

func TestWatchFileDebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "items.yaml", sampleItems)
	other := filepath.Join(dir, "other.yaml")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var runs atomic.Int32
	ran := make(chan struct{}, 8)
	done := make(chan error, 1)
	go func() {
		done <- watchFile(ctx, path, 50*time.Millisecond, log.New(&bytes.Buffer{}), func(context.Context) error {
			runs.Add(1)
			ran <- struct{}{}
			return errors.New("render failed")
		})
	}()
	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(other, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(path, []byte(sampleItems), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case <-ran:
	case <-time.After(3 * time.Second):
		t.Fatal("watch never fired")
	}
	time.Sleep(200 * time.Millisecond)
	if n := runs.Load(); n != 1 {
		t.Errorf("runs = %d, want 1 for one burst of writes", n)
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("watchFile returned %v, want context.Canceled", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("watchFile did not return after cancel")
	}
}

func TestRelevant(t *testing.T) {
	target, err := filepath.Abs("items.yaml")
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name string
		ev   fsnotify.Event
		want bool
	}{
		{"write", fsnotify.Event{Name: "items.yaml", Op: fsnotify.Write}, true},
		{"create", fsnotify.Event{Name: "items.yaml", Op: fsnotify.Create}, true},
		{"chmod", fsnotify.Event{Name: "items.yaml", Op: fsnotify.Chmod}, false},
		{"other file", fsnotify.Event{Name: "notes.yaml", Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := relevant(tt.ev, target); got != tt.want {
				t.Errorf("relevant = %v, want %v", got, tt.want)
			}
		})
	}
}
