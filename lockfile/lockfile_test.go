package lockfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestAcquireAndRelease(t *testing.T) {
	dir := t.TempDir()

	l, err := Acquire(dir)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if l.PID != os.Getpid() {
		t.Errorf("PID = %d, want %d", l.PID, os.Getpid())
	}

	path := filepath.Join(dir, LockFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatalf("lock file not created at %s", path)
	}

	if err := l.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("lock file should be removed, stat err=%v", err)
	}

	// Release twice is fine.
	if err := l.Release(); err != nil {
		t.Fatalf("second Release: %v", err)
	}
}

func TestAcquireWhileHeld(t *testing.T) {
	dir := t.TempDir()

	l, err := Acquire(dir)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	defer l.Release()

	// The first holder is this live test process.
	if _, err := Acquire(dir); !errors.Is(err, ErrLocked) {
		t.Fatalf("second Acquire error = %v, want ErrLocked", err)
	}
}

func TestAcquireReclaimsStaleLock(t *testing.T) {
	dir := t.TempDir()

	data := "version: 1\npid: -1\nhost: gone\nstarted: \"2024-01-01T00:00:00Z\"\n"
	if err := os.WriteFile(filepath.Join(dir, LockFileName), []byte(data), 0644); err != nil {
		t.Fatalf("writing stale lock: %v", err)
	}

	l, err := Acquire(dir)
	if err != nil {
		t.Fatalf("Acquire over stale lock: %v", err)
	}
	defer l.Release()

	if l.PID != os.Getpid() {
		t.Errorf("reclaimed lock PID = %d, want %d", l.PID, os.Getpid())
	}
}

func TestHolder(t *testing.T) {
	dir := t.TempDir()

	h, err := Holder(dir)
	if err != nil {
		t.Fatalf("Holder on unlocked dir: %v", err)
	}
	if h != nil {
		t.Fatalf("Holder = %#v, want nil", h)
	}

	l, err := Acquire(dir)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	defer l.Release()

	h, err = Holder(dir)
	if err != nil {
		t.Fatalf("Holder: %v", err)
	}
	if h == nil || h.PID != os.Getpid() {
		t.Fatalf("Holder = %#v, want PID %d", h, os.Getpid())
	}
}
