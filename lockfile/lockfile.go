// Package lockfile implements tabkit.lock — an advisory lock preventing
// two pipeline runs from writing into the same project directory at once.
//
// The lock file is stored in the project root as tabkit.lock and records
// the owning process so a crashed run's stale lock can be reclaimed.
package lockfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"gopkg.in/yaml.v3"
)

// LockFileName is the default lock file name.
const LockFileName = "tabkit.lock"

// Version is the lock file format version.
const Version = 1

// ErrLocked is returned by Acquire when another live process holds the
// lock.
var ErrLocked = errors.New("project directory is locked by another run")

// ---------------------------------------------------------------------------
// Types
// ---------------------------------------------------------------------------

// Lock represents an acquired tabkit.lock.
type Lock struct {
	Version int    `yaml:"version"`
	PID     int    `yaml:"pid"`
	Host    string `yaml:"host"`
	Started string `yaml:"started"` // RFC 3339

	path string `yaml:"-"`
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	return l.path
}

// ---------------------------------------------------------------------------
// Acquire / Release
// ---------------------------------------------------------------------------

// Acquire takes the advisory lock for the given project directory. If a
// lock file exists and its owning process is still alive, Acquire returns
// ErrLocked (wrapped with the holder's details). Stale locks from dead
// processes are reclaimed silently.
func Acquire(dir string) (*Lock, error) {
	path := filepath.Join(dir, LockFileName)

	if existing, err := read(path); err == nil && existing != nil {
		if processAlive(existing.PID) {
			return nil, fmt.Errorf("%w (pid %d on %s since %s)",
				ErrLocked, existing.PID, existing.Host, existing.Started)
		}
		// Stale lock from a dead process; take it over.
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("removing stale lock %s: %w", path, err)
		}
	}

	host, _ := os.Hostname()
	l := &Lock{
		Version: Version,
		PID:     os.Getpid(),
		Host:    host,
		Started: time.Now().Format(time.RFC3339),
		path:    path,
	}

	data, err := yaml.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("marshaling lock file: %w", err)
	}

	// O_EXCL makes concurrent Acquire calls race safely: exactly one wins.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if os.IsExist(err) {
			return nil, ErrLocked
		}
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(path)
		return nil, fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("closing %s: %w", path, err)
	}

	return l, nil
}

// Release removes the lock file. Safe to call more than once.
func (l *Lock) Release() error {
	if l == nil || l.path == "" {
		return nil
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing %s: %w", l.path, err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Inspection
// ---------------------------------------------------------------------------

// Holder returns the current lock holder for a project directory, or nil
// when the directory is unlocked.
func Holder(dir string) (*Lock, error) {
	l, err := read(filepath.Join(dir, LockFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return l, nil
}

// read loads and parses a lock file.
func read(path string) (*Lock, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var l Lock
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	l.path = path
	return &l, nil
}

// processAlive reports whether a process with the given pid exists.
// Signal 0 performs the existence check without sending anything.
func processAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = proc.Signal(syscall.Signal(0))
	if err == nil {
		return true
	}
	return errors.Is(err, syscall.EPERM)
}
