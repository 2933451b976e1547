// Package lock provides the filesystem artifact that serializes experiment
// runs. The artifact's existence is the entire signal: it is created only
// after container bring-up has succeeded (so it means "a live experiment
// exists", not "an attempt is underway") and survives the controller
// process, which is what lets separate invocations coordinate.
package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrLocked indicates the lock artifact already exists and force was not
// requested.
var ErrLocked = errors.New("experiment lock held")

// Guard is a named exclusive resource backed by a filesystem path.
type Guard struct {
	Path string
}

// Check returns ErrLocked (wrapped with the artifact path) if the lock
// artifact exists. With force set the check is skipped entirely; a
// pre-existing artifact is left in place.
func (this Guard) Check(force bool) error {
	if force {
		return nil
	}

	if _, err := os.Stat(this.Path); err == nil {
		return fmt.Errorf("lock file found at %s: %w", this.Path, ErrLocked)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("checking lock file %s: %w", this.Path, err)
	}

	return nil
}

// Record creates the lock artifact, creating parent directories as needed.
// Callers must only record after the guarded critical step has succeeded.
func (this Guard) Record() error {
	if err := os.MkdirAll(filepath.Dir(this.Path), 0755); err != nil {
		return fmt.Errorf("creating lock file directory: %w", err)
	}

	f, err := os.OpenFile(this.Path, os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("creating lock file %s: %w", this.Path, err)
	}

	return f.Close()
}

// Release removes the lock artifact. Releasing a lock that does not exist
// is not an error.
func (this Guard) Release() error {
	if err := os.Remove(this.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing lock file %s: %w", this.Path, err)
	}

	return nil
}

// Held reports whether the lock artifact currently exists.
func (this Guard) Held() bool {
	_, err := os.Stat(this.Path)
	return err == nil
}
