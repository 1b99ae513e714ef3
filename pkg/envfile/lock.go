package envfile

import (
	"errors"
	"time"

	"github.com/gofrs/flock"

	errUtils "github.com/workshoplabs/labctl/errors"
	log "github.com/workshoplabs/labctl/pkg/logger"
)

// withFileLock runs fn while holding an exclusive lock on a dedicated lock
// file next to path. The dedicated file keeps the lock valid across the
// atomic rename that replaces path.
func withFileLock(path string, fn func() error) error {
	lockPath := path + ".lock"
	lock := flock.New(lockPath)

	// Retry briefly instead of blocking behind another labctl run.
	const maxRetries = 50 // 50 tries with 10ms between (500ms total).
	var locked bool
	var err error

	for i := 0; i < maxRetries; i++ {
		locked, err = lock.TryLock()
		if err != nil {
			return errors.Join(errUtils.ErrLockFile, err)
		}
		if locked {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	if !locked {
		return errUtils.Build(errUtils.ErrLockFile).
			WithContext("path", lockPath).
			WithHint("another labctl run is writing this file, try again").
			Err()
	}

	defer func() {
		if err := lock.Unlock(); err != nil {
			log.Trace("Failed to unlock env file", "error", err, "path", lockPath)
		}
	}()
	return fn()
}
