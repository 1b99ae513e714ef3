//go:build !windows

package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/viper"

	errUtils "github.com/workshoplabs/labctl/errors"
	log "github.com/workshoplabs/labctl/pkg/logger"
)

func init() {
	// Set the platform-specific locking functions.
	withCacheFileLock = withCacheFileLockUnix
	loadCacheWithReadLock = loadCacheWithReadLockUnix
}

func withCacheFileLockUnix(cacheFile string, fn func() error) error {
	// Use a dedicated lock file to prevent lock loss during atomic rename.
	lockPath := cacheFile + ".lock"
	lock := flock.New(lockPath)

	// Retry briefly so concurrent labctl runs can proceed without blocking
	// indefinitely.
	const maxRetries = 50 // 50 tries with 10ms between (500ms total).
	var locked bool
	var err error

	for i := 0; i < maxRetries; i++ {
		locked, err = lock.TryLock()
		if err != nil {
			return errors.Join(errUtils.ErrCacheLocked, err)
		}
		if locked {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	if !locked {
		// The cache is not critical for functionality, so give up rather
		// than queueing behind another process.
		return fmt.Errorf("%w: cache file is locked by another process", errUtils.ErrCacheLocked)
	}

	defer func() {
		if err := lock.Unlock(); err != nil {
			log.Trace("Failed to unlock cache file", "error", err, "path", lockPath)
		}
	}()
	return fn()
}

func loadCacheWithReadLockUnix(cacheFile string) (CacheConfig, error) {
	var cfg CacheConfig

	// Use TryRLock to avoid blocking indefinitely, and a dedicated lock file
	// to prevent lock loss during atomic rename.
	lockPath := cacheFile + ".lock"
	lock := flock.New(lockPath)
	locked, err := lock.TryRLock()
	if err != nil {
		return cfg, errors.Join(errUtils.ErrCacheLocked, err)
	}
	if !locked {
		// Another process holds the lock. Return the zero config instead of
		// waiting.
		return cfg, nil
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			log.Trace("Failed to unlock cache file during read", "error", err, "path", lockPath)
		}
	}()

	v := viper.New()
	v.SetConfigFile(cacheFile)
	if err := v.ReadInConfig(); err != nil {
		// A missing file reads as the zero config.
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return cfg, nil
		}
		return cfg, errors.Join(errUtils.ErrCacheRead, err)
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, errors.Join(errUtils.ErrCacheUnmarshal, err)
	}
	return cfg, nil
}
