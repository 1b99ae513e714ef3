package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/goccy/go-yaml"
	"github.com/spf13/viper"

	errUtils "github.com/workshoplabs/labctl/errors"
	"github.com/workshoplabs/labctl/pkg/filesystem"
	log "github.com/workshoplabs/labctl/pkg/logger"
)

// CacheConfig is the on-disk state shared between labctl runs.
type CacheConfig struct {
	LastChecked int64 `mapstructure:"last_checked" yaml:"last_checked"`
}

// GetCacheFilePath returns the filesystem path to the labctl cache file.
// It respects LABCTL_XDG_CACHE_HOME and XDG_CACHE_HOME environment variables
// for the cache directory location.
func GetCacheFilePath() (string, error) {
	// Bind both LABCTL_XDG_CACHE_HOME and XDG_CACHE_HOME so operators can
	// override the cache location for labctl alone.
	v := viper.New()
	if err := v.BindEnv("XDG_CACHE_HOME", "LABCTL_XDG_CACHE_HOME", "XDG_CACHE_HOME"); err != nil {
		return "", fmt.Errorf("error binding XDG_CACHE_HOME environment variables: %w", err)
	}

	var cacheDir string
	if customCacheHome := v.GetString("XDG_CACHE_HOME"); customCacheHome != "" {
		cacheDir = filepath.Join(customCacheHome, "labctl")
	} else {
		cacheDir = filepath.Join(xdg.CacheHome, "labctl")
	}

	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return "", errors.Join(errUtils.ErrCacheDir, err)
	}

	return filepath.Join(cacheDir, "cache.yaml"), nil
}

// withCacheFileLock is a platform-specific function for file locking.
// It is set during init() in cache_lock_unix.go or cache_lock_windows.go.
var withCacheFileLock func(cacheFile string, fn func() error) error

// loadCacheWithReadLock is a platform-specific function for loading the cache
// under a read lock. It is set during init() in cache_lock_unix.go.
var loadCacheWithReadLock func(cacheFile string) (CacheConfig, error)

// LoadCache reads the cache file, returning a zero CacheConfig when the file
// does not exist yet.
func LoadCache() (CacheConfig, error) {
	cacheFile, err := GetCacheFilePath()
	if err != nil {
		return CacheConfig{}, err
	}

	var cfg CacheConfig
	if _, err := os.Stat(cacheFile); os.IsNotExist(err) {
		// No file yet, return default.
		return cfg, nil
	}

	// On Windows, skip read locks entirely to avoid timeout issues.
	if runtime.GOOS == "windows" {
		v := viper.New()
		v.SetConfigFile(cacheFile)
		// The cache is non-critical, so read errors only get traced.
		if err := v.ReadInConfig(); err != nil {
			log.Trace("Failed to read cache file on Windows (non-critical)", "error", err, "file", cacheFile)
		}
		if err := v.Unmarshal(&cfg); err != nil {
			log.Trace("Failed to unmarshal cache on Windows (non-critical)", "error", err, "file", cacheFile)
		}
		return cfg, nil
	}

	return loadCacheWithReadLock(cacheFile)
}

// UpdateCache atomically updates the cache file by acquiring a lock, loading
// the current state, applying the update function, and saving the result.
// This prevents race conditions when multiple labctl processes update
// different fields simultaneously.
func UpdateCache(update func(*CacheConfig)) error {
	cacheFile, err := GetCacheFilePath()
	if err != nil {
		return err
	}

	return withCacheFileLock(cacheFile, func() error {
		var cfg CacheConfig
		if _, err := os.Stat(cacheFile); err == nil {
			v := viper.New()
			v.SetConfigFile(cacheFile)
			if err := v.ReadInConfig(); err != nil {
				return errors.Join(errUtils.ErrCacheRead, err)
			}
			if err := v.Unmarshal(&cfg); err != nil {
				return errors.Join(errUtils.ErrCacheUnmarshal, err)
			}
		}

		update(&cfg)

		return saveCacheLocked(cacheFile, cfg)
	})
}

// saveCacheLocked writes the cache file. The caller holds the cache lock.
func saveCacheLocked(cacheFile string, cfg CacheConfig) error {
	data := map[string]interface{}{
		"last_checked": cfg.LastChecked,
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf, yaml.Indent(2))
	if err := enc.Encode(data); err != nil {
		return errors.Join(errUtils.ErrCacheMarshal, err)
	}

	if err := filesystem.WriteFileAtomic(cacheFile, buf.Bytes(), 0o644); err != nil {
		return errors.Join(errUtils.ErrCacheWrite, err)
	}
	return nil
}

// shouldCheckForUpdatesAt is a helper for testing that checks if an update
// is due based on the provided timestamps and frequency.
func shouldCheckForUpdatesAt(lastChecked int64, frequency string, now int64) bool {
	interval, err := parseFrequency(frequency)
	if err != nil {
		// Unparseable frequency falls back to daily.
		log.Warn("Unsupported check for update frequency encountered. Defaulting to daily", "frequency", frequency)
		interval = 86400 // daily
	}
	return now-lastChecked >= interval
}

// ShouldCheckForUpdates determines whether an update check is due based on
// the configured frequency and the time of the last check.
func ShouldCheckForUpdates(lastChecked int64, frequency string) bool {
	return shouldCheckForUpdatesAt(lastChecked, frequency, time.Now().Unix())
}

// parseFrequency attempts to parse the frequency string in three ways:
// 1. As an integer (seconds)
// 2. As a duration with a suffix (e.g., "1h", "5m", "30s")
// 3. As one of the predefined keywords (daily, hourly, etc.)
func parseFrequency(frequency string) (int64, error) {
	freq := strings.TrimSpace(frequency)

	if intVal, err := strconv.ParseInt(freq, 10, 64); err == nil {
		if intVal > 0 {
			return intVal, nil
		}
	}

	// Parse duration with suffix.
	if len(freq) > 1 {
		unit := freq[len(freq)-1]
		valPart := freq[:len(freq)-1]
		if valInt, err := strconv.ParseInt(valPart, 10, 64); err == nil && valInt > 0 {
			switch unit {
			case 's':
				return valInt, nil
			case 'm':
				return valInt * 60, nil
			case 'h':
				return valInt * 3600, nil
			case 'd':
				return valInt * 86400, nil
			default:
				return 0, fmt.Errorf("unrecognized duration unit: %s", string(unit))
			}
		}
	}

	// Handle predefined keywords.
	switch freq {
	case "minute":
		return 60, nil
	case "hourly":
		return 3600, nil
	case "daily":
		return 86400, nil
	case "weekly":
		return 604800, nil
	case "monthly":
		return 2592000, nil
	case "yearly":
		return 31536000, nil
	default:
		return 0, fmt.Errorf("unrecognized frequency: %s", freq)
	}
}
