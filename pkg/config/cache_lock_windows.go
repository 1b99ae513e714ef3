//go:build windows

package config

func init() {
	// Windows file locking is unreliable across SMB shares and the cache is
	// non-critical, so cache operations run without locks there.
	withCacheFileLock = func(cacheFile string, fn func() error) error {
		return fn()
	}
	// LoadCache short-circuits on Windows before this is reached, but keep a
	// lock-free reader so the variable is never nil.
	loadCacheWithReadLock = func(cacheFile string) (CacheConfig, error) {
		return CacheConfig{}, nil
	}
}
