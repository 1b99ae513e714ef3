package utils

import (
	"os"
	"path/filepath"
)

// FileExists checks if the file exists and is not a directory.
func FileExists(filename string) bool {
	fileInfo, err := os.Stat(filename)
	if os.IsNotExist(err) || err != nil {
		return false
	}
	return !fileInfo.IsDir()
}

// SearchConfigFile checks if a config file exists at the given path. When the
// path has no extension, the .yaml and .yml variants are tried in order.
func SearchConfigFile(path string) (string, bool) {
	if filepath.Ext(path) != "" {
		return path, FileExists(path)
	}

	for _, ext := range []string{".yaml", ".yml"} {
		candidate := path + ext
		if FileExists(candidate) {
			return candidate, true
		}
	}

	return "", false
}

// EnsureDir creates the parent directory of fileName if it does not exist.
func EnsureDir(fileName string) error {
	dirName := filepath.Dir(fileName)

	if _, err := os.Stat(dirName); err != nil {
		if err := os.MkdirAll(dirName, os.ModePerm); err != nil {
			return err
		}
	}

	return nil
}
