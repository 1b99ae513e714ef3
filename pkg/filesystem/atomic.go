// Package filesystem provides atomic file writing with per-platform
// implementations.
package filesystem

import "os"

// WriteFileAtomic writes data to filename so readers never observe a
// partially written file. The write goes to a temporary file in the same
// directory followed by a rename.
func WriteFileAtomic(filename string, data []byte, perm os.FileMode) error {
	return writeFileAtomicImpl(filename, data, perm)
}
