// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package loader

import "os"

// FileReader abstracts the filesystem read behind the *_FILE value
// indirection. The read is synchronous and best-effort: any failure is
// treated as "value absent" by the loader, never propagated.
type FileReader interface {
	ReadFile(path string) ([]byte, error)
}

// OSFileReader reads through the os package. It is the default FileReader.
type OSFileReader struct{}

// ReadFile implements FileReader.
func (OSFileReader) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}
