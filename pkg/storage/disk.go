// Package storage stores uploaded plant images behind a disk
// abstraction. The "local" driver writes to the filesystem and serves as
// the default; the "s3" driver targets any S3-compatible object store.
//
// Call storage.Connect() once at boot, then use the package helpers
// against the default disk or storage.Use("s3") for a named one.
package storage

import "io"

// Disk is what every storage driver implements.
type Disk interface {
	// Put writes content at path, creating parents as needed.
	Put(path string, content []byte) error

	// PutStream streams r to path without buffering it in memory.
	PutStream(path string, r io.Reader) error

	// Get reads the whole file at path.
	Get(path string) ([]byte, error)

	// GetStream opens the file for reading; the caller closes it.
	GetStream(path string) (io.ReadCloser, error)

	// Exists reports whether path holds a file.
	Exists(path string) bool

	// URL is the public address clients can fetch path from.
	URL(path string) string

	// Delete removes path; deleting a missing file is not an error.
	Delete(path string) error
}
