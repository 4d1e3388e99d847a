package storage

import (
	"fmt"
	"io"
	"sync"

	"github.com/shashiranjanraj/plantnet/config"
	"github.com/shashiranjanraj/plantnet/pkg/logger"
)

var (
	mu          sync.RWMutex
	disks       = map[string]Disk{}
	defaultDisk string
)

// Connect boots the configured disks. The local disk is always available;
// the s3 disk comes up only when S3_BUCKET is set, and a misconfigured
// bucket downgrades to a warning so image uploads keep working locally.
// Call once at startup.
func Connect() {
	mu.Lock()
	defer mu.Unlock()

	defaultDisk = config.StorageDefault()
	disks["local"] = newLocalDisk()

	if config.StorageS3Bucket() == "" {
		return
	}
	d, err := newS3Disk()
	if err != nil {
		logger.Warn("storage: s3 disk disabled", "error", err)
		return
	}
	disks["s3"] = d
}

// Use returns the named disk. Panics on an unconfigured name; pick disks
// at boot, not per request.
func Use(name string) Disk {
	mu.RLock()
	d, ok := disks[name]
	mu.RUnlock()
	if !ok {
		panic(fmt.Sprintf("storage: disk %q is not configured", name))
	}
	return d
}

// RegisterDisk plugs in a custom Disk implementation, mainly for tests.
func RegisterDisk(name string, d Disk) {
	mu.Lock()
	disks[name] = d
	mu.Unlock()
}

func active() Disk {
	mu.RLock()
	name := defaultDisk
	mu.RUnlock()
	return Use(name)
}

// Put writes content to path on the default disk.
func Put(path string, content []byte) error { return active().Put(path, content) }

// PutStream writes from r to path on the default disk.
func PutStream(path string, r io.Reader) error { return active().PutStream(path, r) }

// Get returns file content from the default disk.
func Get(path string) ([]byte, error) { return active().Get(path) }

// GetStream returns a ReadCloser from the default disk.
func GetStream(path string) (io.ReadCloser, error) { return active().GetStream(path) }

// Exists reports whether path exists on the default disk.
func Exists(path string) bool { return active().Exists(path) }

// Delete removes path from the default disk.
func Delete(path string) error { return active().Delete(path) }

// URL returns the public URL for path on the default disk.
func URL(path string) string { return active().URL(path) }
