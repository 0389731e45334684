package record

import (
	"sync"

	"github.com/spf13/afero"
)

// pending tracks temp sidecars still being written, each with the filesystem
// it lives on, so a signal handler can remove them.
var pending = &tmpRegistry{}

type tmpRegistry struct {
	mu    sync.Mutex
	files map[string]afero.Fs
}

// RegisterTmp records that path is a temp sidecar on fs.
func RegisterTmp(fs afero.Fs, path string) {
	pending.mu.Lock()
	defer pending.mu.Unlock()
	if pending.files == nil {
		pending.files = make(map[string]afero.Fs)
	}
	pending.files[path] = fs
}

// DeregisterTmp forgets path once it has been renamed or removed.
func DeregisterTmp(path string) {
	pending.mu.Lock()
	defer pending.mu.Unlock()
	delete(pending.files, path)
}

// PendingTmp returns the number of temp sidecars not yet deregistered.
func PendingTmp() int {
	pending.mu.Lock()
	defer pending.mu.Unlock()
	return len(pending.files)
}

// CleanupTmpFiles removes every registered temp sidecar from the filesystem
// it was created on and empties the registry.
func CleanupTmpFiles() {
	pending.mu.Lock()
	files := pending.files
	pending.files = nil
	pending.mu.Unlock()

	for path, fs := range files {
		_ = fs.Remove(path)
	}
}
