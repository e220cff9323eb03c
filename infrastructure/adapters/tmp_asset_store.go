package adapters

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/anmicius0/vintage-adventure-server/application/ports/outbound"
	"github.com/google/uuid"
)

// tmpAssetStore persists job artifacts under uuid-suffixed paths so that
// concurrent compositions can never collide on a shared filename.
type tmpAssetStore struct {
	logger  outbound.LoggerPort
	baseDir string
}

func NewTmpAssetStore(logger outbound.LoggerPort) outbound.TempAssetStorePort {
	return &tmpAssetStore{
		logger:  logger,
		baseDir: os.TempDir(),
	}
}

func (t *tmpAssetStore) Acquire(data []byte, logicalName string) (outbound.AssetHandle, error) {
	path := filepath.Join(t.baseDir, uuid.NewString()+"-"+logicalName)

	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.logger.ErrorWithFields(err, "Failed to persist temporary asset", map[string]interface{}{
			"logical_name": logicalName,
		})
		return outbound.AssetHandle{}, err
	}

	return outbound.AssetHandle{Path: path}, nil
}

func (t *tmpAssetStore) Release(handle outbound.AssetHandle) error {
	if handle.Path == "" {
		return nil
	}

	err := os.Remove(handle.Path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		t.logger.ErrorWithFields(err, "Failed to remove temporary asset", map[string]interface{}{
			"path": handle.Path,
		})
		return err
	}

	return nil
}
