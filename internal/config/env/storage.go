package envconfig

import (
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// memoryPath keeps drawings for the life of the process only.
const memoryPath = ":memory:"

type storageEnv struct {
	Path string `env:"DB"`
}

type storage struct {
	raw storageEnv
}

// NewStorageConfig reads PLANCAD_DB, defaulting to ~/.plancad/plancad.db.
func NewStorageConfig() (*storage, error) {
	var raw storageEnv
	if err := env.ParseWithOptions(&raw, options()); err != nil {
		return nil, err
	}
	if raw.Path == "" {
		raw.Path = defaultDBPath()
	}
	return &storage{raw: raw}, nil
}

func (cfg *storage) Path() string { return cfg.raw.Path }

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return memoryPath
	}
	return filepath.Join(home, ".plancad", "plancad.db")
}
