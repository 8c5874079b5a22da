package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/jbonatakis/attest/internal/fsutil"
)

var ErrConfigExists = errors.New("config file already exists")

// InitProjectConfig writes the default config to <projectRoot>/.attest/config.json
// and returns its path. An existing file is only replaced when force is set.
func InitProjectConfig(ctx context.Context, projectRoot string, force bool) (string, error) {
	if projectRoot == "" {
		return "", errors.New("project root required")
	}
	path := ProjectPath(projectRoot)
	if !force {
		if _, err := os.Stat(path); err == nil {
			return path, fmt.Errorf("%w: %s", ErrConfigExists, path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("stat config %s: %w", path, err)
		}
	}
	if err := SaveConfig(ctx, path, DefaultRawConfig()); err != nil {
		return "", err
	}
	return path, nil
}

// SaveConfig writes cfg as indented JSON, atomically and under a file lock.
func SaveConfig(ctx context.Context, path string, cfg RawConfig) error {
	if cfg.SchemaVersion == nil {
		version := SchemaVersion
		cfg.SchemaVersion = &version
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	b = append(b, '\n')
	if err := fsutil.WriteFileLocked(ctx, path, b, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}
