package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

func ProjectPath(projectRoot string) string {
	return filepath.Join(projectRoot, DirName, FileName)
}

func LoadGlobalConfig() (RawConfig, bool, error) {
	dir := GlobalDir()
	if dir == "" {
		return RawConfig{}, false, nil
	}
	return loadConfigFile(filepath.Join(dir, FileName))
}

func LoadProjectConfig(projectRoot string) (RawConfig, bool, error) {
	if projectRoot == "" {
		return RawConfig{}, false, nil
	}
	return loadConfigFile(ProjectPath(projectRoot))
}

// LoadConfig reads global and project configs and returns the resolved config.
// Precedence per key: environment > project > global > defaults.
func LoadConfig(projectRoot string) (ResolvedConfig, error) {
	globalCfg, _, err := LoadGlobalConfig()
	if err != nil {
		return ResolvedConfig{}, err
	}
	projectCfg, _, err := LoadProjectConfig(projectRoot)
	if err != nil {
		return ResolvedConfig{}, err
	}
	return ApplyEnv(ResolveConfig(projectCfg, globalCfg), os.LookupEnv), nil
}

// ApplyEnv overlays ATTEST_CATALOG and ATTEST_LOG_LEVEL. Unknown log
// levels are ignored.
func ApplyEnv(cfg ResolvedConfig, lookup func(string) (string, bool)) ResolvedConfig {
	if v, ok := lookup(EnvCatalog); ok {
		cfg.Catalog.Path = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvLogLevel); ok {
		if level, ok := normalizeChoice(&v, LogLevels); ok {
			cfg.Log.Level = level
		}
	}
	return cfg
}

// loadConfigFile treats unreadable JSON and unknown schema versions as
// absent so a bad file never blocks the tool.
func loadConfigFile(path string) (RawConfig, bool, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return RawConfig{}, false, nil
		}
		return RawConfig{}, false, fmt.Errorf("read config %s: %w", path, err)
	}

	dec := json.NewDecoder(bytes.NewReader(b))

	var cfg RawConfig
	if err := dec.Decode(&cfg); err != nil {
		return RawConfig{}, false, nil
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return RawConfig{}, false, nil
	}
	if !isSupportedSchemaVersion(cfg.SchemaVersion) {
		return RawConfig{}, false, nil
	}

	return cfg, true, nil
}

func isSupportedSchemaVersion(version *int) bool {
	if version == nil {
		return true
	}
	return *version == SchemaVersion
}
