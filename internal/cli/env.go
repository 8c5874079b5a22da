package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jbonatakis/attest/internal/catalog"
	"github.com/jbonatakis/attest/internal/config"
	"github.com/jbonatakis/attest/internal/logging"
)

// env is what every command needs: the project root, resolved config and
// the file logger.
type env struct {
	root   string
	cfg    config.ResolvedConfig
	logger *slog.Logger
	logs   io.Closer
}

func projectRoot() string {
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

func loadEnv() (*env, error) {
	root := projectRoot()
	cfg, err := config.LoadConfig(root)
	if err != nil {
		return nil, err
	}
	logger, closer, err := logging.Open(config.GlobalDir(), cfg.Log.Level)
	if err != nil {
		// Logging is best effort; the commands still work without it.
		logger, closer = logging.Discard(), io.NopCloser(nil)
	}
	return &env{root: root, cfg: cfg, logger: logger, logs: closer}, nil
}

func (e *env) Close() {
	_ = e.logs.Close()
}

// catalogPath picks the --catalog flag, then catalog.path. Relative paths
// resolve against the project root. Empty means the reference catalog.
func (e *env) catalogPath(flagValue string) string {
	p := flagValue
	if p == "" {
		p = e.cfg.Catalog.Path
	}
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(e.root, p)
}

func (e *env) loadCatalog(flagValue string) (*catalog.Catalog, error) {
	path := e.catalogPath(flagValue)
	if path == "" {
		return catalog.Default()
	}
	c, err := catalog.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	e.logger.Debug("catalog loaded", slog.String("path", path), slog.String("version", c.Version()))
	return c, nil
}
