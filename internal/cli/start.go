package cli

import (
	"flag"
	"io"

	"github.com/jbonatakis/attest/internal/tui"
)

func runStart(args []string) error {
	fs := flag.NewFlagSet("start", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	catalogFlag := fs.String("catalog", "", "catalog file")
	if err := fs.Parse(args); err != nil {
		return UsageError{Message: err.Error()}
	}
	if fs.NArg() != 0 {
		return UsageError{Message: "start takes only flags (no positional args)"}
	}

	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	cat, err := e.loadCatalog(*catalogFlag)
	if err != nil {
		return err
	}

	e.logger.Info("wizard started")
	return tui.Start(tui.Options{
		Catalog: cat,
		Config:  e.cfg,
		Logger:  e.logger,
	})
}
