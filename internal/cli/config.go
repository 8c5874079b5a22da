package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/jbonatakis/attest/internal/config"
)

func runConfigInit(args []string) error {
	fs := flag.NewFlagSet("config init", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	force := fs.Bool("force", false, "overwrite an existing config")
	if err := fs.Parse(args); err != nil {
		return UsageError{Message: err.Error()}
	}
	if fs.NArg() != 0 {
		return UsageError{Message: "config init takes only flags (no positional args)"}
	}

	path, err := config.InitProjectConfig(context.Background(), projectRoot(), *force)
	if errors.Is(err, config.ErrConfigExists) {
		fmt.Fprintf(os.Stdout, "config already exists: %s (use --force to overwrite)\n", path)
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "created config: %s\n", path)
	return nil
}

func runConfigShow() error {
	values, err := config.Explain(projectRoot())
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tVALUE\tSOURCE\tDESCRIPTION")
	for _, v := range values {
		value := v.Value
		if value == "" {
			value = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", v.Option.KeyPath, value, v.Source, v.Option.Description)
	}
	return tw.Flush()
}
