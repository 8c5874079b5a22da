package cli

import (
	"fmt"
	"os"
)

type UsageError struct {
	Message string
}

func (e UsageError) Error() string { return e.Message }

func Usage() string {
	return `attest: data-protection compliance assessment

Usage:
  attest [start]
  attest score --answers <file> [--catalog <file>] [--format text|markdown|html] [--out <file>]
  attest catalog validate [--catalog <file>]
  attest catalog lint [--strict] [--catalog <file>]
  attest catalog show [--variant pre-cloud|post-cloud] [--catalog <file>]
  attest config init [--force]
  attest config show

Environment:
  ATTEST_CATALOG    catalog file (overrides catalog.path)
  ATTEST_LOG_LEVEL  debug | info | warn | error
`
}

func Run(args []string) error {
	if len(args) == 0 {
		return runStart(nil)
	}

	switch args[0] {
	case "help", "-h", "--help":
		fmt.Fprintln(os.Stdout, Usage())
		return nil
	case "start":
		return runStart(args[1:])
	case "score":
		return runScore(args[1:])
	case "catalog":
		if len(args) < 2 {
			return UsageError{Message: "catalog requires a subcommand: validate | lint | show"}
		}
		switch args[1] {
		case "validate":
			return runCatalogValidate(args[2:])
		case "lint":
			return runCatalogLint(args[2:])
		case "show":
			return runCatalogShow(args[2:])
		default:
			return UsageError{Message: fmt.Sprintf("unknown catalog subcommand: %q", args[1])}
		}
	case "config":
		if len(args) < 2 {
			return UsageError{Message: "config requires a subcommand: init | show"}
		}
		switch args[1] {
		case "init":
			return runConfigInit(args[2:])
		case "show":
			if len(args) != 2 {
				return UsageError{Message: "config show takes no arguments"}
			}
			return runConfigShow()
		default:
			return UsageError{Message: fmt.Sprintf("unknown config subcommand: %q", args[1])}
		}
	default:
		return UsageError{Message: fmt.Sprintf("unknown command: %q", args[0])}
	}
}
