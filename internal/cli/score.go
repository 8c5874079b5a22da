package cli

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/jbonatakis/attest/internal/assessment"
	"github.com/jbonatakis/attest/internal/catalog"
	"github.com/jbonatakis/attest/internal/logging"
	"github.com/jbonatakis/attest/internal/profile"
	"github.com/jbonatakis/attest/internal/report"
	"gopkg.in/yaml.v3"
)

// AnswersFile is the input to `attest score`: a profile and the answers
// in catalog order.
type AnswersFile struct {
	Profile profile.Profile `yaml:"profile"`
	Answers []string        `yaml:"answers"`
}

func readAnswersFile(path string) (AnswersFile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return AnswersFile{}, fmt.Errorf("read answers %s: %w", path, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)

	var f AnswersFile
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return AnswersFile{}, fmt.Errorf("parse answers %s: empty document", path)
		}
		return AnswersFile{}, fmt.Errorf("parse answers %s: %w", path, err)
	}
	return f, nil
}

// replay feeds the answers through a session exactly as the wizard would.
func replay(cat *catalog.Catalog, f AnswersFile) (*assessment.Session, error) {
	s, err := assessment.Start(cat, f.Profile)
	if err != nil {
		return nil, err
	}
	for i, a := range f.Answers {
		if s.IsComplete() {
			return nil, fmt.Errorf("%d answers given but the %s catalog has %d questions", len(f.Answers), s.Variant(), s.Total())
		}
		if err := s.SubmitAnswer(a); err != nil {
			return nil, fmt.Errorf("answer %d: %w", i+1, err)
		}
	}
	return s, nil
}

func runScore(args []string) error {
	fs := flag.NewFlagSet("score", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	answersPath := fs.String("answers", "", "answers file (YAML)")
	catalogFlag := fs.String("catalog", "", "catalog file")
	formatFlag := fs.String("format", "", "text | markdown | html")
	out := fs.String("out", "", "write the report to this file")
	if err := fs.Parse(args); err != nil {
		return UsageError{Message: err.Error()}
	}
	if fs.NArg() != 0 {
		return UsageError{Message: "score takes only flags (no positional args)"}
	}
	if *answersPath == "" {
		return UsageError{Message: "score requires --answers <file>"}
	}

	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	formatName := *formatFlag
	if formatName == "" {
		formatName = e.cfg.Report.Format
	}
	format, ok := report.ParseFormat(formatName)
	if !ok {
		return UsageError{Message: fmt.Sprintf("invalid format %q", formatName)}
	}

	cat, err := e.loadCatalog(*catalogFlag)
	if err != nil {
		return err
	}
	f, err := readAnswersFile(*answersPath)
	if err != nil {
		return err
	}
	s, err := replay(cat, f)
	if err != nil {
		return fmt.Errorf("%s: %w", *answersPath, err)
	}

	ctx := logging.WithSession(context.Background(), s.ID(), string(s.Variant()))
	r := report.Build(s.Snapshot(), time.Now())
	e.logger.InfoContext(ctx, "assessment scored",
		slog.Int("answered", r.Answered),
		slog.Int("recommendations", len(r.Recommendations)),
		slog.Bool("complete", r.Complete))

	if *out != "" {
		path, err := report.Export(ctx, r, format, "", *out)
		if err != nil {
			return err
		}
		e.logger.InfoContext(ctx, "report exported", slog.String("path", path))
		fmt.Fprintf(os.Stdout, "wrote %s\n", path)
		return nil
	}

	colored := report.UseColor(report.ColorMode(e.cfg.UI.Color), os.Stdout)
	return report.Render(os.Stdout, r, format, colored)
}
