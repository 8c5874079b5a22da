package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/jbonatakis/attest/internal/catalog"
	"github.com/jbonatakis/attest/internal/catalogquality"
)

func runCatalogValidate(args []string) error {
	fs := flag.NewFlagSet("catalog validate", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	catalogFlag := fs.String("catalog", "", "catalog file")
	if err := fs.Parse(args); err != nil {
		return UsageError{Message: err.Error()}
	}
	if fs.NArg() != 0 {
		return UsageError{Message: "catalog validate takes only flags (no positional args)"}
	}

	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	source := e.catalogPath(*catalogFlag)
	data := catalog.ReferenceYAML()
	if source == "" {
		source = "reference catalog"
	} else {
		data, err = os.ReadFile(source)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("%w: %s", catalog.ErrCatalogNotFound, source)
			}
			return fmt.Errorf("read catalog %s: %w", source, err)
		}
	}

	f, err := catalog.Decode(source, data)
	if err != nil {
		return err
	}
	errs := catalog.Validate(f)
	if len(errs) == 0 {
		c, err := catalog.New(f)
		if err != nil {
			return err
		}
		var counts []string
		for _, v := range catalog.Variants {
			counts = append(counts, fmt.Sprintf("%s: %d questions", v, c.QuestionCount(v)))
		}
		fmt.Fprintf(os.Stdout, "OK %s (%s)\n", source, strings.Join(counts, ", "))
		return nil
	}

	fmt.Fprintf(os.Stdout, "invalid catalog: %s\n", source)
	for _, ve := range errs {
		fmt.Fprintf(os.Stdout, "- %s: %s\n", ve.Path, ve.Message)
	}
	return errors.New("validation failed")
}

func runCatalogLint(args []string) error {
	fs := flag.NewFlagSet("catalog lint", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	catalogFlag := fs.String("catalog", "", "catalog file")
	strict := fs.Bool("strict", false, "fail on warnings too")
	if err := fs.Parse(args); err != nil {
		return UsageError{Message: err.Error()}
	}
	if fs.NArg() != 0 {
		return UsageError{Message: "catalog lint takes only flags (no positional args)"}
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
	source := e.catalogPath(*catalogFlag)
	if source == "" {
		source = "reference catalog"
	}

	findings := catalogquality.Lint(cat)
	summary := catalogquality.Summarize(findings)
	e.logger.Info("catalog linted",
		slog.String("source", source),
		slog.Int("blocking", summary.Blocking),
		slog.Int("warning", summary.Warning),
	)
	if summary.Total == 0 {
		fmt.Fprintf(os.Stdout, "OK %s: no findings\n", source)
		return nil
	}

	fmt.Fprintf(os.Stdout, "%s: %d findings (%d blocking, %d warning)\n", source, summary.Total, summary.Blocking, summary.Warning)
	for _, q := range summary.Questions {
		fmt.Fprintf(os.Stdout, "\n%s %s\n", q.Variant, q.QuestionID)
		for _, f := range q.Findings {
			fmt.Fprintf(os.Stdout, "  [%s] %s (%s): %s\n", f.Severity, f.Code, f.Field, f.Message)
			fmt.Fprintf(os.Stdout, "    fix: %s\n", f.Suggestion)
		}
	}

	if catalogquality.HasBlocking(findings) || *strict {
		return errors.New("catalog lint failed")
	}
	return nil
}

func runCatalogShow(args []string) error {
	fs := flag.NewFlagSet("catalog show", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	catalogFlag := fs.String("catalog", "", "catalog file")
	variantFlag := fs.String("variant", "", "pre-cloud | post-cloud")
	if err := fs.Parse(args); err != nil {
		return UsageError{Message: err.Error()}
	}
	if fs.NArg() != 0 {
		return UsageError{Message: "catalog show takes only flags (no positional args)"}
	}

	variants := catalog.Variants
	if *variantFlag != "" {
		v, ok := catalog.ParseVariant(*variantFlag)
		if !ok {
			return UsageError{Message: fmt.Sprintf("invalid variant %q", *variantFlag)}
		}
		variants = []catalog.Variant{v}
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

	for i, v := range variants {
		if i > 0 {
			fmt.Fprintln(os.Stdout)
		}
		set, ok := cat.Set(v)
		if !ok {
			fmt.Fprintf(os.Stdout, "%s: no questions\n", v.Label())
			continue
		}
		printQuestionSet(os.Stdout, set)
	}
	return nil
}

func printQuestionSet(w io.Writer, set *catalog.QuestionSet) {
	fmt.Fprintf(w, "%s (%d questions)\n", set.Variant().Label(), set.Len())

	var bands []string
	for _, b := range set.Bands() {
		bands = append(bands, fmt.Sprintf("%s>=%d", b.Level, b.Min))
	}
	fmt.Fprintf(w, "Bands: %s\n", strings.Join(bands, " "))

	for _, c := range set.Categories() {
		fmt.Fprintf(w, "\n%s\n", c.Name)
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, q := range c.Questions {
			text := q.Text()
			if q.RequiresTextInput() {
				text += " (text)"
			}
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", q.ID(), q.Priority(), strings.Join(q.RegulatorLabels(), ", "), text)
		}
		_ = tw.Flush()
	}
}
