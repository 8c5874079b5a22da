package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jbonatakis/attest/internal/assessment"
	"github.com/jbonatakis/attest/internal/catalog/catalogtest"
	"github.com/jbonatakis/attest/internal/config"
	"gopkg.in/yaml.v3"
)

func captureStdout(fn func() error) (string, error) {
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		return "", err
	}
	os.Stdout = w

	done := make(chan []byte)
	go func() {
		data, _ := io.ReadAll(r)
		done <- data
	}()

	runErr := fn()
	_ = w.Close()
	os.Stdout = old
	data := <-done
	_ = r.Close()
	return string(data), runErr
}

// setup isolates a test in a fresh project directory and home directory.
func setup(t *testing.T) (string, string) {
	t.Helper()
	project := t.TempDir()
	home := t.TempDir()

	restore := config.SetUserHomeDirForTest(func() (string, error) { return home, nil })
	t.Cleanup(restore)
	for _, key := range []string{config.EnvCatalog, config.EnvLogLevel, "NO_COLOR"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(project); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(oldWD) })
	return project, home
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func answersYAML(status string, answers ...string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "profile:\n  companyName: Acme\n  contactEmail: dpo@acme.ng\n  cloudStatus: %s\nanswers:\n", status)
	for _, a := range answers {
		fmt.Fprintf(&b, "  - %q\n", a)
	}
	return b.String()
}

func repeat(value string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = value
	}
	return out
}

func TestRunHelpCommand(t *testing.T) {
	output, err := captureStdout(func() error {
		return Run([]string{"help"})
	})
	if err != nil {
		t.Fatalf("Run(help) returned error: %v", err)
	}
	if !strings.Contains(output, "Usage:") || !strings.Contains(output, "attest score") {
		t.Errorf("unexpected help output: %q", output)
	}
}

func TestRunUsageErrors(t *testing.T) {
	setup(t)
	tests := [][]string{
		{"bogus"},
		{"catalog"},
		{"catalog", "frob"},
		{"config"},
		{"config", "show", "extra"},
		{"score"},
		{"score", "--answers", "a.yaml", "--format", "pdf"},
		{"score", "--nope"},
		{"start", "positional"},
		{"catalog", "show", "--variant", "hybrid"},
	}
	for _, args := range tests {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			err := Run(args)
			var ue UsageError
			if !errors.As(err, &ue) {
				t.Fatalf("expected UsageError, got %v", err)
			}
		})
	}
}

func TestScoreFullPreCloud(t *testing.T) {
	project, home := setup(t)
	writeFile(t, filepath.Join(project, "answers.yaml"), answersYAML("pre-cloud", repeat("yes", 30)...))

	out, err := captureStdout(func() error {
		return Run([]string{"score", "--answers", "answers.yaml"})
	})
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	for _, want := range []string{"Excellent  30/30 (100%)", "Congratulations! You appear to be fully compliant.", "Pre-Cloud assessment, 30 of 30"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	logs, err := os.ReadFile(filepath.Join(home, ".attest", "attest.log"))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(logs), "assessment scored") || !strings.Contains(string(logs), `"variant":"pre-cloud"`) {
		t.Fatalf("unexpected log contents: %s", logs)
	}
}

func TestScorePartialMarkdown(t *testing.T) {
	project, _ := setup(t)
	writeFile(t, filepath.Join(project, "answers.yaml"), answersYAML("post-cloud", "yes", "no", "Azure"))

	out, err := captureStdout(func() error {
		return Run([]string{"score", "--answers", "answers.yaml", "--format", "markdown"})
	})
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	for _, want := range []string{"# Compliance Assessment Report", "3 of 40 questions answered", "Critical**: 1/40"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestScoreUsesConfiguredFormat(t *testing.T) {
	project, _ := setup(t)
	writeFile(t, config.ProjectPath(project), `{"report":{"format":"html"}}`)
	writeFile(t, filepath.Join(project, "answers.yaml"), answersYAML("pre-cloud", "no"))

	out, err := captureStdout(func() error {
		return Run([]string{"score", "--answers", "answers.yaml"})
	})
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if !strings.HasPrefix(out, "<!DOCTYPE html>") {
		t.Fatalf("expected html output, got:\n%s", out)
	}
}

func TestScoreWritesOutFile(t *testing.T) {
	project, _ := setup(t)
	writeFile(t, filepath.Join(project, "answers.yaml"), answersYAML("pre-cloud", "yes", "no"))

	out, err := captureStdout(func() error {
		return Run([]string{"score", "--answers", "answers.yaml", "--format", "md", "--out", "reports/acme.md"})
	})
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if !strings.Contains(out, "wrote reports/acme.md") {
		t.Fatalf("unexpected output %q", out)
	}
	b, err := os.ReadFile(filepath.Join(project, "reports", "acme.md"))
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !strings.Contains(string(b), "1 recommendation found") {
		t.Fatalf("unexpected report:\n%s", b)
	}
}

func TestScoreRejectsBadAnswers(t *testing.T) {
	project, _ := setup(t)

	tests := []struct {
		name string
		body string
		want string
		is   error
	}{
		{"too many", answersYAML("pre-cloud", repeat("no", 31)...), "31 answers given", nil},
		{"blank", answersYAML("pre-cloud", "yes", " "), "answer 2", assessment.ErrBlankAnswer},
		{"no cloud status", answersYAML("", "yes"), "please complete company info", assessment.ErrEmptyCatalog},
		{"unknown key", "profile:\n  cloudStatus: pre-cloud\nextra: 1\n", "field extra not found", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(project, "answers.yaml")
			writeFile(t, path, tt.body)
			_, err := captureStdout(func() error {
				return Run([]string{"score", "--answers", path})
			})
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want it to mention %q", err, tt.want)
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Fatalf("err = %v, want errors.Is %v", err, tt.is)
			}
		})
	}
}

func TestCatalogValidateReference(t *testing.T) {
	setup(t)
	out, err := captureStdout(func() error {
		return Run([]string{"catalog", "validate"})
	})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !strings.Contains(out, "OK reference catalog (pre-cloud: 30 questions, post-cloud: 40 questions)") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestCatalogValidateReportsErrors(t *testing.T) {
	project, _ := setup(t)
	writeFile(t, filepath.Join(project, "bad.yaml"), `
version: "x"
variants:
  pre-cloud:
    bands:
      - {level: excellent, min: 1}
    questions:
      - id: a
        question: "Q?"
        regulations: [NDPR]
`)

	out, err := captureStdout(func() error {
		return Run([]string{"catalog", "validate", "--catalog", "bad.yaml"})
	})
	if err == nil || err.Error() != "validation failed" {
		t.Fatalf("err = %v", err)
	}
	for _, want := range []string{"invalid catalog:", `$.variants["pre-cloud"].questions[0].actions: required`, "expected 6 bands"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestCatalogShowVariant(t *testing.T) {
	setup(t)
	out, err := captureStdout(func() error {
		return Run([]string{"catalog", "show", "--variant", "post-cloud"})
	})
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	for _, want := range []string{"Post-Cloud (40 questions)", "Data Residency Compliance", "post-07", "(text)", "excellent>=34"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Contains(out, "Pre-Cloud") {
		t.Fatalf("pre-cloud shown despite --variant")
	}
}

func TestCatalogFromEnvironment(t *testing.T) {
	project, _ := setup(t)
	b, err := yaml.Marshal(catalogtest.SmallFile())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	writeFile(t, filepath.Join(project, "small.yaml"), string(b))
	t.Setenv(config.EnvCatalog, "small.yaml")

	out, err := captureStdout(func() error {
		return Run([]string{"catalog", "show", "--variant", "pre-cloud"})
	})
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(out, "Pre-Cloud (5 questions)") {
		t.Fatalf("env catalog not used:\n%s", out)
	}
}

func TestCatalogLintReferenceIsClean(t *testing.T) {
	setup(t)
	out, err := captureStdout(func() error { return Run([]string{"catalog", "lint"}) })
	if err != nil {
		t.Fatalf("lint: %v\n%s", err, out)
	}
	if !strings.Contains(out, "OK reference catalog: no findings") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestCatalogLintWarningsAndStrict(t *testing.T) {
	project, _ := setup(t)
	b, err := yaml.Marshal(catalogtest.SmallFile())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	writeFile(t, filepath.Join(project, "small.yaml"), string(b))

	out, err := captureStdout(func() error {
		return Run([]string{"catalog", "lint", "--catalog", "small.yaml"})
	})
	if err != nil {
		t.Fatalf("warnings alone should pass: %v", err)
	}
	for _, want := range []string{"0 blocking", "pre-cloud p1", "[warning] remediation_too_thin (remediation)", "fix: "} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}

	_, err = captureStdout(func() error {
		return Run([]string{"catalog", "lint", "--strict", "--catalog", "small.yaml"})
	})
	if err == nil || err.Error() != "catalog lint failed" {
		t.Fatalf("expected strict lint failure, got %v", err)
	}
}

func TestConfigInitAndShow(t *testing.T) {
	project, _ := setup(t)

	out, err := captureStdout(func() error { return Run([]string{"config", "init"}) })
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, "created config:") {
		t.Fatalf("unexpected output %q", out)
	}
	if _, err := os.Stat(config.ProjectPath(project)); err != nil {
		t.Fatalf("config not written: %v", err)
	}

	out, err = captureStdout(func() error { return Run([]string{"config", "init"}) })
	if err != nil || !strings.Contains(out, "config already exists") {
		t.Fatalf("second init: out=%q err=%v", out, err)
	}

	out, err = captureStdout(func() error { return Run([]string{"config", "show"}) })
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	for _, want := range []string{"KEY", "report.format", "text", "project", "log.level"} {
		if !strings.Contains(out, want) {
			t.Errorf("config show missing %q:\n%s", want, out)
		}
	}
}

func TestLoadCatalogMissingFile(t *testing.T) {
	setup(t)
	_, err := captureStdout(func() error {
		return Run([]string{"catalog", "show", "--catalog", "missing.yaml"})
	})
	if err == nil || !strings.Contains(err.Error(), "catalog file not found") {
		t.Fatalf("err = %v", err)
	}
}
