package tui

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jbonatakis/attest/internal/catalog"
	"github.com/jbonatakis/attest/internal/catalog/catalogtest"
	"github.com/jbonatakis/attest/internal/config"
	"github.com/jbonatakis/attest/internal/logging"
	"github.com/jbonatakis/attest/internal/profile"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keySave  = tea.KeyMsg{Type: tea.KeyCtrlS}
)

func press(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func validProfile(status string) profile.Profile {
	return profile.Profile{
		CompanyName:       "Acme",
		Industry:          "Fintech",
		CompanySize:       "11-50 employees",
		Location:          "Lagos",
		ContactEmail:      "dpo@acme.ng",
		ComplianceOfficer: "Ada",
		CloudStatus:       status,
	}
}

func newTestModel(t *testing.T, c *catalog.Catalog, p profile.Profile) (Model, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	colored := false
	m := NewModel(Options{
		Catalog: c,
		Config:  config.DefaultResolvedConfig(),
		Logger:  logging.New(&logs, "debug"),
		Profile: p,
		Now:     func() time.Time { return time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC) },
		Colored: &colored,
	})
	return m, &logs
}

// started submits the prefilled profile and lands on the first question.
func started(t *testing.T, status string) (Model, *bytes.Buffer) {
	t.Helper()
	m, logs := newTestModel(t, catalogtest.Small(t), validProfile(status))
	m = press(m, keySave)
	if m.viewMode != ViewModeQuestion {
		t.Fatalf("expected question view after submit, got %v (errors %v)", m.viewMode, m.profileForm.Errors())
	}
	return m, logs
}

func TestProfileSubmitStartsAssessment(t *testing.T) {
	m, logs := started(t, "pre-cloud")

	if m.session == nil || m.session.Position() != 0 || m.session.Total() != 5 {
		t.Fatalf("unexpected session state: %+v", m.session)
	}
	if !strings.Contains(m.View(), "Question 1 of 5") {
		t.Fatalf("expected first question in view, got:\n%s", m.View())
	}
	out := logs.String()
	if !strings.Contains(out, `"msg":"assessment started"`) || !strings.Contains(out, `"session_id":"`+m.session.ID()+`"`) {
		t.Fatalf("expected session-tagged start log, got %s", out)
	}
}

func TestYesNoAndTextAnswersCompleteAssessment(t *testing.T) {
	m, logs := started(t, "pre-cloud")

	m = press(m, runes("y"), runes("n"))
	if !m.currentIsText() {
		t.Fatalf("expected free-text question at position 3")
	}
	m = press(m, runes("AWS"), keyEnter, runes("y"), runes("n"))

	if m.viewMode != ViewModeResults {
		t.Fatalf("expected results view, got %v", m.viewMode)
	}
	if m.report == nil || m.report.Score == nil {
		t.Fatalf("expected report with score")
	}
	if m.report.Score.YesCount != 2 || m.report.Score.Level != catalog.LevelSignificant {
		t.Fatalf("score = %+v", m.report.Score)
	}
	if len(m.report.Recommendations) != 3 {
		t.Fatalf("recommendations = %d, want 3", len(m.report.Recommendations))
	}
	answers := m.session.Answers()
	if answers[2].Value != "AWS" || !answers[2].IsTextAnswer {
		t.Fatalf("text answer = %+v", answers[2])
	}
	if !strings.Contains(m.View(), "Assessment Results: Acme") {
		t.Fatalf("results header missing:\n%s", m.View())
	}
	if !strings.Contains(logs.String(), "assessment completed") {
		t.Fatalf("completion not logged")
	}
}

func TestBlankTextAnswerShowsError(t *testing.T) {
	m, _ := started(t, "pre-cloud")
	m = press(m, runes("y"), runes("y"), keyEnter)

	if m.session.Position() != 2 {
		t.Fatalf("blank answer advanced the session to %d", m.session.Position())
	}
	if !strings.Contains(m.errMsg, "Please enter a response") {
		t.Fatalf("errMsg = %q", m.errMsg)
	}
}

func TestBackUndoesPreviousAnswer(t *testing.T) {
	m, _ := started(t, "post-cloud")
	m = press(m, runes("n"), runes("y"))
	if m.session.Position() != 2 {
		t.Fatalf("position = %d", m.session.Position())
	}

	// The third question takes free text, so "b" would be typed; esc goes back.
	m = press(m, keyEsc)
	if m.session.Position() != 1 {
		t.Fatalf("position after back = %d, want 1", m.session.Position())
	}
	m = press(m, keyLeft)
	if m.session.Position() != 0 || m.viewMode != ViewModeQuestion {
		t.Fatalf("expected first question, got position %d view %v", m.session.Position(), m.viewMode)
	}
}

func TestBackFromFirstQuestionReturnsToProfile(t *testing.T) {
	m, _ := started(t, "pre-cloud")
	m = press(m, keyEsc)

	if m.viewMode != ViewModeProfile {
		t.Fatalf("expected profile view, got %v", m.viewMode)
	}
	if got := m.profileForm.Profile().CompanyName; got != "Acme" {
		t.Fatalf("profile not prefilled, company = %q", got)
	}
}

func TestEmptyVariantKeepsProfileForm(t *testing.T) {
	f := catalogtest.SmallFile()
	delete(f.Variants, "post-cloud")
	c, err := catalog.New(f)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}

	m, _ := newTestModel(t, c, validProfile("post-cloud"))
	m = press(m, keySave)

	if m.viewMode != ViewModeProfile || m.session != nil {
		t.Fatalf("expected to stay on profile form")
	}
	if msg := m.profileForm.Errors()[formErrorKey]; !strings.Contains(msg, "please complete company info") {
		t.Fatalf("form error = %q", msg)
	}
	if !strings.Contains(m.View(), "please complete company info") {
		t.Fatalf("error not rendered")
	}
}

func completed(t *testing.T) Model {
	t.Helper()
	m, _ := started(t, "pre-cloud")
	return press(m, runes("y"), runes("n"), runes("AWS"), keyEnter, runes("y"), runes("n"))
}

func TestResultsNavigation(t *testing.T) {
	m := completed(t)

	m = press(m, runes("d"))
	if m.viewMode != ViewModeDashboard {
		t.Fatalf("expected dashboard, got %v", m.viewMode)
	}
	view := m.View()
	for _, want := range []string{"Regulatory Compliance Dashboard", "NDPR", "40%", "Poor", "CBN", "Critical"} {
		if !strings.Contains(view, want) {
			t.Fatalf("dashboard missing %q:\n%s", want, view)
		}
	}

	m = press(m, runes("b"))
	if m.viewMode != ViewModeResults {
		t.Fatalf("expected results after back, got %v", m.viewMode)
	}

	m = press(m, runes("e"))
	if m.viewMode != ViewModeProfile || m.profileForm.Profile().ComplianceOfficer != "Ada" {
		t.Fatalf("edit profile did not open a prefilled form")
	}
}

func TestRetakeRestartsSession(t *testing.T) {
	m := completed(t)
	oldID := m.session.ID()

	m = press(m, runes("r"))
	if m.viewMode != ViewModeQuestion {
		t.Fatalf("expected question view, got %v", m.viewMode)
	}
	if m.session.Position() != 0 || m.session.ID() == oldID {
		t.Fatalf("retake kept state: position %d id %q", m.session.Position(), m.session.ID())
	}
	if m.report != nil {
		t.Fatalf("stale report kept after retake")
	}
}

func TestEditProfileSwitchesVariant(t *testing.T) {
	m := completed(t)
	m = press(m, runes("e"))

	// Cloud status is the last choice field before submit.
	m.profileForm.setFocus(fieldCloudStatus)
	m = press(m, keyRight, keySave)

	if m.viewMode != ViewModeQuestion || m.session.Variant() != catalog.VariantPostCloud {
		t.Fatalf("expected post-cloud questions, got view %v variant %v", m.viewMode, m.session.Variant())
	}
	if m.session.Total() != 6 {
		t.Fatalf("total = %d, want 6", m.session.Total())
	}
}

func TestExportWritesConfiguredFormat(t *testing.T) {
	m := completed(t)
	dir := t.TempDir()
	m.opts.Config.Report = config.ResolvedReport{Format: "markdown", OutputDir: dir}

	next, cmd := m.Update(runes("x"))
	m = next.(Model)
	if cmd == nil || !m.exporting {
		t.Fatalf("expected export command")
	}
	m = press(m, cmd())

	if m.exporting || !strings.Contains(m.statusMsg, "Report exported to") {
		t.Fatalf("status = %q err = %q", m.statusMsg, m.errMsg)
	}
	matches, _ := filepath.Glob(filepath.Join(dir, "*.md"))
	if len(matches) != 1 {
		t.Fatalf("expected one markdown export, got %v", matches)
	}
}

func TestQuitKeys(t *testing.T) {
	m := completed(t)
	if _, cmd := m.Update(runes("q")); cmd == nil {
		t.Fatalf("q on results should quit")
	}

	m, _ = started(t, "pre-cloud")
	if _, cmd := m.Update(runes("q")); cmd != nil {
		t.Fatalf("q on a question should be ignored")
	}
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC}); cmd == nil {
		t.Fatalf("ctrl+c should quit")
	}
}

func TestWindowResizeSizesViews(t *testing.T) {
	m := completed(t)
	m = press(m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if m.results.Height != 30-resultsChrome || m.results.Width != 100 {
		t.Fatalf("viewport = %dx%d", m.results.Width, m.results.Height)
	}
}
