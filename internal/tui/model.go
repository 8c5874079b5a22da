package tui

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jbonatakis/attest/internal/assessment"
	"github.com/jbonatakis/attest/internal/catalog"
	"github.com/jbonatakis/attest/internal/config"
	"github.com/jbonatakis/attest/internal/logging"
	"github.com/jbonatakis/attest/internal/profile"
	"github.com/jbonatakis/attest/internal/report"
)

type ViewMode int

const (
	ViewModeProfile ViewMode = iota
	ViewModeQuestion
	ViewModeResults
	ViewModeDashboard
)

type Options struct {
	Catalog *catalog.Catalog
	Config  config.ResolvedConfig
	Logger  *slog.Logger
	// Profile prefills the company form.
	Profile profile.Profile
	Now     func() time.Time
	// Colored overrides ui.color detection; nil means detect from stdout.
	Colored *bool
}

type Model struct {
	opts         Options
	ctx          context.Context
	viewMode     ViewMode
	profileForm  ProfileForm
	session      *assessment.Session
	answerInput  textinput.Model
	progress     progress.Model
	results      viewport.Model
	report       *report.Report
	windowWidth  int
	windowHeight int
	statusMsg    string
	errMsg       string
	exporting    bool
}

type exportDoneMsg struct {
	path string
	err  error
}

func NewModel(opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	ti := textinput.New()
	ti.Placeholder = "Type your response..."
	ti.CharLimit = 500
	ti.Width = 60

	return Model{
		opts:        opts,
		ctx:         context.Background(),
		viewMode:    ViewModeProfile,
		profileForm: NewProfileForm(opts.Profile),
		answerInput: ti,
		progress:    progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		results:     viewport.New(80, 20),
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.windowWidth = typed.Width
		m.windowHeight = typed.Height
		m.profileForm.SetSize(typed.Width)
		m.progress.Width = clamp(typed.Width-20, 20, 60)
		m.answerInput.Width = clamp(typed.Width-20, 20, 80)
		m.results.Width = typed.Width
		m.results.Height = clamp(typed.Height-resultsChrome, 3, typed.Height)
		return m, nil
	case exportDoneMsg:
		m.exporting = false
		if typed.err != nil {
			m.errMsg = "Export failed: " + typed.err.Error()
			m.opts.Logger.ErrorContext(m.ctx, "report export failed", slog.Any("error", typed.err))
			return m, nil
		}
		m.errMsg = ""
		m.statusMsg = "Report exported to " + typed.path
		m.opts.Logger.InfoContext(m.ctx, "report exported", slog.String("path", typed.path))
		return m, nil
	case tea.KeyMsg:
		if typed.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.viewMode {
		case ViewModeProfile:
			return m.updateProfile(typed)
		case ViewModeQuestion:
			return m.updateQuestion(typed)
		case ViewModeResults:
			return m.updateResults(typed)
		case ViewModeDashboard:
			return m.updateDashboard(typed)
		}
	}
	return m, nil
}

func (m Model) updateProfile(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	form, cmd := m.profileForm.Update(msg)
	m.profileForm = form
	if !m.profileForm.Submitted() {
		return m, cmd
	}
	m.profileForm.ResetSubmit()
	return m.beginAssessment(m.profileForm.Profile())
}

// beginAssessment starts a session, or restarts the existing one so the
// session id changes and old answers are dropped.
func (m Model) beginAssessment(p profile.Profile) (tea.Model, tea.Cmd) {
	var err error
	if m.session == nil {
		m.session, err = assessment.Start(m.opts.Catalog, p)
	} else {
		err = m.session.Restart(p)
	}
	if err != nil {
		m.viewMode = ViewModeProfile
		m.profileForm.SetError(formErrorKey, err.Error())
		m.opts.Logger.WarnContext(m.ctx, "assessment not started", slog.Any("error", err))
		return m, nil
	}

	m.ctx = logging.WithSession(context.Background(), m.session.ID(), string(m.session.Variant()))
	m.opts.Logger.InfoContext(m.ctx, "assessment started",
		slog.Int("questions", m.session.Total()),
		slog.String("company", p.CompanyName))

	m.report = nil
	m.statusMsg = ""
	m.errMsg = ""
	m.viewMode = ViewModeQuestion
	cmd := m.prepareQuestion()
	return m, cmd
}

// prepareQuestion focuses the text input for free-text questions.
func (m *Model) prepareQuestion() tea.Cmd {
	m.answerInput.SetValue("")
	cur, err := m.session.CurrentQuestion()
	if err != nil || !cur.Question.RequiresTextInput() {
		m.answerInput.Blur()
		return nil
	}
	return m.answerInput.Focus()
}

func (m Model) currentIsText() bool {
	if m.session == nil {
		return false
	}
	cur, err := m.session.CurrentQuestion()
	return err == nil && cur.Question.RequiresTextInput()
}

func (m Model) updateQuestion(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.currentIsText() {
		switch key {
		case "enter":
			return m.submit(m.answerInput.Value())
		case "esc":
			return m.back()
		}
		var cmd tea.Cmd
		m.answerInput, cmd = m.answerInput.Update(msg)
		return m, cmd
	}

	switch key {
	case "y", "Y":
		return m.submit(assessment.AnswerYes)
	case "n", "N":
		return m.submit(assessment.AnswerNo)
	case "b", "left", "esc":
		return m.back()
	}
	return m, nil
}

func (m Model) submit(value string) (tea.Model, tea.Cmd) {
	if err := m.session.SubmitAnswer(value); err != nil {
		if errors.Is(err, assessment.ErrBlankAnswer) {
			m.errMsg = "Please enter a response before continuing."
			return m, nil
		}
		m.errMsg = err.Error()
		return m, nil
	}
	m.errMsg = ""
	m.opts.Logger.DebugContext(m.ctx, "answer recorded", slog.Int("position", m.session.Position()))

	if m.session.IsComplete() {
		m.finish()
		return m, nil
	}
	cmd := m.prepareQuestion()
	return m, cmd
}

func (m Model) back() (tea.Model, tea.Cmd) {
	err := m.session.GoBack()
	if errors.Is(err, assessment.ErrNoPreviousQuestion) {
		m.errMsg = ""
		m.viewMode = ViewModeProfile
		m.profileForm = NewProfileForm(m.session.Profile())
		m.profileForm.SetSize(m.windowWidth)
		return m, nil
	}
	if err != nil {
		m.errMsg = err.Error()
		return m, nil
	}
	m.errMsg = ""
	cmd := m.prepareQuestion()
	return m, cmd
}

func (m *Model) finish() {
	r := report.Build(m.session.Snapshot(), m.opts.Now())
	m.report = &r
	m.viewMode = ViewModeResults
	m.refreshResults()

	attrs := []any{slog.Int("recommendations", len(r.Recommendations))}
	if r.Score != nil {
		attrs = append(attrs, slog.Int("yes", r.Score.YesCount), slog.String("level", string(r.Score.Level)))
	}
	m.opts.Logger.InfoContext(m.ctx, "assessment completed", attrs...)
}

func (m Model) colored() bool {
	if m.opts.Colored != nil {
		return *m.opts.Colored
	}
	return report.UseColor(report.ColorMode(m.opts.Config.UI.Color), os.Stdout)
}

func (m *Model) refreshResults() {
	if m.report == nil {
		return
	}
	var buf bytes.Buffer
	_ = report.RenderText(&buf, *m.report, m.colored())
	m.results.SetContent(buf.String())
	m.results.GotoTop()
}

func (m Model) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "d":
		m.viewMode = ViewModeDashboard
		return m, nil
	case "r":
		m.opts.Logger.InfoContext(m.ctx, "assessment retaken")
		return m.beginAssessment(m.session.Profile())
	case "e":
		m.viewMode = ViewModeProfile
		m.profileForm = NewProfileForm(m.session.Profile())
		m.profileForm.SetSize(m.windowWidth)
		return m, nil
	case "x":
		return m.export()
	}
	var cmd tea.Cmd
	m.results, cmd = m.results.Update(msg)
	return m, cmd
}

func (m Model) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "d", "b", "esc", "left":
		m.viewMode = ViewModeResults
	case "x":
		return m.export()
	}
	return m, nil
}

func (m Model) export() (tea.Model, tea.Cmd) {
	if m.report == nil || m.exporting {
		return m, nil
	}
	m.exporting = true
	m.statusMsg = "Exporting report..."
	return m, ExportCmd(m.ctx, *m.report, m.opts.Config.Report)
}

// ExportCmd writes the report in the configured format and directory.
func ExportCmd(ctx context.Context, r report.Report, cfg config.ResolvedReport) tea.Cmd {
	return func() tea.Msg {
		format, ok := report.ParseFormat(cfg.Format)
		if !ok {
			format = report.FormatText
		}
		path, err := report.Export(ctx, r, format, cfg.OutputDir, "")
		return exportDoneMsg{path: path, err: err}
	}
}

const resultsChrome = 4

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (m Model) View() string {
	var body string
	switch m.viewMode {
	case ViewModeProfile:
		body = m.center(m.profileForm.View())
	case ViewModeQuestion:
		body = m.center(RenderQuestionView(m))
	case ViewModeResults:
		body = RenderResultsView(m)
	case ViewModeDashboard:
		body = RenderDashboardView(m)
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, RenderBottomBar(m))
}

// center places content in the window, leaving a row for the bottom bar.
func (m Model) center(content string) string {
	if m.windowWidth <= 0 || m.windowHeight <= 1 {
		return content
	}
	return lipgloss.Place(m.windowWidth, m.windowHeight-1, lipgloss.Center, lipgloss.Center, content)
}
