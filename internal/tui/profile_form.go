package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jbonatakis/attest/internal/catalog"
	"github.com/jbonatakis/attest/internal/profile"
)

type profileField int

const (
	fieldCompanyName profileField = iota
	fieldIndustry
	fieldCompanySize
	fieldLocation
	fieldContactEmail
	fieldComplianceOfficer
	fieldDPO
	fieldDataTypes
	fieldCloudStatus
	fieldSubmit
)

var fieldKeys = map[profileField]string{
	fieldCompanyName:       "companyName",
	fieldIndustry:          "industry",
	fieldCompanySize:       "companySize",
	fieldLocation:          "location",
	fieldContactEmail:      "contactEmail",
	fieldComplianceOfficer: "complianceOfficer",
	fieldCloudStatus:       "cloudStatus",
}

var fieldLabels = map[profileField]string{
	fieldCompanyName:       "Company name",
	fieldIndustry:          "Industry",
	fieldCompanySize:       "Company size",
	fieldLocation:          "Location",
	fieldContactEmail:      "Contact email",
	fieldComplianceOfficer: "Compliance officer",
	fieldDPO:               "Data protection officer",
	fieldDataTypes:         "Primary data types",
	fieldCloudStatus:       "Cloud status",
}

var textFields = []profileField{fieldCompanyName, fieldLocation, fieldContactEmail, fieldComplianceOfficer}

// ProfileForm collects company info before an assessment starts.
type ProfileForm struct {
	focus      profileField
	inputs     map[profileField]textinput.Model
	industry   int
	size       int
	cloud      int
	dpo        bool
	dataTypes  []string
	typeCursor int
	errs       map[string]string
	submitted  bool
	width      int
}

// NewProfileForm prefills the form from p, so editing keeps earlier input.
func NewProfileForm(p profile.Profile) ProfileForm {
	f := ProfileForm{
		inputs:    map[profileField]textinput.Model{},
		industry:  indexOf(profile.Industries, p.Industry),
		size:      indexOf(profile.CompanySizes, p.CompanySize),
		cloud:     -1,
		dpo:       p.HasDataProtectionOfficer,
		dataTypes: append([]string(nil), p.PrimaryDataTypes...),
		errs:      map[string]string{},
		width:     70,
	}
	if v, ok := p.Variant(); ok {
		f.cloud = indexOf(variantNames(), string(v))
	}

	values := map[profileField]string{
		fieldCompanyName:       p.CompanyName,
		fieldLocation:          p.Location,
		fieldContactEmail:      p.ContactEmail,
		fieldComplianceOfficer: p.ComplianceOfficer,
	}
	placeholders := map[profileField]string{
		fieldCompanyName:       "Acme Ltd",
		fieldLocation:          "Lagos, Nigeria",
		fieldContactEmail:      "compliance@example.com",
		fieldComplianceOfficer: "Full name",
	}
	for _, field := range textFields {
		ti := textinput.New()
		ti.Placeholder = placeholders[field]
		ti.CharLimit = 200
		ti.Width = 40
		ti.SetValue(values[field])
		f.inputs[field] = ti
	}
	f.setFocus(fieldCompanyName)
	return f
}

func variantNames() []string {
	out := make([]string, len(catalog.Variants))
	for i, v := range catalog.Variants {
		out[i] = string(v)
	}
	return out
}

func indexOf(options []string, value string) int {
	for i, o := range options {
		if o == value {
			return i
		}
	}
	return -1
}

func pick(options []string, i int) string {
	if i < 0 || i >= len(options) {
		return ""
	}
	return options[i]
}

func (f *ProfileForm) SetSize(width int) {
	f.width = width
	inputWidth := width - 30
	if inputWidth > 60 {
		inputWidth = 60
	}
	if inputWidth < 20 {
		inputWidth = 20
	}
	for field, ti := range f.inputs {
		ti.Width = inputWidth
		f.inputs[field] = ti
	}
}

// Profile returns the profile as currently entered.
func (f ProfileForm) Profile() profile.Profile {
	return profile.Profile{
		CompanyName:              strings.TrimSpace(f.inputs[fieldCompanyName].Value()),
		Industry:                 pick(profile.Industries, f.industry),
		CompanySize:              pick(profile.CompanySizes, f.size),
		Location:                 strings.TrimSpace(f.inputs[fieldLocation].Value()),
		ContactEmail:             strings.TrimSpace(f.inputs[fieldContactEmail].Value()),
		ComplianceOfficer:        strings.TrimSpace(f.inputs[fieldComplianceOfficer].Value()),
		HasDataProtectionOfficer: f.dpo,
		PrimaryDataTypes:         append([]string(nil), f.dataTypes...),
		CloudStatus:              pick(variantNames(), f.cloud),
	}
}

// Submitted reports a validated submit since the last Reset.
func (f ProfileForm) Submitted() bool {
	return f.submitted
}

func (f *ProfileForm) ResetSubmit() {
	f.submitted = false
}

// SetError shows msg against a field, as if validation had failed there.
func (f *ProfileForm) SetError(field, msg string) {
	f.errs[field] = msg
}

func (f ProfileForm) Errors() map[string]string {
	return f.errs
}

func (f *ProfileForm) setFocus(field profileField) {
	f.focus = field
	for k, ti := range f.inputs {
		if k == field {
			ti.Focus()
		} else {
			ti.Blur()
		}
		f.inputs[k] = ti
	}
}

func (f *ProfileForm) submit() {
	f.errs = map[string]string{}
	for _, e := range profile.Validate(f.Profile()) {
		if _, seen := f.errs[e.Field]; !seen {
			f.errs[e.Field] = e.Message
		}
	}
	if len(f.errs) != 0 {
		for field := fieldCompanyName; field < fieldSubmit; field++ {
			if _, bad := f.errs[fieldKeys[field]]; bad {
				f.setFocus(field)
				break
			}
		}
		return
	}
	f.submitted = true
}

func cycle(i, n, delta int) int {
	if n == 0 {
		return -1
	}
	if i < 0 {
		if delta < 0 {
			return n - 1
		}
		return 0
	}
	return (i + delta + n) % n
}

func (f ProfileForm) Update(msg tea.Msg) (ProfileForm, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return f, nil
	}

	switch key.String() {
	case "tab", "down":
		if f.focus < fieldSubmit {
			f.setFocus(f.focus + 1)
		}
		return f, nil
	case "shift+tab", "up":
		if f.focus > fieldCompanyName {
			f.setFocus(f.focus - 1)
		}
		return f, nil
	case "ctrl+s":
		f.submit()
		return f, nil
	case "enter":
		if f.focus == fieldSubmit {
			f.submit()
			return f, nil
		}
		f.setFocus(f.focus + 1)
		return f, nil
	}

	delta := 0
	switch key.String() {
	case "left", "h":
		delta = -1
	case "right", "l":
		delta = 1
	}

	switch f.focus {
	case fieldIndustry:
		if delta != 0 {
			f.industry = cycle(f.industry, len(profile.Industries), delta)
		}
		return f, nil
	case fieldCompanySize:
		if delta != 0 {
			f.size = cycle(f.size, len(profile.CompanySizes), delta)
		}
		return f, nil
	case fieldCloudStatus:
		if delta != 0 {
			f.cloud = cycle(f.cloud, len(catalog.Variants), delta)
		}
		return f, nil
	case fieldDPO:
		if delta != 0 || key.String() == " " {
			f.dpo = !f.dpo
		}
		return f, nil
	case fieldDataTypes:
		if delta != 0 {
			f.typeCursor = cycle(f.typeCursor, len(profile.DataTypes), delta)
		}
		if key.String() == " " {
			p := profile.Profile{PrimaryDataTypes: f.dataTypes}.ToggleDataType(profile.DataTypes[f.typeCursor])
			f.dataTypes = p.PrimaryDataTypes
		}
		return f, nil
	case fieldSubmit:
		return f, nil
	}

	ti, ok := f.inputs[f.focus]
	if !ok {
		return f, nil
	}
	var cmd tea.Cmd
	ti, cmd = ti.Update(key)
	f.inputs[f.focus] = ti
	return f, cmd
}

func (f ProfileForm) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69"))
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	focusLabelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	selectedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	cursorStyle := lipgloss.NewStyle().Background(lipgloss.Color("69")).Foreground(lipgloss.Color("15"))
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	lines := []string{
		titleStyle.Render("Company Information"),
		mutedStyle.Render("Tell us about your organization to tailor the assessment."),
		"",
	}

	label := func(field profileField) string {
		text := fmt.Sprintf("%-24s", fieldLabels[field])
		if f.focus == field {
			return focusLabelStyle.Render("> " + text)
		}
		return labelStyle.Render("  " + text)
	}
	choice := func(options []string, i int, placeholder string) string {
		v := pick(options, i)
		if v == "" {
			return mutedStyle.Render("< " + placeholder + " >")
		}
		return valueStyle.Render("< " + v + " >")
	}

	for field := fieldCompanyName; field < fieldSubmit; field++ {
		var value string
		switch field {
		case fieldIndustry:
			value = choice(profile.Industries, f.industry, "select industry")
		case fieldCompanySize:
			value = choice(profile.CompanySizes, f.size, "select size")
		case fieldCloudStatus:
			value = choice(variantNames(), f.cloud, "pre-cloud or post-cloud")
		case fieldDPO:
			value = valueStyle.Render("[ ] no")
			if f.dpo {
				value = selectedStyle.Render("[x] yes")
			}
		case fieldDataTypes:
			value = mutedStyle.Render(fmt.Sprintf("%d selected", len(f.dataTypes)))
		default:
			value = f.inputs[field].View()
		}
		lines = append(lines, label(field)+" "+value)

		if field == fieldDataTypes && f.focus == fieldDataTypes {
			selected := map[string]bool{}
			for _, d := range f.dataTypes {
				selected[d] = true
			}
			for i, d := range profile.DataTypes {
				box := "[ ]"
				if selected[d] {
					box = "[x]"
				}
				row := fmt.Sprintf("%s %s", box, d)
				if i == f.typeCursor {
					row = cursorStyle.Render(row)
				} else if selected[d] {
					row = selectedStyle.Render(row)
				}
				lines = append(lines, "      "+row)
			}
		}
		if msg, bad := f.errs[fieldKeys[field]]; bad && fieldKeys[field] != "" {
			lines = append(lines, "    "+errorStyle.Render(msg))
		}
	}

	submit := "  [ Start assessment ]"
	if f.focus == fieldSubmit {
		submit = focusLabelStyle.Render("> [ Start assessment ]")
	}
	lines = append(lines, "", submit)
	if msg, bad := f.errs[formErrorKey]; bad {
		lines = append(lines, "", errorStyle.Render(msg))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// formErrorKey holds errors that belong to the whole form.
const formErrorKey = "form"
