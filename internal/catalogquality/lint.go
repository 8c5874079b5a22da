package catalogquality

import (
	"fmt"
	"strings"

	"github.com/jbonatakis/attest/internal/catalog"
)

const (
	RuleRemediationPlaceholder = "remediation_placeholder"
	RuleDuplicateRegulator     = "duplicate_regulator_label"
	RuleDuplicateQuestionText  = "duplicate_question_text"

	RuleRemediationTooThin    = "remediation_too_thin"
	RuleQuestionNotYesNo      = "question_not_interrogative"
	RuleVagueRemediation      = "vague_remediation"
	RuleCompositeLabelSpacing = "composite_label_spacing"
)

const (
	fieldQuestion    = "question"
	fieldRegulators  = "regulators"
	fieldRemediation = "remediation"

	remediationTooThinWordThreshold = 5
)

var (
	placeholderPhrases = []string{
		"todo",
		"tbd",
		"to be determined",
		"placeholder",
		"fill in later",
		"coming soon",
		"lorem ipsum",
	}

	vaguePhrases = []string{
		"improve",
		"enhance",
		"better",
		"as needed",
		"where appropriate",
		"if possible",
		"look into",
	}

	concreteSignalPhrases = []string{
		"document",
		"define",
		"assign",
		"record",
		"publish",
		"appoint",
		"encrypt",
		"register",
		"review",
		"quarterly",
		"annually",
		"yearly",
		"monthly",
		"within",
		"before",
	}
)

// Lint applies question-level quality checks to every variant of c and
// returns findings in catalog order.
func Lint(c *catalog.Catalog) []Finding {
	findings := make([]Finding, 0)
	for _, v := range catalog.Variants {
		set, ok := c.Set(v)
		if !ok {
			continue
		}
		seenText := map[string]string{}
		for _, q := range set.Questions() {
			findings = append(findings, lintQuestion(v, q)...)

			text := NormalizeText(q.Text())
			if first, dup := seenText[text]; dup {
				findings = append(findings, newFinding(
					SeverityBlocking,
					RuleDuplicateQuestionText,
					v, q.ID(), fieldQuestion,
					fmt.Sprintf("Question text repeats %s.", first),
					"Merge the two questions or reword one so each asks about a distinct control.",
				))
			} else {
				seenText[text] = q.ID()
			}
		}
	}
	return findings
}

func lintQuestion(v catalog.Variant, q catalog.Question) []Finding {
	findings := make([]Finding, 0, 4)
	remediation := q.BaseRemediation()
	placeholder := ContainsAnyPhrase(remediation, placeholderPhrases)

	// Blocking rules first so output order is stable per question.
	if placeholder {
		findings = append(findings, newFinding(
			SeverityBlocking,
			RuleRemediationPlaceholder,
			v, q.ID(), fieldRemediation,
			"Remediation is placeholder text.",
			"Describe the concrete control or process the organization must put in place.",
		))
	}

	seen := map[string]bool{}
	for _, label := range q.RegulatorLabels() {
		key := strings.ToUpper(label)
		if seen[key] {
			findings = append(findings, newFinding(
				SeverityBlocking,
				RuleDuplicateRegulator,
				v, q.ID(), fieldRegulators,
				fmt.Sprintf("Regulator label %q is listed more than once.", label),
				"List each regulator once per question.",
			))
			continue
		}
		seen[key] = true
	}

	if !placeholder && wordCount(remediation) < remediationTooThinWordThreshold {
		findings = append(findings, newFinding(
			SeverityWarning,
			RuleRemediationTooThin,
			v, q.ID(), fieldRemediation,
			"Remediation appears too thin to act on.",
			"Expand the remediation with the control, its owner, or a deadline.",
		))
	}

	if !q.RequiresTextInput() && !strings.HasSuffix(strings.TrimSpace(q.Text()), "?") {
		findings = append(findings, newFinding(
			SeverityWarning,
			RuleQuestionNotYesNo,
			v, q.ID(), fieldQuestion,
			"Yes/no question is not phrased as a question.",
			"End the prompt with a question mark, or mark it as a free-text question.",
		))
	}

	if !placeholder && isVague(remediation) {
		findings = append(findings, newFinding(
			SeverityWarning,
			RuleVagueRemediation,
			v, q.ID(), fieldRemediation,
			"Remediation uses vague language without a concrete action.",
			"Replace vague verbs with the specific control, artifact, or cadence expected.",
		))
	}

	for _, label := range q.RegulatorLabels() {
		if strings.Contains(label, "&") && !strings.Contains(label, " & ") {
			findings = append(findings, newFinding(
				SeverityWarning,
				RuleCompositeLabelSpacing,
				v, q.ID(), fieldRegulators,
				fmt.Sprintf("Composite label %q is not split on \" & \".", label),
				"Write composite regulator labels as \"A & B\" so each body is credited.",
			))
		}
	}

	return findings
}

func isVague(remediation string) bool {
	if !ContainsAnyPhrase(remediation, vaguePhrases) {
		return false
	}
	return !containsDigit(remediation) && !ContainsAnyPhrase(remediation, concreteSignalPhrases)
}

func newFinding(severity Severity, code string, v catalog.Variant, questionID, field, message, suggestion string) Finding {
	return Finding{
		Severity:   severity,
		Code:       code,
		Variant:    v,
		QuestionID: questionID,
		Field:      field,
		Message:    message,
		Suggestion: suggestion,
	}
}
