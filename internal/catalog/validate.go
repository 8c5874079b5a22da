package catalog

import (
	"fmt"
	"sort"
	"strings"
)

type ValidationError struct {
	Path    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Validate checks a decoded catalog for authoring defects. A nil result
// means New/Parse will accept it.
func Validate(f File) []ValidationError {
	var errs []ValidationError

	if len(f.Variants) == 0 {
		return append(errs, ValidationError{Path: "$.variants", Message: "required (at least one variant)"})
	}

	keys := make([]string, 0, len(f.Variants))
	for k := range f.Variants {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		raw := f.Variants[key]
		path := fmt.Sprintf("$.variants[%q]", key)

		v, ok := ParseVariant(key)
		if !ok || string(v) != key {
			errs = append(errs, ValidationError{Path: path, Message: fmt.Sprintf("unknown variant %q", key)})
			continue
		}

		count := 0
		seen := map[string]string{}
		checkQuestion := func(qpath string, q RawQuestion) {
			count++
			id := strings.TrimSpace(q.ID)
			switch {
			case id == "":
				errs = append(errs, ValidationError{Path: qpath + ".id", Message: "required"})
			case id != q.ID:
				errs = append(errs, ValidationError{Path: qpath + ".id", Message: "must not have surrounding whitespace"})
			default:
				if prev, dup := seen[id]; dup {
					errs = append(errs, ValidationError{Path: qpath + ".id", Message: fmt.Sprintf("duplicate id %q (first at %s)", id, prev)})
				} else {
					seen[id] = qpath
				}
			}
			if strings.TrimSpace(q.Question) == "" {
				errs = append(errs, ValidationError{Path: qpath + ".question", Message: "required"})
			}
			if _, ok := ParsePriority(q.Priority); !ok {
				errs = append(errs, ValidationError{Path: qpath + ".priority", Message: fmt.Sprintf("invalid priority %q (critical|high|medium)", q.Priority)})
			}

			labelsField, labels, textField, text := "regulations", q.Regulations, "actions", q.Actions
			wrongLabels, wrongText := "regulatoryBody", "remediation"
			if v == VariantPostCloud {
				labelsField, labels, textField, text = "regulatoryBody", q.RegulatoryBody, "remediation", q.Remediation
				wrongLabels, wrongText = "regulations", "actions"
			}
			if len(labels) == 0 {
				errs = append(errs, ValidationError{Path: qpath + "." + labelsField, Message: "required (at least one regulator label)"})
			}
			for i, l := range labels {
				lpath := fmt.Sprintf("%s.%s[%d]", qpath, labelsField, i)
				if strings.TrimSpace(l) == "" {
					errs = append(errs, ValidationError{Path: lpath, Message: "must be non-empty"})
					continue
				}
				for _, part := range strings.Split(l, "&") {
					if strings.TrimSpace(part) == "" {
						errs = append(errs, ValidationError{Path: lpath, Message: fmt.Sprintf("composite label %q has an empty regulator", l)})
						break
					}
				}
			}
			if strings.TrimSpace(text) == "" {
				errs = append(errs, ValidationError{Path: qpath + "." + textField, Message: "required"})
			}
			if wrong := pickLabels(q, wrongLabels); len(wrong) != 0 {
				errs = append(errs, ValidationError{Path: qpath + "." + wrongLabels, Message: fmt.Sprintf("not used by %s questions (use %s)", v, labelsField)})
			}
			if wrong := pickText(q, wrongText); wrong != "" {
				errs = append(errs, ValidationError{Path: qpath + "." + wrongText, Message: fmt.Sprintf("not used by %s questions (use %s)", v, textField)})
			}
		}

		switch v {
		case VariantPreCloud:
			if len(raw.Categories) != 0 {
				errs = append(errs, ValidationError{Path: path + ".categories", Message: "pre-cloud questions are listed flat under questions"})
			}
			for i, q := range raw.Questions {
				checkQuestion(fmt.Sprintf("%s.questions[%d]", path, i), q)
			}
		case VariantPostCloud:
			if len(raw.Questions) != 0 {
				errs = append(errs, ValidationError{Path: path + ".questions", Message: "post-cloud questions must be grouped under categories"})
			}
			if strings.TrimSpace(raw.Category) != "" {
				errs = append(errs, ValidationError{Path: path + ".category", Message: "post-cloud uses named categories"})
			}
			names := map[string]bool{}
			for ci, c := range raw.Categories {
				cpath := fmt.Sprintf("%s.categories[%d]", path, ci)
				name := strings.TrimSpace(c.Name)
				if name == "" {
					errs = append(errs, ValidationError{Path: cpath + ".name", Message: "required"})
				} else if names[name] {
					errs = append(errs, ValidationError{Path: cpath + ".name", Message: fmt.Sprintf("duplicate category %q", name)})
				}
				names[name] = true
				if len(c.Questions) == 0 {
					errs = append(errs, ValidationError{Path: cpath + ".questions", Message: "required (at least one question)"})
				}
				for qi, q := range c.Questions {
					checkQuestion(fmt.Sprintf("%s.questions[%d]", cpath, qi), q)
				}
			}
		}

		if count == 0 {
			errs = append(errs, ValidationError{Path: path, Message: "no questions"})
			continue
		}
		errs = append(errs, validateBands(path+".bands", raw.Bands, count)...)
	}

	return errs
}

// validateBands requires one band per level, best first, with strictly
// decreasing minimums ending at 0 so every yes count 0..total maps to
// exactly one level.
func validateBands(path string, bands []RawBand, total int) []ValidationError {
	var errs []ValidationError
	if len(bands) != len(Levels) {
		return append(errs, ValidationError{Path: path, Message: fmt.Sprintf("expected %d bands (one per level), got %d", len(Levels), len(bands))})
	}
	for i, b := range bands {
		bpath := fmt.Sprintf("%s[%d]", path, i)
		level, ok := ParseLevel(b.Level)
		if !ok {
			errs = append(errs, ValidationError{Path: bpath + ".level", Message: fmt.Sprintf("unknown level %q", b.Level)})
			continue
		}
		if level.rank() != i {
			errs = append(errs, ValidationError{Path: bpath + ".level", Message: fmt.Sprintf("expected %q at this position", Levels[i])})
		}
		if b.Min < 0 {
			errs = append(errs, ValidationError{Path: bpath + ".min", Message: "must be >= 0"})
		}
		if i > 0 && b.Min >= bands[i-1].Min {
			errs = append(errs, ValidationError{Path: bpath + ".min", Message: fmt.Sprintf("must be below %d", bands[i-1].Min)})
		}
	}
	if last := bands[len(bands)-1]; last.Min != 0 {
		errs = append(errs, ValidationError{Path: fmt.Sprintf("%s[%d].min", path, len(bands)-1), Message: "lowest band must start at 0"})
	}
	if first := bands[0]; first.Min > total {
		errs = append(errs, ValidationError{Path: path + "[0].min", Message: fmt.Sprintf("unreachable: above question count %d", total)})
	}
	return errs
}

func pickLabels(q RawQuestion, field string) []string {
	if field == "regulations" {
		return q.Regulations
	}
	return q.RegulatoryBody
}

func pickText(q RawQuestion, field string) string {
	if field == "actions" {
		return q.Actions
	}
	return q.Remediation
}
