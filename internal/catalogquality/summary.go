package catalogquality

// HasBlocking reports whether findings contain at least one blocking issue.
func HasBlocking(findings []Finding) bool {
	for _, f := range findings {
		if f.Severity == SeverityBlocking {
			return true
		}
	}
	return false
}

// Summarize groups findings per question, keeping the order Lint produced.
func Summarize(findings []Finding) Summary {
	s := Summary{Questions: make([]QuestionSummary, 0)}
	index := map[string]int{}

	for _, f := range findings {
		s.Total++
		incrementSeverityCounts(&s.Blocking, &s.Warning, f.Severity)

		key := string(f.Variant) + "\x00" + f.QuestionID
		i, ok := index[key]
		if !ok {
			s.Questions = append(s.Questions, QuestionSummary{Variant: f.Variant, QuestionID: f.QuestionID})
			i = len(s.Questions) - 1
			index[key] = i
		}
		q := &s.Questions[i]
		incrementSeverityCounts(&q.Blocking, &q.Warning, f.Severity)
		q.Findings = append(q.Findings, f)
	}
	return s
}

func incrementSeverityCounts(blocking, warning *int, severity Severity) {
	switch severity {
	case SeverityBlocking:
		*blocking++
	case SeverityWarning:
		*warning++
	}
}
