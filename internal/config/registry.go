package config

import "os"

type OptionType string

const (
	OptionTypeString OptionType = "string"
	OptionTypeEnum   OptionType = "enum"
)

type OptionMetadata struct {
	KeyPath     string
	DisplayName string
	Type        OptionType
	Default     string
	Choices     []string
	EnvVar      string
	Description string

	resolved func(ResolvedConfig) string
	raw      func(RawConfig) *string
}

// OptionRegistry returns the known config options in display order.
func OptionRegistry() []OptionMetadata {
	d := DefaultResolvedConfig()
	return []OptionMetadata{
		{
			KeyPath:     "catalog.path",
			DisplayName: "Catalog file",
			Type:        OptionTypeString,
			Default:     d.Catalog.Path,
			EnvVar:      EnvCatalog,
			Description: "YAML question catalog; empty uses the built-in reference catalog",
			resolved:    func(c ResolvedConfig) string { return c.Catalog.Path },
			raw:         func(c RawConfig) *string { return valueFromCatalog(c, func(r RawCatalog) *string { return r.Path }) },
		},
		{
			KeyPath:     "report.format",
			DisplayName: "Report format",
			Type:        OptionTypeEnum,
			Default:     d.Report.Format,
			Choices:     ReportFormats,
			Description: "Default format for score output and exports",
			resolved:    func(c ResolvedConfig) string { return c.Report.Format },
			raw:         func(c RawConfig) *string { return valueFromReport(c, func(r RawReport) *string { return r.Format }) },
		},
		{
			KeyPath:     "report.outputDir",
			DisplayName: "Export directory",
			Type:        OptionTypeString,
			Default:     d.Report.OutputDir,
			Description: "Directory exported reports are written to",
			resolved:    func(c ResolvedConfig) string { return c.Report.OutputDir },
			raw:         func(c RawConfig) *string { return valueFromReport(c, func(r RawReport) *string { return r.OutputDir }) },
		},
		{
			KeyPath:     "ui.color",
			DisplayName: "Color",
			Type:        OptionTypeEnum,
			Default:     d.UI.Color,
			Choices:     ColorModes,
			Description: "Colored text reports: auto colors terminals only",
			resolved:    func(c ResolvedConfig) string { return c.UI.Color },
			raw:         valueFromUI,
		},
		{
			KeyPath:     "log.level",
			DisplayName: "Log level",
			Type:        OptionTypeEnum,
			Default:     d.Log.Level,
			Choices:     LogLevels,
			EnvVar:      EnvLogLevel,
			Description: "Minimum level written to ~/.attest/attest.log",
			resolved:    func(c ResolvedConfig) string { return c.Log.Level },
			raw:         valueFromLog,
		},
	}
}

type Source string

const (
	SourceDefault Source = "default"
	SourceGlobal  Source = "global"
	SourceProject Source = "project"
	SourceEnv     Source = "env"
)

type OptionValue struct {
	Option OptionMetadata
	Value  string
	Source Source
}

// Explain resolves every option and reports which layer supplied it.
func Explain(projectRoot string) ([]OptionValue, error) {
	globalCfg, _, err := LoadGlobalConfig()
	if err != nil {
		return nil, err
	}
	projectCfg, _, err := LoadProjectConfig(projectRoot)
	if err != nil {
		return nil, err
	}
	return ExplainLayers(projectCfg, globalCfg, os.LookupEnv), nil
}

func ExplainLayers(project, global RawConfig, lookup func(string) (string, bool)) []OptionValue {
	final := ApplyEnv(ResolveConfig(project, global), lookup)

	opts := OptionRegistry()
	out := make([]OptionValue, 0, len(opts))
	for _, opt := range opts {
		src := SourceDefault
		switch {
		case opt.fromEnv(lookup):
			src = SourceEnv
		case opt.accepts(opt.raw(project)):
			src = SourceProject
		case opt.accepts(opt.raw(global)):
			src = SourceGlobal
		}
		out = append(out, OptionValue{Option: opt, Value: opt.resolved(final), Source: src})
	}
	return out
}

// fromEnv mirrors ApplyEnv: any set catalog path wins, enums only when valid.
func (opt OptionMetadata) fromEnv(lookup func(string) (string, bool)) bool {
	if opt.EnvVar == "" {
		return false
	}
	v, ok := lookup(opt.EnvVar)
	if !ok {
		return false
	}
	return opt.Type != OptionTypeEnum || opt.accepts(&v)
}

// accepts reports whether a layer value would win resolution for opt.
func (opt OptionMetadata) accepts(v *string) bool {
	if opt.Type == OptionTypeEnum {
		_, ok := normalizeChoice(v, opt.Choices)
		return ok
	}
	return normalizeString(v) != ""
}
