package config

import (
	"path/filepath"
	"strings"
)

// ResolveConfig merges project/global configs with built-in defaults.
// Precedence per key: project > global > defaults. Enum values outside
// their allowed set fall through to the next layer.
func ResolveConfig(project RawConfig, global RawConfig) ResolvedConfig {
	defaults := DefaultResolvedConfig()

	return ResolvedConfig{
		SchemaVersion: SchemaVersion,
		Catalog: ResolvedCatalog{
			Path: resolveString(
				valueFromCatalog(project, func(c RawCatalog) *string { return c.Path }),
				valueFromCatalog(global, func(c RawCatalog) *string { return c.Path }),
				defaults.Catalog.Path,
			),
		},
		Report: ResolvedReport{
			Format: resolveChoice(
				valueFromReport(project, func(r RawReport) *string { return r.Format }),
				valueFromReport(global, func(r RawReport) *string { return r.Format }),
				defaults.Report.Format,
				ReportFormats,
			),
			OutputDir: filepath.Clean(resolveString(
				valueFromReport(project, func(r RawReport) *string { return r.OutputDir }),
				valueFromReport(global, func(r RawReport) *string { return r.OutputDir }),
				defaults.Report.OutputDir,
			)),
		},
		UI: ResolvedUI{
			Color: resolveChoice(
				valueFromUI(project),
				valueFromUI(global),
				defaults.UI.Color,
				ColorModes,
			),
		},
		Log: ResolvedLog{
			Level: resolveChoice(
				valueFromLog(project),
				valueFromLog(global),
				defaults.Log.Level,
				LogLevels,
			),
		},
	}
}

func valueFromCatalog(cfg RawConfig, pick func(RawCatalog) *string) *string {
	if cfg.Catalog == nil {
		return nil
	}
	return pick(*cfg.Catalog)
}

func valueFromReport(cfg RawConfig, pick func(RawReport) *string) *string {
	if cfg.Report == nil {
		return nil
	}
	return pick(*cfg.Report)
}

func valueFromUI(cfg RawConfig) *string {
	if cfg.UI == nil {
		return nil
	}
	return cfg.UI.Color
}

func valueFromLog(cfg RawConfig) *string {
	if cfg.Log == nil {
		return nil
	}
	return cfg.Log.Level
}

func resolveChoice(projectVal *string, globalVal *string, defaultVal string, allowed []string) string {
	if v, ok := normalizeChoice(projectVal, allowed); ok {
		return v
	}
	if v, ok := normalizeChoice(globalVal, allowed); ok {
		return v
	}
	return defaultVal
}

func normalizeChoice(value *string, allowed []string) (string, bool) {
	if value == nil {
		return "", false
	}
	v := strings.ToLower(strings.TrimSpace(*value))
	for _, a := range allowed {
		if v == a {
			return v, true
		}
	}
	return "", false
}

func resolveString(projectVal *string, globalVal *string, defaultVal string) string {
	if value := normalizeString(projectVal); value != "" {
		return value
	}
	if value := normalizeString(globalVal); value != "" {
		return value
	}
	return defaultVal
}

func normalizeString(value *string) string {
	if value == nil {
		return ""
	}
	return strings.TrimSpace(*value)
}
