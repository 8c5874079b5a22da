package config

const (
	SchemaVersion = 1

	DirName  = ".attest"
	FileName = "config.json"

	DefaultReportFormat    = "text"
	DefaultReportOutputDir = "."
	DefaultUIColor         = "auto"
	DefaultLogLevel        = "info"

	EnvCatalog  = "ATTEST_CATALOG"
	EnvLogLevel = "ATTEST_LOG_LEVEL"
)

var (
	ReportFormats = []string{"text", "markdown", "html"}
	ColorModes    = []string{"auto", "always", "never"}
	LogLevels     = []string{"debug", "info", "warn", "error"}
)

type RawConfig struct {
	SchemaVersion *int        `json:"schemaVersion,omitempty"`
	Catalog       *RawCatalog `json:"catalog,omitempty"`
	Report        *RawReport  `json:"report,omitempty"`
	UI            *RawUI      `json:"ui,omitempty"`
	Log           *RawLog     `json:"log,omitempty"`
}

type RawCatalog struct {
	Path *string `json:"path,omitempty"`
}

type RawReport struct {
	Format    *string `json:"format,omitempty"`
	OutputDir *string `json:"outputDir,omitempty"`
}

type RawUI struct {
	Color *string `json:"color,omitempty"`
}

type RawLog struct {
	Level *string `json:"level,omitempty"`
}

type ResolvedConfig struct {
	SchemaVersion int             `json:"schemaVersion"`
	Catalog       ResolvedCatalog `json:"catalog"`
	Report        ResolvedReport  `json:"report"`
	UI            ResolvedUI      `json:"ui"`
	Log           ResolvedLog     `json:"log"`
}

// ResolvedCatalog.Path is empty when the embedded reference catalog is used.
type ResolvedCatalog struct {
	Path string `json:"path"`
}

type ResolvedReport struct {
	Format    string `json:"format"`
	OutputDir string `json:"outputDir"`
}

type ResolvedUI struct {
	Color string `json:"color"`
}

type ResolvedLog struct {
	Level string `json:"level"`
}

func DefaultResolvedConfig() ResolvedConfig {
	return ResolvedConfig{
		SchemaVersion: SchemaVersion,
		Report: ResolvedReport{
			Format:    DefaultReportFormat,
			OutputDir: DefaultReportOutputDir,
		},
		UI:  ResolvedUI{Color: DefaultUIColor},
		Log: ResolvedLog{Level: DefaultLogLevel},
	}
}

// DefaultRawConfig is the file `attest config init` writes: every key
// spelled out with its default.
func DefaultRawConfig() RawConfig {
	d := DefaultResolvedConfig()
	version := SchemaVersion
	return RawConfig{
		SchemaVersion: &version,
		Catalog:       &RawCatalog{Path: stringPtr("")},
		Report: &RawReport{
			Format:    stringPtr(d.Report.Format),
			OutputDir: stringPtr(d.Report.OutputDir),
		},
		UI:  &RawUI{Color: stringPtr(d.UI.Color)},
		Log: &RawLog{Level: stringPtr(d.Log.Level)},
	}
}

func stringPtr(s string) *string {
	return &s
}
