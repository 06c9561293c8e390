package config

const (
	defaultStagingDir      = "~/.local/share/bunkerlab/staging"
	defaultOutputDir       = "~/.local/share/bunkerlab/output"
	defaultLogDir          = "~/.local/share/bunkerlab/logs"
	defaultTemplateDir     = "~/.config/bunkerlab/templates"
	defaultSofficeBinary   = "soffice"
	defaultConvertTimeout  = 120
	defaultLogLevel        = "info"
	defaultMDOTemplate     = "MDO.docx"
	defaultHFOTemplate     = "HFO.docx"
	defaultStaleAfterHours = 24
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StagingDir:  defaultStagingDir,
			OutputDir:   defaultOutputDir,
			LogDir:      defaultLogDir,
			TemplateDir: defaultTemplateDir,
		},
		Soffice: Soffice{
			Binary:         defaultSofficeBinary,
			ConvertTimeout: defaultConvertTimeout,
		},
		Templates: Templates{
			MDO: defaultMDOTemplate,
			HFO: defaultHFOTemplate,
		},
		Logging: Logging{
			Level: defaultLogLevel,
		},
		Staging: Staging{
			StaleAfterHours: defaultStaleAfterHours,
		},
	}
}
