package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bunkerlab/internal/config"
	"bunkerlab/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)

	cfg := testsupport.NewConfig(t)
	cfg.Soffice.Binary = stubSoffice(t, base)
	cfg.Logging.Format = "json"

	configPath := filepath.Join(homeDir, ".config", "bunkerlab", "config.toml")
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{cfg: cfg, configPath: configPath}
}

// stubSoffice mimics `soffice --headless --convert-to pdf --outdir <dir>
// <input>` by writing a placeholder PDF where the converter expects it.
func stubSoffice(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "soffice-stub")
	script := `#!/bin/sh
outdir="$5"
input="$6"
base=$(basename "$input" .docx)
printf '%%PDF-1.4' > "$outdir/$base.pdf"
`
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub converter: %v", err)
	}
	return path
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(`[paths]
staging_dir = %q
output_dir = %q
log_dir = %q
template_dir = %q

[soffice]
binary = %q
convert_timeout = %d

[templates]
mdo = %q
hfo = %q

[logging]
format = %q
level = %q

[staging]
stale_after_hours = %d
`,
		cfg.Paths.StagingDir,
		cfg.Paths.OutputDir,
		cfg.Paths.LogDir,
		cfg.Paths.TemplateDir,
		cfg.Soffice.Binary,
		cfg.Soffice.ConvertTimeout,
		cfg.Templates.MDO,
		cfg.Templates.HFO,
		cfg.Logging.Format,
		cfg.Logging.Level,
		cfg.Staging.StaleAfterHours,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = []string{"--config", configPath}
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

// writeMDOTemplate drops a minimal MDO template into the configured
// template directory.
func writeMDOTemplate(t *testing.T, cfg *config.Config) string {
	t.Helper()
	body := testsupport.Paragraph("Vessel {{NAME}} fuel {{FUEL}}") +
		testsupport.Paragraph("Analysed {{DATE}} sample {{SAMPLE}}")
	return testsupport.WriteDocx(t, cfg.Paths.TemplateDir, cfg.Templates.MDO,
		testsupport.BuildDocx(t, testsupport.DocumentXML(body), nil))
}

func writeValuesFile(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "values.toml")
	content := `NAME = "mv aurora"
DATE = "28-May-2025"
DATE_RECEIVED = "29-May-2025"
LOCATION = "rotterdam"
SEAL = "sl-0451"
NUMBER = "280525"
BARGE = "new horizon"
DENS = "0.8541"
VISC = "3.2"
FLASH = "68"
POUR = "-9"
CARBON = "0.02"
SULPH = "0.045"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write values file: %v", err)
	}
	return path
}
