// Package deps checks the availability of the external binaries bunkerlab
// shells out to.
package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"bunkerlab/internal/config"
)

// Requirement defines an external dependency bunkerlab relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Required returns the dependency set for the given configuration.
func Required(cfg *config.Config) []Requirement {
	binary := "soffice"
	if cfg != nil && strings.TrimSpace(cfg.Soffice.Binary) != "" {
		binary = cfg.Soffice.Binary
	}
	return []Requirement{
		{
			Name:        "LibreOffice",
			Command:     binary,
			Description: "headless DOCX to PDF conversion",
		},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}
