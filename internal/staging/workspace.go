// Package staging manages the scratch workspaces one pipeline invocation
// owns exclusively. Uniqueness of workspace names is the only isolation
// mechanism between concurrent invocations; no locking is involved.
package staging

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"bunkerlab/internal/logging"
)

// Workspace is an exclusively owned scratch directory. It is created once
// per pipeline invocation and removed exactly once via Cleanup, on every
// exit path.
type Workspace struct {
	root   string
	logger *slog.Logger
}

// NewWorkspace creates a collision-free scratch directory under base. The
// directory name carries a UUID so concurrent invocations always receive
// disjoint paths.
func NewWorkspace(base string, logger *slog.Logger) (*Workspace, error) {
	base = strings.TrimSpace(base)
	if base == "" {
		return nil, fmt.Errorf("staging base directory required")
	}
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, fmt.Errorf("create staging base: %w", err)
	}

	root := filepath.Join(base, "fill-"+uuid.NewString())
	if err := os.Mkdir(root, 0o755); err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Workspace{root: root, logger: logger}, nil
}

// Root returns the workspace directory path.
func (w *Workspace) Root() string {
	return w.root
}

// Path joins elem onto the workspace root.
func (w *Workspace) Path(elem ...string) string {
	return filepath.Join(append([]string{w.root}, elem...)...)
}

// Cleanup removes the workspace. Removal failures are logged and swallowed
// so a secondary cleanup problem never masks the primary pipeline error.
// Safe to call more than once.
func (w *Workspace) Cleanup() {
	if w == nil || w.root == "" {
		return
	}
	if err := os.RemoveAll(w.root); err != nil && !os.IsNotExist(err) {
		w.logger.Warn("failed to remove workspace",
			logging.String("path", w.root),
			logging.Error(err),
		)
		return
	}
	w.root = ""
}
