// Package project creates and validates the standard research project layout.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// StandardDirs is the fixed directory layout of a research project.
var StandardDirs = []string{"data", "outputs", "logs", "notes"}

// MetaFile is the project metadata file name.
const MetaFile = "project.json"

// Meta is the persisted project metadata.
type Meta struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	SafeName  string `json:"safe_name"`
	CreatedAt string `json:"created_at"`
	Version   int    `json:"version"`
}

// Status describes the health of a project directory.
type Status struct {
	Root    string
	Meta    *Meta
	Dirs    map[string]bool
	Missing []string
}

// OK reports whether the metadata exists and no standard directory is missing.
func (s *Status) OK() bool {
	return s.Meta != nil && len(s.Missing) == 0
}

// Manager creates and inspects projects under a base directory.
type Manager struct {
	baseDir string
}

// NewManager returns a manager rooted at baseDir.
func NewManager(baseDir string) *Manager {
	return &Manager{baseDir: baseDir}
}

// Create scaffolds a new project and returns its root path. An existing
// project root is an error unless force is set.
func (m *Manager) Create(name string, force bool) (string, error) {
	safe := SafeName(name)
	root := filepath.Join(m.baseDir, safe)

	if _, err := os.Stat(root); err == nil && !force {
		return "", fmt.Errorf("project already exists: %s", root)
	}

	for _, d := range StandardDirs {
		if err := os.MkdirAll(filepath.Join(root, d), 0o755); err != nil {
			return "", fmt.Errorf("failed to create %s: %w", d, err)
		}
	}

	meta := Meta{
		ID:        uuid.NewString(),
		Name:      name,
		SafeName:  safe,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Version:   1,
	}
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal metadata: %w", err)
	}
	if err := os.WriteFile(filepath.Join(root, MetaFile), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write metadata: %w", err)
	}

	return root, nil
}

// Inspect checks a project root for metadata and the standard layout.
func (m *Manager) Inspect(root string) *Status {
	st := &Status{
		Root: root,
		Dirs: make(map[string]bool, len(StandardDirs)),
	}
	st.Meta = loadMeta(root)
	for _, d := range StandardDirs {
		info, err := os.Stat(filepath.Join(root, d))
		ok := err == nil && info.IsDir()
		st.Dirs[d] = ok
		if !ok {
			st.Missing = append(st.Missing, d)
		}
	}
	return st
}

// LogsDir returns the logs directory under root. The chat core uses this to
// place transcripts without caring whether root is a real project.
func LogsDir(root string) string {
	return filepath.Join(root, "logs")
}

func loadMeta(root string) *Meta {
	data, err := os.ReadFile(filepath.Join(root, MetaFile))
	if err != nil {
		return nil
	}
	var meta Meta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil
	}
	return &meta
}

// SafeName sanitizes a project name into a directory name: alphanumerics,
// dashes and underscores are kept, runs of anything else collapse to a
// single dash.
func SafeName(name string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	s := b.String()
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	s = strings.Trim(s, "-")
	if s == "" {
		return "project"
	}
	return s
}
