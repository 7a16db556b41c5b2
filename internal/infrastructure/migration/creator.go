package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/template"
	"time"
)

const migrationUpTemplate = `-- Migration: {{.Name}}
-- Created: {{.Timestamp}}
{{- if .Description}}
-- {{.Description}}
{{- end}}

`

const migrationDownTemplate = `-- Rollback: {{.Name}}
-- Created: {{.Timestamp}}

`

// versionWidth matches the zero-padded sequence golang-migrate sorts numerically
const versionWidth = 6

// MigrationFile represents a created up/down file pair
type MigrationFile struct {
	Version     uint
	Name        string
	Description string
	Timestamp   string
	UpPath      string
	DownPath    string
}

// MigrationInfo describes one migration found on disk
type MigrationInfo struct {
	Version uint   `json:"version"`
	Name    string `json:"name"`
	HasDown bool   `json:"has_down"`
}

// BaseName returns NNNNNN_name
func (i MigrationInfo) BaseName() string {
	return fmt.Sprintf("%0*d_%s", versionWidth, i.Version, i.Name)
}

// CreateMigration writes an empty up/down pair numbered one past the highest
// existing version in migrationsDir.
func CreateMigration(migrationsDir, name, description string) (*MigrationFile, error) {
	slug := sanitizeName(name)
	if slug == "" {
		return nil, fmt.Errorf("migration name %q has no usable characters", name)
	}
	if err := os.MkdirAll(migrationsDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create migrations directory: %w", err)
	}

	existing, err := ListMigrations(migrationsDir)
	if err != nil {
		return nil, err
	}
	var version uint = 1
	if n := len(existing); n > 0 {
		version = existing[n-1].Version + 1
	}

	info := MigrationInfo{Version: version, Name: slug}
	mf := &MigrationFile{
		Version:     version,
		Name:        slug,
		Description: strings.TrimSpace(description),
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		UpPath:      filepath.Join(migrationsDir, info.BaseName()+".up.sql"),
		DownPath:    filepath.Join(migrationsDir, info.BaseName()+".down.sql"),
	}

	if err := writeFromTemplate(mf.UpPath, migrationUpTemplate, mf); err != nil {
		return nil, fmt.Errorf("failed to create up migration: %w", err)
	}
	if err := writeFromTemplate(mf.DownPath, migrationDownTemplate, mf); err != nil {
		_ = os.Remove(mf.UpPath)
		return nil, fmt.Errorf("failed to create down migration: %w", err)
	}
	return mf, nil
}

func writeFromTemplate(path, tmplContent string, data *MigrationFile) error {
	tmpl, err := template.New("migration").Parse(tmplContent)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", path, err)
	}
	defer f.Close()

	return tmpl.Execute(f, data)
}

// sanitizeName lowercases name and collapses separators into single underscores
func sanitizeName(name string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			pendingSep = true
		}
	}
	return b.String()
}

// parseMigrationName splits "000003_add_notes.up.sql" into version and name.
// Down files are recognised too; ok is false for anything else.
func parseMigrationName(file string) (MigrationInfo, bool) {
	var base string
	switch {
	case strings.HasSuffix(file, ".up.sql"):
		base = strings.TrimSuffix(file, ".up.sql")
	case strings.HasSuffix(file, ".down.sql"):
		base = strings.TrimSuffix(file, ".down.sql")
	default:
		return MigrationInfo{}, false
	}
	num, name, found := strings.Cut(base, "_")
	if !found || name == "" {
		return MigrationInfo{}, false
	}
	v, err := strconv.ParseUint(num, 10, 32)
	if err != nil {
		return MigrationInfo{}, false
	}
	return MigrationInfo{Version: uint(v), Name: name}, true
}

// ListMigrations returns the migrations in migrationsDir ordered by version.
// A missing directory yields an empty list.
func ListMigrations(migrationsDir string) ([]MigrationInfo, error) {
	entries, err := os.ReadDir(migrationsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []MigrationInfo{}, nil
		}
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	byVersion := make(map[uint]*MigrationInfo)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, ok := parseMigrationName(entry.Name())
		if !ok {
			continue
		}
		cur, seen := byVersion[info.Version]
		if !seen {
			cur = &MigrationInfo{Version: info.Version, Name: info.Name}
			byVersion[info.Version] = cur
		}
		if strings.HasSuffix(entry.Name(), ".down.sql") {
			cur.HasDown = true
		}
	}

	result := make([]MigrationInfo, 0, len(byVersion))
	for _, info := range byVersion {
		result = append(result, *info)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Version < result[j].Version })
	return result, nil
}
