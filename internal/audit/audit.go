// Package audit keeps JSON records of catalog imports on disk.
package audit

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type Auditor struct {
	AuditDir string
}

func NewAuditor(auditDir string) *Auditor {
	return &Auditor{
		AuditDir: auditDir,
	}
}

// SaveJSON saves the provided data as JSON to a file with UUID4 filename
func (a *Auditor) SaveJSON(data any) (string, error) {
	return a.save(uuid.NewString()+".json", data)
}

// SaveReport saves data as <kind>-<id>.json, e.g. import-<batch id>.json.
// A random id is used when id is empty.
func (a *Auditor) SaveReport(kind, id string, data any) (string, error) {
	if id == "" {
		id = uuid.NewString()
	}
	name := fmt.Sprintf("%s-%s.json", sanitize(kind), sanitize(id))
	return a.save(name, data)
}

func (a *Auditor) save(filename string, data any) (string, error) {
	if err := a.ensureAuditDir(); err != nil {
		return "", fmt.Errorf("failed to ensure audit directory: %w", err)
	}

	path := filepath.Join(a.AuditDir, filename)

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal data to JSON: %w", err)
	}

	if err := os.WriteFile(path, jsonData, 0644); err != nil {
		return "", fmt.Errorf("failed to write audit file: %w", err)
	}

	log.Printf("Saved audit file: %s", path)
	return filename, nil
}

// ensureAuditDir creates the audit directory if it doesn't exist
func (a *Auditor) ensureAuditDir() error {
	if err := os.MkdirAll(a.AuditDir, 0755); err != nil {
		return fmt.Errorf("failed to create audit directory: %w", err)
	}
	return nil
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == os.PathSeparator {
			return '_'
		}
		return r
	}, s)
}
