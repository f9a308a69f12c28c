package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	m "trojanscope.dev/pkg/trojanscope/internal/model"
)

// ReportStore persists analysis reports.
type ReportStore interface {
	SaveReport(ctx context.Context, path m.Path, report m.Report) error
	LoadReport(ctx context.Context, path m.Path) (m.Report, error)
}

// FileReportStore stores reports as YAML files, or JSON when the path ends in ".json".
type FileReportStore struct{}

// NewReportStore constructs a FileReportStore.
func NewReportStore() *FileReportStore {
	return &FileReportStore{}
}

// SaveReport writes report to path, creating parent directories as needed.
func (s *FileReportStore) SaveReport(ctx context.Context, path m.Path, report m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := marshalReport(path, report)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(string(path)), 0o755); err != nil {
		slog.Error("Failed to create report directory", "path", path, "error", err)
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	if err := os.WriteFile(string(path), data, 0o600); err != nil {
		slog.Error("Failed to write report", "path", path, "error", err)
		return fmt.Errorf("failed to write report: %w", err)
	}

	slog.Debug("saved report", "path", path, "records", len(report.Records))

	return nil
}

// LoadReport reads a report previously written by SaveReport.
func (s *FileReportStore) LoadReport(ctx context.Context, path m.Path) (m.Report, error) {
	if err := ctx.Err(); err != nil {
		return m.Report{}, err
	}

	data, err := os.ReadFile(string(path))
	if err != nil {
		return m.Report{}, fmt.Errorf("failed to read report: %w", err)
	}

	var report m.Report
	if isJSON(path) {
		err = json.Unmarshal(data, &report)
	} else {
		err = yaml.Unmarshal(data, &report)
	}

	if err != nil {
		return m.Report{}, fmt.Errorf("failed to decode report %s: %w", path, err)
	}

	return report, nil
}

func marshalReport(path m.Path, report m.Report) ([]byte, error) {
	if isJSON(path) {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode report: %w", err)
		}

		return append(data, '\n'), nil
	}

	data, err := yaml.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}

	return data, nil
}

func isJSON(path m.Path) bool {
	return strings.EqualFold(filepath.Ext(string(path)), ".json")
}
