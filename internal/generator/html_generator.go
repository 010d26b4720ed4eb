package generator

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

// GenerateDashboardHTML renders page as a static file at outputPath.
func GenerateDashboardHTML(page *Page, outputPath string) error {
	var buf bytes.Buffer
	if err := RenderDashboard(&buf, page); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	return writeAtomic(outputPath, buf.Bytes())
}

// writeAtomic writes through a uniquely named, fsynced temp file and
// renames it over outputPath, so a browser reloading the page never reads a
// partial file and concurrent writers do not share a temp file.
func writeAtomic(outputPath string, data []byte) error {
	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir failed: %w", err)
		}
	}

	_, statErr := os.Stat(outputPath)
	if err := atomic.WriteFile(outputPath, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write failed: %w", err)
	}
	// New files would keep the temp file's 0600 mode.
	if os.IsNotExist(statErr) {
		if err := os.Chmod(outputPath, 0o644); err != nil {
			return fmt.Errorf("chmod failed: %w", err)
		}
	}
	return nil
}

// WriteReportFile writes the Markdown report to outputPath.
func WriteReportFile(data ReportData, outputPath string) error {
	var buf bytes.Buffer
	if err := WriteReport(&buf, data); err != nil {
		return err
	}
	return writeAtomic(outputPath, buf.Bytes())
}
