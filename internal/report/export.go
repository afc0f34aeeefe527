package report

import (
	"path/filepath"
	"strings"

	"github.com/lukman83/naverscrap/internal/logger"
	"github.com/lukman83/naverscrap/internal/models"
	"github.com/lukman83/naverscrap/internal/opener"
	"go.uber.org/zap"
)

// DefaultExtension is appended to output hints that have none.
const DefaultExtension = ".xlsx"

// Result describes a saved report.
type Result struct {
	Path       string `json:"path"`
	Collected  int    `json:"collected"`
	Excluded   int    `json:"excluded"`
	Duplicates int    `json:"duplicates"`
	Rows       int    `json:"rows"`
}

// Exporter turns collected products into a spreadsheet report.
type Exporter struct {
	// Opener shows the saved file; nil skips that step.
	Opener opener.Opener
	Logger *zap.Logger
}

// Export resolves a free path from hint, drops excluded and duplicate
// products, writes the workbook and opens it. Zero remaining products still
// produce a header-only file. Path and write failures are returned; a
// failure to open the saved file is only logged.
func (e *Exporter) Export(products []models.Product, hint string, exclude []string) (*Result, error) {
	log := logger.OrNop(e.Logger).Named("report")

	if strings.TrimSpace(hint) == "" {
		return nil, ErrEmptyPath
	}
	if filepath.Ext(hint) == "" {
		hint += DefaultExtension
	}
	path, err := AvailablePath(hint)
	if err != nil {
		return nil, err
	}

	kept := Exclude(products, exclude)
	res := &Result{
		Path:      path,
		Collected: len(products),
		Excluded:  len(products) - len(kept),
	}
	kept = Dedupe(kept)
	res.Rows = len(kept)
	res.Duplicates = res.Collected - res.Excluded - res.Rows

	if err := WriteWorkbook(path, kept); err != nil {
		return nil, err
	}
	log.Info("report saved",
		zap.String("path", path),
		zap.Int("rows", res.Rows),
		zap.Int("excluded", res.Excluded),
		zap.Int("duplicates", res.Duplicates))

	if e.Opener != nil {
		if err := e.Opener.Open(path); err != nil {
			log.Warn("failed to open the report", zap.String("path", path), zap.Error(err))
		}
	}
	return res, nil
}
