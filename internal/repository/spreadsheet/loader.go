package spreadsheet

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"engagementReco/domain"
	"engagementReco/pkg/logger"

	"github.com/xuri/excelize/v2"
)

type LoaderConfig struct {
	Path string
	// Sheet to read from workbooks; empty means the first sheet.
	Sheet string
}

// Loader reads the user engagement dataset from an .xlsx or .csv file.
type Loader struct {
	cfg LoaderConfig
}

func NewLoader(cfg LoaderConfig) *Loader {
	return &Loader{cfg: cfg}
}

func (l *Loader) Path() string {
	return l.cfg.Path
}

func (l *Loader) Load(ctx context.Context) ([]domain.UserRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if _, err := os.Stat(l.cfg.Path); err != nil {
		return nil, l.fail("stat", err)
	}

	var (
		rows [][]string
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(l.cfg.Path)); ext {
	case ".xlsx", ".xlsm":
		rows, err = l.readWorkbook()
	case ".csv":
		rows, err = l.readCSV()
	default:
		return nil, l.fail("open", fmt.Errorf("unsupported file type %q", ext))
	}
	if err != nil {
		return nil, l.fail("read", err)
	}

	records, err := decodeRows(rows)
	if err != nil {
		return nil, l.fail("parse", err)
	}

	logger.Debug("Dataset read", "path", l.cfg.Path, "rows", len(records))

	return records, nil
}

func (l *Loader) readWorkbook() ([][]string, error) {
	f, err := excelize.OpenFile(l.cfg.Path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	sheet := l.cfg.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	// Raw values; the display format rounds to 15 significant digits.
	return f.GetRows(sheet, excelize.Options{RawCellValue: true})
}

func (l *Loader) readCSV() ([][]string, error) {
	f, err := os.Open(l.cfg.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	return r.ReadAll()
}

func (l *Loader) fail(op string, err error) error {
	return &domain.DataSourceError{Path: l.cfg.Path, Op: op, Err: err}
}
