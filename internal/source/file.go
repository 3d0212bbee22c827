// Package source reads transaction batches from local bank exports so the
// workflow can run without a linked Plaid item. Supported formats: CSV and
// XLSX with the columns date, amount, category, description, merchant.
package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dvloznov/budget-coach/internal/coach"
	"github.com/dvloznov/budget-coach/internal/money"
	"github.com/xuri/excelize/v2"
)

const dateLayout = "2006-01-02"

// FileSource implements coach.TransactionSource over a local export file.
type FileSource struct {
	Path string

	// now is overridable for tests; zero means time.Now.
	now func() time.Time
}

// NewFileSource creates a source for the given CSV or XLSX file.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Fetch loads the file and keeps only rows within the trailing windowDays
// window. Unreadable files and malformed rows are errors, never an empty
// batch.
func (s *FileSource) Fetch(ctx context.Context, windowDays int) ([]coach.Transaction, error) {
	var (
		rows [][]string
		err  error
	)

	switch strings.ToLower(filepath.Ext(s.Path)) {
	case ".csv":
		rows, err = readCSV(s.Path)
	case ".xlsx":
		rows, err = readXLSX(s.Path)
	default:
		return nil, fmt.Errorf("Fetch: unsupported file type %q", filepath.Ext(s.Path))
	}
	if err != nil {
		return nil, fmt.Errorf("Fetch: %w", err)
	}

	nowFn := s.now
	if nowFn == nil {
		nowFn = time.Now
	}
	cutoff := nowFn().AddDate(0, 0, -windowDays)

	var txs []coach.Transaction
	for i, row := range rows {
		if i == 0 && isHeader(row) {
			continue
		}
		tx, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("Fetch: row %d: %w", i+1, err)
		}
		if tx.Date.Before(cutoff) {
			continue
		}
		txs = append(txs, tx)
	}

	return txs, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("readCSV: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("readCSV: %w", err)
	}
	return rows, nil
}

func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("readXLSX: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("readXLSX: reading rows: %w", err)
	}
	return rows, nil
}

func isHeader(row []string) bool {
	return len(row) > 0 && strings.EqualFold(strings.TrimSpace(row[0]), "date")
}

func parseRow(row []string) (coach.Transaction, error) {
	if len(row) < 3 {
		return coach.Transaction{}, fmt.Errorf("parseRow: need at least date, amount, category; got %d columns", len(row))
	}

	date, err := time.Parse(dateLayout, strings.TrimSpace(row[0]))
	if err != nil {
		return coach.Transaction{}, fmt.Errorf("parseRow: bad date %q: %w", row[0], err)
	}

	amount, err := money.Parse(row[1])
	if err != nil {
		return coach.Transaction{}, fmt.Errorf("parseRow: %w", err)
	}

	tx := coach.Transaction{
		Date:     date,
		Amount:   amount,
		Category: strings.TrimSpace(row[2]),
	}
	if len(row) > 3 {
		tx.Description = strings.TrimSpace(row[3])
	}
	if len(row) > 4 {
		tx.Merchant = strings.TrimSpace(row[4])
	}
	if tx.Merchant == "" {
		tx.Merchant = tx.Description
	}

	return tx, nil
}
