package batigest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ziz0u9/MillesBTP-sub000/internal/cost"
	enc "github.com/ziz0u9/MillesBTP-sub000/internal/encoding"
)

// Column names of a Batigest job-costing export. Date, Libellé and Montant
// are required; the rest are optional.
const (
	colDate      = "Date"
	colLabel     = "Libellé"
	colAmount    = "Montant"
	colType      = "Type"
	colCategory  = "Catégorie"
	colReference = "Référence"
)

// Importer reads Batigest job-costing CSV exports and produces cost-entry
// params. Exports carry a few preamble rows before the header, so the header
// is located by matching column names.
type Importer struct{}

func New() *Importer {
	return &Importer{}
}

func (i *Importer) Parse(r io.Reader) ([]cost.CreateParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	cols, headerIdx := findHeader(rows)
	if cols == nil {
		return nil, fmt.Errorf("no Batigest header found: expected columns %s, %s and %s", colDate, colLabel, colAmount)
	}

	return parseRows(cols, rows[headerIdx+1:])
}

// colIndex maps column names to their position in the row.
type colIndex map[string]int

func findHeader(rows [][]string) (colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.TrimSpace(cell)
			if name != "" {
				cols[name] = i
			}
		}

		_, hasDate := cols[colDate]
		_, hasLabel := cols[colLabel]
		_, hasAmount := cols[colAmount]

		if hasDate && hasLabel && hasAmount {
			return cols, rowIdx
		}
	}

	return nil, 0
}

func parseRows(cols colIndex, rows [][]string) ([]cost.CreateParams, error) {
	var params []cost.CreateParams

	for _, row := range rows {
		date, ok := parseDate(cellValue(row, cols, colDate))
		if !ok {
			// Footer and total rows have no date.
			continue
		}

		label := cellValue(row, cols, colLabel)
		if label == "" {
			continue
		}

		amount, err := parseAmount(cellValue(row, cols, colAmount))
		if err != nil || amount <= 0 {
			// Credit notes and zero lines are not ledger entries.
			continue
		}

		params = append(params, cost.CreateParams{
			Category:  parseCategory(cellValue(row, cols, colCategory)),
			Type:      parseType(cellValue(row, cols, colType)),
			Amount:    amount,
			Label:     label,
			Reference: cellValue(row, cols, colReference),
			CostDate:  date,
		})
	}

	return params, nil
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	t, err := time.Parse("02/01/2006", s)
	if err != nil {
		return time.Time{}, false
	}

	return t, true
}

// parseType maps the French cost-state column to a ledger type. Batigest
// marks incurred costs "Engagé" or "Réalisé" and projections "Estimé" or
// "Prévu"; unknown values default to committed.
func parseType(s string) cost.Type {
	switch strings.ToLower(s) {
	case "estimé", "estime", "prévu", "prevu":
		return cost.TypeEstimated
	}

	return cost.TypeCommitted
}

// parseCategory maps the French category column to a ledger category.
func parseCategory(s string) cost.Category {
	lower := strings.ToLower(s)

	switch {
	case strings.Contains(lower, "œuvre") || strings.Contains(lower, "oeuvre") || lower == "mo":
		return cost.CategoryLabor
	case strings.Contains(lower, "matéri") || strings.Contains(lower, "materi") || strings.Contains(lower, "fourniture"):
		return cost.CategoryMaterials
	case strings.Contains(lower, "trait"):
		return cost.CategorySubcontracting
	}

	return cost.CategoryOther
}

func cellValue(row []string, cols colIndex, name string) string {
	idx, ok := cols[name]
	if !ok || idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
