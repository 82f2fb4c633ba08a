package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"

	"telecom_assets/internal/metrics"
	"telecom_assets/internal/repository"
	"telecom_assets/internal/utils"

	"github.com/xuri/excelize/v2"
)

const (
	ExportFormatCSV  = "csv"
	ExportFormatXLSX = "xlsx"

	SpreadsheetSheetName = "Linhas Telefônicas"
	maxColumnWidth       = 50

	utf8BOM = "\ufeff"
)

var (
	csvHeader = []string{
		"ID", "Conta", "Linha", "Plano", "Mensalidade (R$)", "Responsável", "Departamento",
		"Chipeira", "Efetivação", "Término", "Status", "Em Uso", "Fase",
	}
	spreadsheetHeader = []string{
		"ID", "Conta", "Linha Telefônica", "Plano", "Mensalidade", "Responsável", "Departamento",
		"Chipeira", "Data de Efetivação", "Data de Término", "Status", "Em Uso", "Fase",
	}
)

// ExportService renders the full line collection as downloadable files
type ExportService interface {
	CSV(ctx context.Context) (*bytes.Buffer, error)
	Spreadsheet(ctx context.Context) (*bytes.Buffer, error)
	Filename(format string) string
}

type exportService struct {
	repo    repository.LineRepository
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewExportService creates a new ExportService
func NewExportService(repo repository.LineRepository, m *metrics.Metrics) ExportService {
	return &exportService{repo: repo, metrics: m, now: time.Now}
}

// Filename is linhas_telefonicas_<YYYY-MM-DD>.<format> for today's date.
func (s *exportService) Filename(format string) string {
	return fmt.Sprintf("linhas_telefonicas_%s.%s", s.now().Format("2006-01-02"), format)
}

// CSV writes a UTF-8 (with BOM) CSV of every line in ascending id order.
func (s *exportService) CSV(ctx context.Context) (*bytes.Buffer, error) {
	lines, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch lines for CSV export: %w", err)
	}

	buffer := &bytes.Buffer{}
	buffer.WriteString(utf8BOM)
	writer := csv.NewWriter(buffer)

	if err := writer.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for i := range lines {
		l := &lines[i]
		row := []string{
			strconv.FormatInt(l.ID, 10),
			l.Account,
			utils.FormatPhone(l.Phone),
			l.Plan,
			utils.FormatCents(l.MonthlyFeeCents),
			l.Responsible,
			l.Department,
			l.HasChip,
			exportDate(l.ActivationDate),
			exportDate(l.EndDate),
			l.Status,
			l.InUse,
			l.PhaseText(),
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("error flushing CSV writer: %w", err)
	}
	s.metrics.IncExport(ExportFormatCSV)
	return buffer, nil
}

// Spreadsheet writes a single-sheet XLSX workbook with columns sized to
// their longest value plus two, capped at 50.
func (s *exportService) Spreadsheet(ctx context.Context) (*bytes.Buffer, error) {
	lines, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch lines for spreadsheet export: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SpreadsheetSheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	widths := make([]int, len(spreadsheetHeader))
	header := make([]interface{}, len(spreadsheetHeader))
	for i, h := range spreadsheetHeader {
		header[i] = h
		widths[i] = utf8.RuneCountInString(h)
	}
	if err := f.SetSheetRow(SpreadsheetSheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write spreadsheet header: %w", err)
	}

	for i := range lines {
		l := &lines[i]
		values := []string{
			strconv.FormatInt(l.ID, 10),
			l.Account,
			utils.FormatPhone(l.Phone),
			l.Plan,
			"R$ " + utils.FormatCents(l.MonthlyFeeCents),
			l.Responsible,
			l.Department,
			l.HasChip,
			exportDate(l.ActivationDate),
			exportDate(l.EndDate),
			l.Status,
			l.InUse,
			l.PhaseText(),
		}
		row := make([]interface{}, len(values))
		for c, v := range values {
			row[c] = v
			if n := utf8.RuneCountInString(v); n > widths[c] {
				widths[c] = n
			}
		}
		row[0] = l.ID

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(SpreadsheetSheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write spreadsheet row: %w", err)
		}
	}

	for c, w := range widths {
		col, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(SpreadsheetSheetName, col, col, float64(columnWidth(w))); err != nil {
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write spreadsheet: %w", err)
	}
	s.metrics.IncExport(ExportFormatXLSX)
	return buffer, nil
}

func columnWidth(longest int) int {
	return min(longest+2, maxColumnWidth)
}

func exportDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}
