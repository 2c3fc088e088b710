package sheets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/residence/internal/config"
	"github.com/mamadbah2/residence/internal/domain/models"
)

const dateLayout = "2006-01-02"

// ReportHeader names the columns written by ReportRow, in order.
var ReportHeader = []interface{}{
	"date",
	"drapsSimple", "housseSimple", "drapsDouble", "housseDouble",
	"taieOreiller", "grandeServiette", "petiteServiette",
	"kitSimple", "kitDouble", "kitServiette",
	"maxKitSimple", "maxKitDouble", "maxKitServiette",
	"parkingCimes", "parkingVallon",
	"commandesBoulangerie", "montantBoulangerie",
	"sale", "propre", "verifie",
}

// ReportSheet appends daily reports to a Google Sheets range, one row per run.
type ReportSheet struct {
	service       *sheetsapi.Service
	spreadsheetID string
	sheetRange    string
	logger        *zap.Logger
}

// NewReportSheet authenticates with the service account file named in cfg.
func NewReportSheet(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*ReportSheet, error) {
	return newReportSheet(ctx, cfg, logger,
		option.WithCredentialsFile(cfg.CredentialsPath),
		option.WithScopes(sheetsapi.SpreadsheetsScope))
}

func newReportSheet(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger, opts ...option.ClientOption) (*ReportSheet, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.SpreadsheetID == "" {
		return nil, errors.New("spreadsheet id must not be empty")
	}
	if !strings.Contains(cfg.ReportRange, "!") {
		return nil, fmt.Errorf("report range %q must be of the form Sheet!A:U", cfg.ReportRange)
	}

	service, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &ReportSheet{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		sheetRange:    cfg.ReportRange,
		logger:        logger,
	}, nil
}

// EnsureHeader writes ReportHeader into the first row when that row is empty.
func (s *ReportSheet) EnsureHeader(ctx context.Context) error {
	headerRange := s.headerRange()

	resp, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, headerRange).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("read header %s: %w", headerRange, err)
	}
	if len(resp.Values) > 0 && len(resp.Values[0]) > 0 {
		return nil
	}

	payload := &sheetsapi.ValueRange{Values: [][]interface{}{ReportHeader}}
	_, err = s.service.Spreadsheets.Values.Update(s.spreadsheetID, headerRange, payload).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("write header %s: %w", headerRange, err)
	}

	s.logger.Info("report sheet header written", zap.String("range", headerRange))
	return nil
}

// ExportDailyReport appends one row describing report.
func (s *ReportSheet) ExportDailyReport(ctx context.Context, report models.DailyReport) error {
	payload := &sheetsapi.ValueRange{Values: [][]interface{}{ReportRow(report)}}

	resp, err := s.service.Spreadsheets.Values.Append(s.spreadsheetID, s.sheetRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("export daily report %s into %s: %w", report.Date.Format(dateLayout), s.sheetRange, err)
	}

	updated := ""
	if resp.Updates != nil {
		updated = resp.Updates.UpdatedRange
	}
	s.logger.Debug("daily report appended",
		zap.String("date", report.Date.Format(dateLayout)),
		zap.String("updated_range", updated))
	return nil
}

// headerRange turns "Rapports!A:U" into "Rapports!A1:U1" sized to ReportHeader.
func (s *ReportSheet) headerRange() string {
	sheet, _, _ := strings.Cut(s.sheetRange, "!")
	last := string(rune('A' + len(ReportHeader) - 1))
	return sheet + "!A1:" + last + "1"
}

// ReportRow flattens report into the column order of ReportHeader.
func ReportRow(report models.DailyReport) []interface{} {
	s := report.Stock
	row := []interface{}{
		report.Date.Format(dateLayout),
		s.SingleSheets, s.SingleCovers, s.DoubleSheets, s.DoubleCovers,
		s.Pillowcases, s.LargeTowels, s.SmallTowels,
		report.Kits.Single, report.Kits.Double, report.Kits.Towel,
		report.MaxKits.Single, report.MaxKits.Double, report.MaxKits.Towel,
	}
	for _, b := range models.Buildings {
		row = append(row, report.Parking[b].UsedSpaces)
	}
	return append(row,
		report.BakeryOrders,
		report.BakeryAmount,
		report.Housekeeping.Dirty,
		report.Housekeeping.Clean,
		report.Housekeeping.Verified,
	)
}
