// Package export mirrors contact-form submissions to external sinks.
// Every sink is fire-and-forget: failures are logged, never surfaced to
// the submitting user.
package export

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"huangye/pkg/model"
)

// SheetsExporter appends submissions to a Google Sheet.
type SheetsExporter struct {
	spreadsheetID string
	sheetRange    string
	svc           *sheets.Service
}

// NewSheetsExporter creates the exporter from a service-account
// credentials file.
func NewSheetsExporter(ctx context.Context, credentialsFile, spreadsheetID, sheetRange string) (*SheetsExporter, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	if sheetRange == "" {
		sheetRange = "Sheet1!A:G"
	}

	return &SheetsExporter{
		spreadsheetID: spreadsheetID,
		sheetRange:    sheetRange,
		svc:           svc,
	}, nil
}

// Name identifies the sink in logs.
func (e *SheetsExporter) Name() string { return "sheets" }

// Export appends one submission row.
func (e *SheetsExporter) Export(ctx context.Context, sub *model.Submission) error {
	values := &sheets.ValueRange{
		Values: [][]interface{}{{
			sub.CreatedAt.Format("2006-01-02 15:04:05"),
			sub.Name,
			sub.Email,
			sub.City,
			sub.Type,
			sub.Details,
			sub.Contact,
		}},
	}

	_, err := e.svc.Spreadsheets.Values.
		Append(e.spreadsheetID, e.sheetRange, values).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets append failed: %w", err)
	}
	return nil
}
