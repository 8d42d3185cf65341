package sheets

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

// Client is the lead table in the first sheet of one spreadsheet.
// Rows and columns are 1-based, as in the sheet UI.
type Client struct {
	svc           *gsheets.Service
	spreadsheetID string
	sheetTitle    string
}

func NewFromServiceAccount(ctx context.Context, spreadsheetID string, credentialsJSON []byte) (*Client, error) {
	return New(ctx, spreadsheetID,
		option.WithCredentialsJSON(credentialsJSON),
		option.WithScopes(gsheets.SpreadsheetsScope),
	)
}

func New(ctx context.Context, spreadsheetID string, opts ...option.ClientOption) (*Client, error) {
	svc, err := gsheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	doc, err := svc.Spreadsheets.Get(spreadsheetID).
		Fields("sheets.properties.title").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet %s: %w", spreadsheetID, err)
	}
	if len(doc.Sheets) == 0 || doc.Sheets[0].Properties == nil {
		return nil, fmt.Errorf("spreadsheet %s has no sheets", spreadsheetID)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetTitle:    doc.Sheets[0].Properties.Title,
	}, nil
}

func (c *Client) Append(ctx context.Context, row []string) error {
	values := make([]interface{}, len(row))
	for i, v := range row {
		values[i] = v
	}

	_, err := c.svc.Spreadsheets.Values.
		Append(c.spreadsheetID, c.a1("A1"), &gsheets.ValueRange{Values: [][]interface{}{values}}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append row: %w", err)
	}
	return nil
}

// ReadAll returns every non-empty row, header included, as strings.
func (c *Client) ReadAll(ctx context.Context) ([][]string, error) {
	resp, err := c.svc.Spreadsheets.Values.
		Get(c.spreadsheetID, c.a1("")).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}

	rows := make([][]string, len(resp.Values))
	for i, raw := range resp.Values {
		row := make([]string, len(raw))
		for j, cell := range raw {
			row[j] = cellString(cell)
		}
		rows[i] = row
	}
	return rows, nil
}

func (c *Client) UpdateCell(ctx context.Context, row, column int, value string) error {
	if row < 1 || column < 1 {
		return fmt.Errorf("cell (%d, %d) out of range", row, column)
	}

	cell := fmt.Sprintf("%s%d", columnLetter(column), row)
	_, err := c.svc.Spreadsheets.Values.
		Update(c.spreadsheetID, c.a1(cell), &gsheets.ValueRange{Values: [][]interface{}{{value}}}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("update %s: %w", cell, err)
	}
	return nil
}

// Formatted values come back as strings; numbers only appear if someone
// switched the render option.
func cellString(cell interface{}) string {
	switch v := cell.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// a1 builds a range on the lead sheet; an empty cell means the whole sheet.
func (c *Client) a1(cell string) string {
	title := "'" + strings.ReplaceAll(c.sheetTitle, "'", "''") + "'"
	if cell == "" {
		return title
	}
	return title + "!" + cell
}

// columnLetter maps 1 -> A, 26 -> Z, 27 -> AA.
func columnLetter(column int) string {
	var b []byte
	for column > 0 {
		column--
		b = append([]byte{byte('A' + column%26)}, b...)
		column /= 26
	}
	return string(b)
}
