// Package batch turns a CSV of website URLs into per-row summaries. It
// parses uploads, runs the summary pipeline row by row and renders the
// result CSV served back to the caller.
package batch

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/leadfoundry/sitebrief/internal/store"
)

// websiteColumns are the header names accepted for the URL column, checked
// in order.
var websiteColumns = []string{
	"Website", "website", "url", "URL", "Url", "link", "Link", "web_url", "Web URL",
}

// ErrNoWebsiteColumn is returned when no accepted header name is present.
var ErrNoWebsiteColumn = errors.New("no website column found in CSV header")

// Document is a parsed input CSV with the detected website column.
type Document struct {
	Header     []string
	Records    [][]string
	WebsiteCol int
}

// Parse reads a CSV and locates the website column. Rows shorter than the
// header are padded so the website cell is always addressable.
func Parse(r io.Reader) (*Document, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	col := DetectWebsiteColumn(header)
	if col < 0 {
		return nil, fmt.Errorf("%w (columns: %s)", ErrNoWebsiteColumn, strings.Join(header, ", "))
	}

	var records [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		for len(record) <= col {
			record = append(record, "")
		}
		records = append(records, record)
	}

	return &Document{Header: header, Records: records, WebsiteCol: col}, nil
}

// DetectWebsiteColumn returns the index of the first accepted header name,
// or -1 when none matches.
func DetectWebsiteColumn(header []string) int {
	for _, want := range websiteColumns {
		for i, got := range header {
			if strings.TrimSpace(got) == want {
				return i
			}
		}
	}
	return -1
}

// Seeds returns the trimmed website cell of every record in row order. Cells
// holding missing-value markers collapse to the empty string.
func (d *Document) Seeds() []string {
	seeds := make([]string, len(d.Records))
	for i, record := range d.Records {
		cell := strings.TrimSpace(record[d.WebsiteCol])
		switch strings.ToLower(cell) {
		case "", "nan", "none":
			seeds[i] = ""
		default:
			seeds[i] = cell
		}
	}
	return seeds
}

// WriteWithSummaries writes the original rows with a summary column
// appended, or replaced when the input already carries one. Rows without a
// stored result get an empty summary cell.
func (d *Document) WriteWithSummaries(w io.Writer, results []store.RowResult) error {
	byRow := make(map[int]store.RowResult, len(results))
	for _, res := range results {
		byRow[res.Row] = res
	}

	summaryCol := -1
	header := append([]string(nil), d.Header...)
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(name), "summary") {
			summaryCol = i
			break
		}
	}
	if summaryCol < 0 {
		summaryCol = len(header)
		header = append(header, "summary")
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i, record := range d.Records {
		row := append([]string(nil), record...)
		for len(row) < len(header) {
			row = append(row, "")
		}
		if res, ok := byRow[i+1]; ok {
			row[summaryCol] = res.Summary
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write csv row %d: %w", i+1, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// RenderResults writes the stored row results as a standalone CSV, used by
// the job result endpoint where the original upload is no longer held.
func RenderResults(w io.Writer, results []store.RowResult) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"row", "website", "summary", "word_count"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, res := range results {
		record := []string{
			strconv.Itoa(res.Row),
			res.URL,
			res.Summary,
			strconv.Itoa(res.WordCount),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write csv row %d: %w", res.Row, err)
		}
	}
	writer.Flush()
	return writer.Error()
}
