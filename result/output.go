package result

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// WriteJSON writes the check results as a formatted JSON array to the writer.
// Uses a flat array (no metadata wrapper) for simpler downstream consumption.
func WriteJSON(w io.Writer, results []CheckResult) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return fmt.Errorf("write json output: %w", err)
	}
	return nil
}

// WriteCSV writes the check results as CSV to the writer.
// Always includes a header row, even when there are no results.
// Column order: url, status, http_status, alternative, reason, note
func WriteCSV(w io.Writer, results []CheckResult) error {
	cw := csv.NewWriter(w)

	header := []string{"url", "status", "http_status", "alternative", "reason", "note"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, res := range results {
		record := []string{
			res.URL,
			string(res.Status),
			statusCodeStr(res.HTTPStatus),
			res.Alternative,
			string(res.Reason),
			res.Note,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv record for %s: %w", res.URL, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv output: %w", err)
	}
	return nil
}

// statusCodeStr converts an HTTP status code to a string.
// Returns empty string for 0 (no HTTP status obtained).
func statusCodeStr(code int) string {
	if code == 0 {
		return ""
	}
	return strconv.Itoa(code)
}
