package result

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
)

func sampleResults() []CheckResult {
	return []CheckResult{
		{
			URL:        "https://example.com/ok",
			Status:     StatusOK,
			HTTPStatus: 200,
			Reason:     ReasonDirect,
			Confidence: 1,
		},
		{
			URL:         "https://example.com/moved",
			Status:      StatusBroken,
			HTTPStatus:  404,
			Alternative: "https://example.com/moved/",
			Reason:      ReasonVariant,
			Confidence:  0.9,
			Note:        "trailing-slash variant of original URL",
		},
		{
			URL:           "https://gone.invalid/page?q=1&x=2",
			Status:        StatusError,
			Reason:        ReasonNoneFound,
			Note:          "no working alternative found",
			ErrorCategory: CategoryUnreachable,
		},
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleResults()); err != nil {
		t.Fatalf("WriteJSON returned error: %v", err)
	}

	var decoded []CheckResult
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 3 {
		t.Fatalf("expected 3 results, got %d", len(decoded))
	}
	if decoded[1].Alternative != "https://example.com/moved/" {
		t.Errorf("alternative not preserved: %q", decoded[1].Alternative)
	}
	if decoded[2].ErrorCategory != CategoryUnreachable {
		t.Errorf("error category not preserved: %q", decoded[2].ErrorCategory)
	}

	// Ampersands in URLs must survive unescaped.
	if !strings.Contains(buf.String(), "q=1&x=2") {
		t.Errorf("expected unescaped query string in output, got: %s", buf.String())
	}
	// Empty optional fields should be omitted entirely.
	if strings.Contains(buf.String(), `"http_status": 0`) {
		t.Errorf("zero http_status should be omitted, got: %s", buf.String())
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleResults()); err != nil {
		t.Fatalf("WriteCSV returned error: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d records", len(records))
	}

	wantHeader := []string{"url", "status", "http_status", "alternative", "reason", "note"}
	for i, col := range wantHeader {
		if records[0][i] != col {
			t.Errorf("header column %d = %q, want %q", i, records[0][i], col)
		}
	}

	if records[2][3] != "https://example.com/moved/" {
		t.Errorf("alternative column = %q", records[2][3])
	}
	if records[3][2] != "" {
		t.Errorf("http_status for network error should be empty, got %q", records[3][2])
	}
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("WriteCSV returned error: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("expected header only, got %d records", len(records))
	}
}
