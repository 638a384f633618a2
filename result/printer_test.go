package result

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrintResults(t *testing.T) {
	batch := &BatchResult{Results: sampleResults()}
	batch.Summarize()

	var buf bytes.Buffer
	PrintResults(&buf, batch)
	out := buf.String()

	if !strings.Contains(out, "OK       https://example.com/ok (200)") {
		t.Errorf("expected OK line, got:\n%s", out)
	}
	if !strings.Contains(out, "FIXED    https://example.com/moved") {
		t.Errorf("expected FIXED line, got:\n%s", out)
	}
	if !strings.Contains(out, "-> https://example.com/moved/ (variant)") {
		t.Errorf("expected alternative line with reason, got:\n%s", out)
	}
	if !strings.Contains(out, "ERROR    https://gone.invalid/page?q=1&x=2: no working alternative found") {
		t.Errorf("expected ERROR line with note, got:\n%s", out)
	}
	if !strings.Contains(out, "Checked 3 URLs: 1 ok, 1 recovered, 0 broken, 1 errors") {
		t.Errorf("expected summary line, got:\n%s", out)
	}
}

func TestPrintResultsBroken(t *testing.T) {
	batch := &BatchResult{Results: []CheckResult{
		{URL: "https://example.com/gone", Status: StatusBroken, HTTPStatus: 410, Reason: ReasonNoneFound},
	}}
	batch.Summarize()

	var buf bytes.Buffer
	PrintResults(&buf, batch)
	out := buf.String()

	if !strings.Contains(out, "BROKEN   https://example.com/gone (410)") {
		t.Errorf("expected BROKEN line with status, got:\n%s", out)
	}
	if !strings.Contains(out, "0 ok, 0 recovered, 1 broken, 0 errors") {
		t.Errorf("expected summary counts, got:\n%s", out)
	}
}
