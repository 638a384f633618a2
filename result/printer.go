package result

import (
	"fmt"
	"io"
)

// PrintResults writes per-URL outcomes and a summary to w.
func PrintResults(w io.Writer, batch *BatchResult) {
	writef := func(format string, a ...any) { _, _ = fmt.Fprintf(w, format, a...) }

	for _, res := range batch.Results {
		switch {
		case res.Status == StatusOK:
			writef("OK       %s (%d)\n", res.URL, res.HTTPStatus)
		case res.Recovered():
			writef("FIXED    %s\n", res.URL)
			writef("      -> %s (%s)\n", res.Alternative, res.Reason)
		case res.Status == StatusError:
			writef("ERROR    %s", res.URL)
			if res.Note != "" {
				writef(": %s", res.Note)
			}
			writef("\n")
		default:
			writef("BROKEN   %s", res.URL)
			if res.HTTPStatus != 0 {
				writef(" (%d)", res.HTTPStatus)
			}
			writef("\n")
		}
	}

	stats := batch.Stats
	writef("Checked %d URLs: %d ok, %d recovered, %d broken, %d errors\n",
		stats.TotalChecked, stats.OKCount, stats.Recovered, stats.Unrecovered, stats.Errored)
}
