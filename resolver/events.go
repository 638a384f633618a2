package resolver

import "github.com/rksxox-coder/broken-link-resolver/result"

// Event reports progress for a single resolved URL during bulk resolution.
type Event struct {
	URL         string
	Status      result.Status
	Reason      result.Reason
	Alternative string
	HTTPStatus  int
	Checked     int // URLs resolved so far, including this one
	Recovered   int // URLs with a working alternative so far
	Broken      int // URLs with no alternative so far
}
