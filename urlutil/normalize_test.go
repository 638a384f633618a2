package urlutil

import (
	"errors"
	"testing"

	"github.com/rksxox-coder/broken-link-resolver/result"
)

func TestParseAbsolute(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "plain https URL",
			input: "https://example.com/page",
			want:  "https://example.com/page",
		},
		{
			name:  "surrounding whitespace trimmed",
			input: "  https://example.com/page \n",
			want:  "https://example.com/page",
		},
		{
			name:  "scheme and host lowercased",
			input: "HTTPS://Example.COM/Page",
			want:  "https://example.com/Page",
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: true,
		},
		{
			name:    "whitespace only",
			input:   "   ",
			wantErr: true,
		},
		{
			name:    "relative reference",
			input:   "/just/a/path",
			wantErr: true,
		},
		{
			name:    "ftp scheme rejected",
			input:   "ftp://files.example.com/",
			wantErr: true,
		},
		{
			name:    "missing host",
			input:   "https:///path",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAbsolute(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseAbsolute(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, result.ErrInvalidURL) {
					t.Errorf("error should wrap ErrInvalidURL, got %v", err)
				}
				return
			}
			if got.String() != tt.want {
				t.Errorf("ParseAbsolute(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{
			name:     "fragment stripping",
			input:    "https://example.com/page#section",
			expected: "https://example.com/page",
		},
		{
			name:     "trailing slash stripping",
			input:    "https://example.com/about/",
			expected: "https://example.com/about",
		},
		{
			name:     "root path keeps slash",
			input:    "https://example.com/",
			expected: "https://example.com/",
		},
		{
			name:     "default https port stripped",
			input:    "https://example.com:443/page",
			expected: "https://example.com/page",
		},
		{
			name:     "default http port stripped",
			input:    "http://example.com:80/page",
			expected: "http://example.com/page",
		},
		{
			name:     "non-default port preserved",
			input:    "https://example.com:8443/page",
			expected: "https://example.com:8443/page",
		},
		{
			name:     "query params preserved",
			input:    "https://example.com/search?q=foo",
			expected: "https://example.com/search?q=foo",
		},
		{
			name:     "scheme lowercased",
			input:    "HTTPS://Example.Com/Page",
			expected: "https://example.com/Page",
		},
		{
			name:    "empty string returns error",
			input:   "",
			wantErr: true,
		},
		{
			name:    "invalid URL returns error",
			input:   "://invalid",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("Normalize() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.expected {
				t.Errorf("Normalize() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestEquivalent(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want bool
	}{
		{
			name: "identical",
			a:    "https://example.com/page",
			b:    "https://example.com/page",
			want: true,
		},
		{
			name: "trailing slash difference",
			a:    "https://example.com/page/",
			b:    "https://example.com/page",
			want: true,
		},
		{
			name: "case difference in host",
			a:    "https://EXAMPLE.com/page",
			b:    "https://example.com/page",
			want: true,
		},
		{
			name: "fragment difference",
			a:    "https://example.com/page#top",
			b:    "https://example.com/page",
			want: true,
		},
		{
			name: "different paths",
			a:    "https://example.com/a",
			b:    "https://example.com/b",
			want: false,
		},
		{
			name: "different scheme",
			a:    "http://example.com/page",
			b:    "https://example.com/page",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equivalent(tt.a, tt.b); got != tt.want {
				t.Errorf("Equivalent(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
