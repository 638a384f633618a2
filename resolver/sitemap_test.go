package resolver

import (
	"strings"
	"testing"
)

func TestParseSitemapLocs(t *testing.T) {
	tests := []struct {
		name     string
		xml      string
		limit    int
		expected []string
		wantErr  bool
	}{
		{
			name: "plain urlset",
			xml: `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>https://example.com/</loc></url>
  <url><loc>https://example.com/about</loc></url>
</urlset>`,
			limit:    100,
			expected: []string{"https://example.com/", "https://example.com/about"},
		},
		{
			name: "whitespace around locs trimmed",
			xml: `<urlset><url><loc>
  https://example.com/page
</loc></url></urlset>`,
			limit:    100,
			expected: []string{"https://example.com/page"},
		},
		{
			name: "sitemap index locs also extracted",
			xml: `<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <sitemap><loc>https://example.com/sitemap-posts.xml</loc></sitemap>
</sitemapindex>`,
			limit:    100,
			expected: []string{"https://example.com/sitemap-posts.xml"},
		},
		{
			name: "limit caps entries",
			xml: `<urlset>
  <url><loc>https://example.com/1</loc></url>
  <url><loc>https://example.com/2</loc></url>
  <url><loc>https://example.com/3</loc></url>
</urlset>`,
			limit:    2,
			expected: []string{"https://example.com/1", "https://example.com/2"},
		},
		{
			name:     "non-loc elements ignored",
			xml:      `<urlset><url><loc>https://example.com/a</loc><lastmod>2024-01-01</lastmod></url></urlset>`,
			limit:    100,
			expected: []string{"https://example.com/a"},
		},
		{
			name:     "empty document",
			xml:      `<urlset></urlset>`,
			limit:    100,
			expected: nil,
		},
		{
			name:    "malformed xml returns error",
			xml:     `<urlset><url><loc>https://example.com/a</urlset>`,
			limit:   100,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSitemapLocs(strings.NewReader(tt.xml), tt.limit)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseSitemapLocs error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(got) != len(tt.expected) {
				t.Fatalf("expected %d entries, got %d: %v", len(tt.expected), len(got), got)
			}
			for i, want := range tt.expected {
				if got[i] != want {
					t.Errorf("entry %d = %q, want %q", i, got[i], want)
				}
			}
		})
	}
}
