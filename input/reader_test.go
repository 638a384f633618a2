package input

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestReadText(t *testing.T) {
	in := `# checked links
https://example.com/a

https://example.com/b
  https://example.com/c
`
	urls, err := ReadText(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadText: %v", err)
	}

	want := []string{"https://example.com/a", "https://example.com/b", "https://example.com/c"}
	assertURLs(t, urls, want)
}

func TestReadTextEmpty(t *testing.T) {
	_, err := ReadText(strings.NewReader("# only comments\n\n"))
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("error = %v, want ErrEmptyInput", err)
	}
}

func TestReadCSV(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "header row skipped",
			in:   "url,checked_at\nhttps://example.com/a,2024-01-01\nhttps://example.com/b,2024-01-02\n",
			want: []string{"https://example.com/a", "https://example.com/b"},
		},
		{
			name: "no header",
			in:   "https://example.com/a,x\nhttps://example.com/b,y\n",
			want: []string{"https://example.com/a", "https://example.com/b"},
		},
		{
			name: "single column",
			in:   "https://example.com/a\nhttps://example.com/b\n",
			want: []string{"https://example.com/a", "https://example.com/b"},
		},
		{
			name: "blank first cells skipped",
			in:   "https://example.com/a\n,second-column-only\nhttps://example.com/b\n",
			want: []string{"https://example.com/a", "https://example.com/b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			urls, err := ReadCSV(strings.NewReader(tt.in))
			if err != nil {
				t.Fatalf("ReadCSV: %v", err)
			}
			assertURLs(t, urls, tt.want)
		})
	}
}

func TestReadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.xlsx")

	book := excelize.NewFile()
	sheet := book.GetSheetName(0)
	cells := map[string]string{
		"A1": "url",
		"A2": "https://example.com/a",
		"A3": "https://example.com/b",
		"B2": "ignored",
	}
	for cell, value := range cells {
		if err := book.SetCellValue(sheet, cell, value); err != nil {
			t.Fatalf("SetCellValue(%s): %v", cell, err)
		}
	}
	if err := book.SaveAs(path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	if err := book.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	urls, err := ReadXLSX(path)
	if err != nil {
		t.Fatalf("ReadXLSX: %v", err)
	}
	assertURLs(t, urls, []string{"https://example.com/a", "https://example.com/b"})
}

func TestReadURLsDispatch(t *testing.T) {
	dir := t.TempDir()

	txtPath := filepath.Join(dir, "urls.txt")
	if err := os.WriteFile(txtPath, []byte("https://example.com/a\n"), 0o644); err != nil {
		t.Fatalf("write txt: %v", err)
	}
	csvPath := filepath.Join(dir, "urls.csv")
	if err := os.WriteFile(csvPath, []byte("url\nhttps://example.com/b\n"), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	urls, err := ReadURLs(txtPath)
	if err != nil {
		t.Fatalf("ReadURLs(txt): %v", err)
	}
	assertURLs(t, urls, []string{"https://example.com/a"})

	urls, err = ReadURLs(csvPath)
	if err != nil {
		t.Fatalf("ReadURLs(csv): %v", err)
	}
	assertURLs(t, urls, []string{"https://example.com/b"})
}

func TestReadURLsMissingFile(t *testing.T) {
	if _, err := ReadURLs(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func assertURLs(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d URLs, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("url %d = %q, want %q", i, got[i], want[i])
		}
	}
}
