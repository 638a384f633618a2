// Package input reads URL lists from the file formats the CLI accepts:
// plain text (one URL per line), CSV (first column), and XLSX (first
// column of the first sheet).
package input

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrEmptyInput is returned when a file contains no URLs at all.
var ErrEmptyInput = errors.New("input contains no URLs")

// ReadURLs loads a URL list from path, dispatching on the file extension.
// Unknown extensions are treated as plain text.
func ReadURLs(path string) ([]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()
		return ReadCSV(f)
	case ".xlsx":
		return ReadXLSX(path)
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()
		return ReadText(f)
	}
}

// ReadText reads one URL per line, skipping blank lines and '#' comments.
func ReadText(r io.Reader) ([]string, error) {
	var urls []string

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read text input: %w", err)
	}

	return checkNonEmpty(urls)
}

// ReadCSV reads URLs from the first column. A first row whose first cell
// does not look like a URL is treated as a header and skipped.
func ReadCSV(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var urls []string
	first := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv input: %w", err)
		}
		if len(record) == 0 {
			continue
		}

		cell := strings.TrimSpace(record[0])
		if first {
			first = false
			if !looksLikeURL(cell) {
				continue
			}
		}
		if cell == "" {
			continue
		}
		urls = append(urls, cell)
	}

	return checkNonEmpty(urls)
}

// ReadXLSX reads URLs from the first column of the first sheet. Header
// rows are skipped with the same heuristic as CSV.
func ReadXLSX(path string) ([]string, error) {
	book, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer book.Close()

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyInput
	}

	rows, err := book.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	var urls []string
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell := strings.TrimSpace(row[0])
		if cell == "" {
			continue
		}
		if i == 0 && !looksLikeURL(cell) {
			continue
		}
		urls = append(urls, cell)
	}

	return checkNonEmpty(urls)
}

// looksLikeURL is the header heuristic: anything with a scheme separator
// or a dotted hostname counts as a URL, bare words like "url" do not.
func looksLikeURL(s string) bool {
	if s == "" {
		return false
	}
	return strings.Contains(s, "://") || strings.Contains(s, ".")
}

func checkNonEmpty(urls []string) ([]string, error) {
	if len(urls) == 0 {
		return nil, ErrEmptyInput
	}
	return urls, nil
}
