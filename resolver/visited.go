package resolver

import (
	"errors"
	"fmt"
	"os"

	bloom "github.com/bits-and-blooms/bloom/v3"
	"github.com/edsrzf/mmap-go"
)

// crawlVisited deduplicates URLs during a homepage crawl with a
// disk-backed bloom filter. The filter is memory-mapped so even a
// link-heavy site keeps a constant footprint; false positives only cause
// a page to be skipped, never revisited.
//
// Each crawl owns its own tracker, so no locking is needed.
type crawlVisited struct {
	filter  *bloom.BloomFilter
	file    *os.File
	mapped  mmap.MMap
	tmpPath string
}

// newCrawlVisited creates a tracker sized for the expected number of
// distinct URLs one crawl can touch (pages plus their outgoing links).
func newCrawlVisited(expected uint) (*crawlVisited, error) {
	filter := bloom.NewWithEstimates(expected, 0.01)

	tmpFile, err := os.CreateTemp(os.TempDir(), "blr-crawl-*.bloom")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	cleanup := func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}

	size := filter.Cap()
	if err := tmpFile.Truncate(int64(size)); err != nil {
		cleanup()
		return nil, fmt.Errorf("truncate temp file: %w", err)
	}

	mapped, err := mmap.MapRegion(tmpFile, int(size), mmap.RDWR, 0, 0)
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("mmap temp file: %w", err)
	}

	data, err := filter.MarshalBinary()
	if err != nil {
		_ = mapped.Unmap()
		cleanup()
		return nil, fmt.Errorf("marshal bloom filter: %w", err)
	}
	if len(data) <= len(mapped) {
		copy(mapped, data)
	}

	return &crawlVisited{
		filter:  filter,
		file:    tmpFile,
		mapped:  mapped,
		tmpPath: tmpPath,
	}, nil
}

// visitIfNew marks a URL visited, reporting whether it was new.
func (v *crawlVisited) visitIfNew(url string) bool {
	if v.filter.TestString(url) {
		return false
	}
	v.filter.AddString(url)
	return true
}

// close flushes the filter to its backing file and removes it.
func (v *crawlVisited) close() error {
	var errs []error

	if v.mapped != nil {
		if data, err := v.filter.MarshalBinary(); err == nil && len(data) <= len(v.mapped) {
			copy(v.mapped, data)
			if err := v.mapped.Flush(); err != nil {
				errs = append(errs, fmt.Errorf("flush mmap: %w", err))
			}
		}
		if err := v.mapped.Unmap(); err != nil {
			errs = append(errs, fmt.Errorf("unmap: %w", err))
		}
		v.mapped = nil
	}

	if v.file != nil {
		if err := v.file.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close file: %w", err))
		}
		v.file = nil
	}

	if v.tmpPath != "" {
		if err := os.Remove(v.tmpPath); err != nil && !os.IsNotExist(err) {
			errs = append(errs, fmt.Errorf("remove temp file: %w", err))
		}
		v.tmpPath = ""
	}

	if len(errs) > 0 {
		return fmt.Errorf("close visited tracker: %w", errors.Join(errs...))
	}
	return nil
}
