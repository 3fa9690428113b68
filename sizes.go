package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
)

// sizeField is the zero-based column holding the byte count in a size list.
const sizeField = 1

// readSizes reads byte counts from comma-separated records, one file per
// record, taking the second field. Records without a parsable non-negative
// integer there (headers, blank lines, broken rows) are skipped and counted.
func readSizes(r io.Reader) (sizes []int64, skipped int, err error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				skipped++
				continue
			}
			return nil, skipped, fmt.Errorf("read size list: %w", err)
		}

		size, err := parseSize(record)
		if err != nil {
			skipped++
			continue
		}
		sizes = append(sizes, size)
	}
	return sizes, skipped, nil
}

func parseSize(record []string) (int64, error) {
	if len(record) <= sizeField {
		return 0, fmt.Errorf("record has %d fields", len(record))
	}
	size, err := strconv.ParseInt(strings.TrimSpace(record[sizeField]), 10, 64)
	if err != nil {
		return 0, err
	}
	if size < 0 {
		return 0, fmt.Errorf("negative size %d", size)
	}
	return size, nil
}

// readSizesFile opens path and reads it with readSizes.
func readSizesFile(path string) ([]int64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open size list %s: %w", path, err)
	}
	defer f.Close()
	return readSizes(f)
}

// writeSizes writes files as path,size records with a header row, the format
// readSizes consumes.
func writeSizes(w io.Writer, files []FileInfo) error {
	if files == nil {
		files = []FileInfo{}
	}
	if err := gocsv.Marshal(files, w); err != nil {
		return fmt.Errorf("write size list: %w", err)
	}
	return nil
}

// sizesOf extracts the sizes of files.
func sizesOf(files []FileInfo) []int64 {
	sizes := make([]int64, 0, len(files))
	for _, f := range files {
		sizes = append(sizes, f.Size)
	}
	return sizes
}

func isSizeList(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".csv")
}
