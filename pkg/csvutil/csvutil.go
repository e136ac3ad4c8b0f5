// Package csvutil wraps encoding/csv with the conventions shared by the CSV
// upload endpoints and the data CLI: UTF-8 BOM stripping, trimmed headers,
// and name-based field access so column order never matters.
package csvutil

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// NewReader returns a csv.Reader over r with a UTF-8 BOM, if present,
// already consumed. FieldsPerRecord is disabled so ragged rows surface as
// short records instead of parse errors.
func NewReader(r io.Reader) *csv.Reader {
	br := bufio.NewReader(r)
	if b, err := br.Peek(3); err == nil && len(b) == 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		_, _ = br.Discard(3)
	}
	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	return cr
}

// ReadHeader consumes and returns the header row with each column trimmed.
func ReadHeader(r *csv.Reader) ([]string, error) {
	h, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("missing header")
		}
		return nil, err
	}
	for i := range h {
		h[i] = strings.TrimSpace(h[i])
		if !utf8.ValidString(h[i]) {
			return nil, fmt.Errorf("invalid header encoding")
		}
	}
	return h, nil
}

func HeaderIndex(header []string) map[string]int {
	m := make(map[string]int, len(header))
	for i, name := range header {
		m[name] = i
	}
	return m
}

func RequireColumns(header []string, required ...string) error {
	hset := make(map[string]struct{}, len(header))
	for _, h := range header {
		hset[h] = struct{}{}
	}
	for _, req := range required {
		if _, ok := hset[req]; !ok {
			return fmt.Errorf("missing required header column: %s", req)
		}
	}
	return nil
}

// Field returns the trimmed value of the named column in record, or "" when
// the column is absent or the record is too short.
func Field(record []string, index map[string]int, name string) string {
	i, ok := index[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}
