package export

import (
	"encoding/json"
	"fmt"
	"io"

	"streakboard/internal/records"
)

// WriteRecordsJSON writes recs as an indented JSON array.
func WriteRecordsJSON(w io.Writer, recs []records.Record) error {
	if recs == nil {
		recs = []records.Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(recs); err != nil {
		return fmt.Errorf("encode records: %w", err)
	}
	return nil
}

// Format is a supported export encoding.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
	FormatJSONL Format = "jsonl"
)

// WriteRecords dispatches to the writer for format.
func WriteRecords(w io.Writer, format Format, recs []records.Record, names map[string]string) error {
	switch format {
	case FormatCSV:
		return WriteRecordsCSV(w, recs, names)
	case FormatJSON:
		return WriteRecordsJSON(w, recs)
	case FormatJSONL:
		return WriteRecordsJSONL(w, recs)
	}
	return fmt.Errorf("unsupported export format %q (expected csv, json or jsonl)", format)
}
