package export

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"streakboard/internal/records"
)

// WriteRecordsJSONL writes one JSON object per line.
func WriteRecordsJSONL(w io.Writer, recs []records.Record) error {
	writer := bufio.NewWriter(w)
	encoder := json.NewEncoder(writer)
	for _, r := range recs {
		if err := encoder.Encode(r); err != nil {
			return fmt.Errorf("failed to encode record %s: %w", r.ID, err)
		}
	}
	return writer.Flush()
}

// ReadRecordsJSONL reads records written by WriteRecordsJSONL.
// Blank lines are ignored and malformed lines are logged and skipped.
func ReadRecordsJSONL(r io.Reader) ([]records.Record, error) {
	out := []records.Record{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var rec records.Record
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			log.Warn().Err(err).Int("line", line).Msg("Skipping invalid JSON line")
			continue
		}
		out = append(out, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading records: %w", err)
	}
	return out, nil
}

// LoadRecordsJSONL reads a JSONL file from disk.
func LoadRecordsJSONL(path string) ([]records.Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	recs, err := ReadRecordsJSONL(file)
	if err != nil {
		return nil, err
	}
	log.Info().Str("path", path).Int("count", len(recs)).Msg("Loaded records")
	return recs, nil
}

// SaveRecordsJSONL writes recs to path through a temporary file so readers
// never observe a partial file.
func SaveRecordsJSONL(path string, recs []records.Record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmpPath := path + ".tmp"
	file, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if err := WriteRecordsJSONL(file, recs); err != nil {
		file.Close()
		os.Remove(tmpPath)
		return err
	}

	if err := file.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close file: %w", err)
	}

	// Atomic rename
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename file: %w", err)
	}

	log.Info().Str("path", path).Int("count", len(recs)).Msg("Records saved")
	return nil
}
