package measurement

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	jsoniter "github.com/json-iterator/go"
)

// FileVersion is written into every measurement file
const FileVersion = "1.0"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// File is the on-disk envelope for saved measurements
type File struct {
	Version      string   `json:"version"`
	Measurements []Record `json:"measurements"`
}

// SidecarPath returns the measurement file that belongs to a model file
func SidecarPath(modelPath string) string {
	return modelPath + ".gomeasure.json"
}

// Encode renders records as an indented measurement file
func Encode(records []Record) ([]byte, error) {
	data, err := json.MarshalIndent(File{Version: FileVersion, Measurements: records}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal measurements: %w", err)
	}
	return data, nil
}

// Decode parses a measurement file. Entries that do not decode are skipped
// and reported as diagnostics; only a broken envelope is an error.
func (c *Codec) Decode(data []byte) ([]Record, error) {
	var envelope struct {
		Version      string                `json:"version"`
		Measurements []jsoniter.RawMessage `json:"measurements"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse measurements: %w", err)
	}

	records := make([]Record, 0, len(envelope.Measurements))
	for i, raw := range envelope.Measurements {
		var rec Record
		if err := json.Unmarshal(raw, &rec); err != nil {
			c.report(Diagnostic{
				Kind:  MalformedRecord,
				Index: i,
				Err:   fmt.Errorf("%w: %w", ErrMalformedRecord, err),
			})
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// SaveFile writes records to path. An empty record list removes the file.
func SaveFile(path string, records []Record) error {
	if len(records) == 0 {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to remove measurements file: %w", err)
		}
		return nil
	}

	data, err := Encode(records)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write measurements file: %w", err)
	}
	return nil
}

// LoadFile reads records from path. A missing file yields no records.
func (c *Codec) LoadFile(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read measurements file: %w", err)
	}
	return c.Decode(data)
}
