package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// Catalog Serialization API
// =============================================================================

// MarshalCatalog converts a course list to pretty-printed JSON bytes.
func MarshalCatalog(courses []Course) ([]byte, error) {
	return json.MarshalIndent(courses, "", "  ")
}

// UnmarshalCatalog deserializes JSON bytes to a course list.
func UnmarshalCatalog(data []byte) ([]Course, error) {
	var courses []Course
	if err := json.Unmarshal(data, &courses); err != nil {
		return nil, fmt.Errorf("unmarshal catalog: %w", err)
	}
	return courses, nil
}

// ReadCatalog decodes a JSON course list from an io.Reader.
func ReadCatalog(r io.Reader) ([]Course, error) {
	var courses []Course
	if err := json.NewDecoder(r).Decode(&courses); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return courses, nil
}

// ReadCatalogFile reads a JSON catalog file and returns the course list.
func ReadCatalogFile(path string) ([]Course, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadCatalog(f)
}

// WriteCatalog writes a course list as JSON to an io.Writer.
func WriteCatalog(courses []Course, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(courses); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteCatalogFile writes a course list to a JSON file.
// The file is created with 0644 permissions.
func WriteCatalogFile(courses []Course, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteCatalog(courses, f)
}

// LoadIndexFile reads a catalog file and builds its index in one step.
func LoadIndexFile(path string) (*Index, error) {
	courses, err := ReadCatalogFile(path)
	if err != nil {
		return nil, err
	}
	return BuildIndex(courses)
}
