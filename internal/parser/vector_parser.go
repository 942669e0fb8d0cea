package parser

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// VectorParser reads vectors from a source.
type VectorParser interface {
	// ParseVectors parses every vector in the file at path.
	ParseVectors(path string) ([]*Vector, error)
}

// JSONParser parses a JSON array of objects.
//
// Expected format:
//
//	[
//	  {"message": "...", "key": "0x01"},
//	  {"scheme": "schnorr", "hash": "0x...", "pubkey": "02...", "r": "0x...", "s": "0x..."}
//	]
type JSONParser struct {
	Fields Fields
}

// CSVParser parses a CSV file with a header row naming the fields.  Empty
// cells count as absent.
type CSVParser struct {
	Fields Fields
}

// ForFormat returns the parser for "json" or "csv".  An empty format is
// guessed from the file extension of path.
func ForFormat(format, path string) (VectorParser, error) {
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}
	switch strings.ToLower(format) {
	case "json":
		return &JSONParser{}, nil
	case "csv":
		return &CSVParser{}, nil
	}
	return nil, fmt.Errorf("unsupported vector format %q", format)
}

// ParseVectors parses vectors from a JSON file.
func (p *JSONParser) ParseVectors(path string) ([]*Vector, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	defer file.Close()
	return p.Decode(file)
}

// Decode parses vectors from JSON read from r.
func (p *JSONParser) Decode(r io.Reader) ([]*Vector, error) {
	decoder := json.NewDecoder(r)
	decoder.UseNumber()

	var items []map[string]any
	if err := decoder.Decode(&items); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	fields := p.Fields.withDefaults()
	vectors := make([]*Vector, 0, len(items))
	for i, item := range items {
		get := func(field string) (any, bool) {
			val, ok := item[field]
			if !ok || val == nil {
				return nil, false
			}
			return val, true
		}
		v, err := buildVector(i, fields, get)
		if err != nil {
			return nil, fmt.Errorf("vector %d: %w", i, err)
		}
		vectors = append(vectors, v)
	}
	return vectors, nil
}

// ParseVectors parses vectors from a CSV file.
func (p *CSVParser) ParseVectors(path string) ([]*Vector, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()
	return p.Decode(file)
}

// Decode parses vectors from CSV read from r.
func (p *CSVParser) Decode(r io.Reader) ([]*Vector, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	columns := make(map[string]int, len(header))
	for i, col := range header {
		columns[strings.TrimSpace(col)] = i
	}

	fields := p.Fields.withDefaults()
	var vectors []*Vector
	for i := 0; ; i++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		get := func(field string) (any, bool) {
			idx, ok := columns[field]
			if !ok || idx >= len(row) || strings.TrimSpace(row[idx]) == "" {
				return nil, false
			}
			return row[idx], true
		}
		v, err := buildVector(i, fields, get)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		vectors = append(vectors, v)
	}
	return vectors, nil
}
