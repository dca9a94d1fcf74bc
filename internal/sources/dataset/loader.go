package dataset

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/MrSnakeDoc/secdash/internal/domain"
)

//go:embed sample.yaml
var sampleData []byte

// Source yields the full, ordered record collection.
// It is called once at startup.
type Source interface {
	Name() string
	Load(ctx context.Context) ([]domain.Record, error)
}

// Parse decodes a data document (YAML, or JSON since YAML is a superset)
// and maps its rows to records.
func Parse(data []byte) ([]domain.Record, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse dataset: %w", err)
	}
	return MapRows(doc.Vulnerabilities)
}

// EmbeddedSource serves the sample collection compiled into the binary.
type EmbeddedSource struct{}

// NewEmbeddedSource creates the sample source
func NewEmbeddedSource() *EmbeddedSource {
	return &EmbeddedSource{}
}

func (s *EmbeddedSource) Name() string { return "embedded" }

// Load parses the embedded sample set.
func (s *EmbeddedSource) Load(_ context.Context) ([]domain.Record, error) {
	return Parse(sampleData)
}

// FileSource reads the collection from a YAML or JSON file.
type FileSource struct {
	filePath string
}

// NewFileSource creates a file-backed source
func NewFileSource(filePath string) *FileSource {
	return &FileSource{
		filePath: filePath,
	}
}

func (s *FileSource) Name() string { return "file" }

// Load reads and parses the data file.
func (s *FileSource) Load(_ context.Context) ([]domain.Record, error) {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}
	records, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.filePath, err)
	}
	return records, nil
}
