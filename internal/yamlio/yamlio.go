package yamlio

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rhyrak/go-timetable/pkg/model"
)

// Document is the YAML layout of one generated timetable.
type Document struct {
	Valid    bool                     `yaml:"valid"`
	Report   string                   `yaml:"report,omitempty"`
	Sessions []*model.TimetableRow    `yaml:"sessions"`
	Manual   []model.ManualResolution `yaml:"manual_resolution,omitempty"`
}

func Marshal(doc *Document) ([]byte, error) {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode timetable yaml: %w", err)
	}
	return data, nil
}

func Unmarshal(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse timetable yaml: %w", err)
	}
	return &doc, nil
}

// Export writes the document to path and returns the path.
func Export(doc *Document, path string) (string, error) {
	data, err := Marshal(doc)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// Load reads a document written by Export.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Unmarshal(data)
}
