package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/timelane/pkg/errors"
)

// Format is an item document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath infers the document format from a file extension.
func FormatFromPath(path string) (Format, error) {
	if err := errors.ValidateInputPath(path); err != nil {
		return "", err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return FormatJSON, nil
}

// Record is one human-authored item.
type Record struct {
	ID        string   `json:"id" yaml:"id" validate:"required"`
	Name      string   `json:"name" yaml:"name" validate:"required"`
	Category  string   `json:"category,omitempty" yaml:"category,omitempty"`
	Secondary string   `json:"secondary,omitempty" yaml:"secondary,omitempty"`
	Start     *float64 `json:"start" yaml:"start" validate:"required"`
	End       *float64 `json:"end" yaml:"end" validate:"required,gtefield=Start"`
	Priority  bool     `json:"priority,omitempty" yaml:"priority,omitempty"`
}

// Document is a decoded item document.
type Document struct {
	Items []Record `json:"items" yaml:"items"`
}

// ReadItems decodes an item document from r.
// ReadItems does not validate records; see [Convert].
func ReadItems(r io.Reader, format Format) (Document, error) {
	var doc Document
	var err error
	switch format {
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&doc)
		if err == io.EOF {
			err = nil
		}
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&doc)
	default:
		return doc, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", format)
	}
	if err != nil {
		return doc, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode %s", format)
	}
	return doc, nil
}

// ImportItems reads the item document at path, inferring its format from
// the extension.
func ImportItems(path string) (Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return Document{}, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return Document{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadItems(f, format)
}
