package rspec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is an output encoding.
type Format string

const (
	FormatXML  Format = "xml"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Formats lists the supported output formats.
var Formats = []Format{FormatXML, FormatJSON, FormatYAML}

// ParseFormat maps a user-supplied name to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "xml", "rspec":
		return FormatXML, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unsupported format %q: must be one of xml, json, yaml", s)
}

// Marshal validates the request and renders it in the given format.
func Marshal(req *Request, format Format) ([]byte, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	switch format {
	case FormatXML:
		return marshalXML(req)
	case FormatJSON:
		b, err := json.MarshalIndent(req, "", "\t")
		if err != nil {
			return nil, err
		}
		return append(b, '\n'), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(req); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("unsupported format %q", format)
}

// Encode writes the rendered request to w. Nothing is written if rendering
// fails.
func Encode(w io.Writer, req *Request, format Format) error {
	b, err := Marshal(req, format)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}
