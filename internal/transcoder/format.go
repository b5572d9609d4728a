package transcoder

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format names a textual serialization.
type Format string

const (
	// JSON is the compact data-interchange format.
	JSON Format = "json"
	// YAML is the indented human-readable format.
	YAML Format = "yaml"
)

var (
	errEmptyDocument = errors.New("empty document")
	errNotMapping    = errors.New("document root is not a mapping")
)

// ParseFormat accepts json, yaml and yml, ignoring case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Codec converts between bytes and values in one format.
type Codec interface {
	Decode(data []byte, v any) error
	Encode(v any) ([]byte, error)
}

// CodecFor returns the codec of f.
func CodecFor(f Format) (Codec, error) {
	switch f {
	case JSON:
		return jsonCodec{}, nil
	case YAML:
		return yamlCodec{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
}

type jsonCodec struct{}

// Decode reads exactly one JSON value; trailing data is an error.
func (jsonCodec) Decode(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Encode(v any) ([]byte, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

type yamlCodec struct{}

// Decode reads the first YAML document, whose root must be a mapping.
func (yamlCodec) Decode(data []byte, v any) error {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}
	if len(doc.Content) == 0 {
		return errEmptyDocument
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: found %s", errNotMapping, root.ShortTag())
	}
	return root.Decode(v)
}

func (yamlCodec) Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
