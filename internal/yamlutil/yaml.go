// Package yamlutil is the one YAML entry point for config files and post
// front matter. Both go through goccy/go-yaml under the same size limit, and
// every parse error carries the "yamlutil:" prefix.
package yamlutil

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize caps the bytes accepted by a single decode (default 1MB).
var MaxInputSize = 1 << 20

var (
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
	ErrNotMapping     = errors.New("yamlutil: document is not a mapping")
)

// UnmarshalStrict decodes data into v and rejects keys v does not declare.
// Blank input leaves v untouched, so an empty config file means defaults.
func UnmarshalStrict(data []byte, v any) error {
	if v == nil {
		return ErrNilDestination
	}
	blank, err := inspect(data)
	if err != nil || blank {
		return err
	}
	return decode(data, v, yaml.Strict())
}

// DecodeMap decodes a YAML mapping into a generic map. Blank or null input
// yields an empty map; a top-level sequence or scalar is ErrNotMapping.
func DecodeMap(data []byte) (map[string]any, error) {
	blank, err := inspect(data)
	if err != nil {
		return nil, err
	}
	if blank {
		return map[string]any{}, nil
	}

	var raw any
	if err := decode(data, &raw); err != nil {
		return nil, err
	}
	switch m := raw.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return m, nil
	default:
		return nil, fmt.Errorf("%w: got %T", ErrNotMapping, raw)
	}
}

// inspect enforces MaxInputSize and reports whitespace-only input.
func inspect(data []byte) (blank bool, err error) {
	if len(data) > MaxInputSize {
		return false, fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	return len(bytes.TrimSpace(data)) == 0, nil
}

func decode(data []byte, v any, opts ...yaml.DecodeOption) error {
	if err := yaml.UnmarshalWithOptions(data, v, opts...); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}
