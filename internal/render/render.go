// Package render writes resolved plugin payloads for humans and machines.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/gowebpki/jcs"
	"github.com/metalagman/droneplug/internal/config"
	"github.com/metalagman/droneplug/pkg/input"
	"gopkg.in/yaml.v3"
)

// Renderer writes payloads according to the output config.
type Renderer struct {
	output config.OutputConfig
	style  string
}

// New creates a Renderer.
func New(cfg config.Config) *Renderer {
	return &Renderer{output: cfg.Output, style: cfg.Describe.Style}
}

// Write encodes in to w in the configured format.
func (r *Renderer) Write(w io.Writer, in input.ResolvedInput) error {
	var (
		data []byte
		err  error
	)
	switch r.output.Format {
	case "", config.FormatJSON:
		data, err = r.encodeJSON(in)
	case config.FormatYAML:
		data, err = r.encodeYAML(in)
	default:
		return fmt.Errorf("unknown output format %q", r.output.Format)
	}
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write payload: %w", err)
	}
	return nil
}

func (r *Renderer) encodeJSON(in input.ResolvedInput) ([]byte, error) {
	if path, ok := firstInvalidUTF8(map[string]any(in), ""); ok {
		return nil, fmt.Errorf("encode json: %s is not valid UTF-8, use yaml output", path)
	}
	data, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	if r.output.Canonical {
		data, err = jcs.Transform(data)
		if err != nil {
			return nil, fmt.Errorf("canonicalize json: %w", err)
		}
		return append(data, '\n'), nil
	}
	if r.output.Indent > 0 {
		var buf bytes.Buffer
		if err := json.Indent(&buf, data, "", strings.Repeat(" ", r.output.Indent)); err != nil {
			return nil, fmt.Errorf("indent json: %w", err)
		}
		data = buf.Bytes()
	}
	return append(data, '\n'), nil
}

func (r *Renderer) encodeYAML(in input.ResolvedInput) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	indent := r.output.Indent
	if indent <= 0 {
		indent = 2
	}
	enc.SetIndent(indent)
	if err := enc.Encode(yamlValue(map[string]any(in))); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

// yamlNumber keeps the literal text of a JSON number in YAML output.
type yamlNumber json.Number

func (n yamlNumber) MarshalYAML() (any, error) {
	tag := "!!int"
	if _, err := json.Number(n).Int64(); err != nil && strings.ContainsAny(string(n), ".eE") {
		tag = "!!float"
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: string(n)}, nil
}

func yamlValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = yamlValue(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = yamlValue(e)
		}
		return out
	case json.Number:
		return yamlNumber(t)
	default:
		return v
	}
}

func firstInvalidUTF8(v any, path string) (string, bool) {
	switch t := v.(type) {
	case string:
		return path, !utf8.ValidString(t)
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			child := k
			if path != "" {
				child = path + "." + k
			}
			if p, ok := firstInvalidUTF8(t[k], child); ok {
				return p, true
			}
		}
	case []any:
		for i, e := range t {
			if p, ok := firstInvalidUTF8(e, fmt.Sprintf("%s[%d]", path, i)); ok {
				return p, true
			}
		}
	}
	return "", false
}
