package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/metalagman/droneplug/internal/config"
	"github.com/metalagman/droneplug/pkg/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func samplePayload() input.ResolvedInput {
	return input.ResolvedInput{
		"repo":      map[string]any{"owner": "octocat", "name": "hello-world", "full_name": "octocat/hello-world"},
		"build":     map[string]any{"number": "7", "event": "push", "branch": "main"},
		"workspace": map[string]any{"root": "/drone/src", "path": "/drone/src"},
		"vargs":     map[string]any{"tag": "latest", "note": "a|b"},
	}
}

func TestWrite_JSONRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	r := New(config.Config{Output: config.OutputConfig{Format: config.FormatJSON, Indent: 2}})

	require.NoError(t, r.Write(&buf, samplePayload()))

	var got input.ResolvedInput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, samplePayload(), got)
	assert.Contains(t, buf.String(), "\n  \"build\"")
}

func TestWrite_CanonicalJSON(t *testing.T) {
	var buf bytes.Buffer
	r := New(config.Config{Output: config.OutputConfig{Format: config.FormatJSON, Canonical: true}})

	require.NoError(t, r.Write(&buf, input.ResolvedInput{"b": "2", "a": "1"}))
	assert.Equal(t, "{\"a\":\"1\",\"b\":\"2\"}\n", buf.String())
}

func TestWrite_YAML(t *testing.T) {
	var buf bytes.Buffer
	r := New(config.Config{Output: config.OutputConfig{Format: config.FormatYAML}})

	require.NoError(t, r.Write(&buf, samplePayload()))

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "octocat", got["repo"].(map[string]any)["owner"])
}

func TestWrite_UnknownFormat(t *testing.T) {
	r := New(config.Config{Output: config.OutputConfig{Format: "xml"}})
	assert.Error(t, r.Write(&bytes.Buffer{}, samplePayload()))
}

func TestMarkdown(t *testing.T) {
	md, err := Markdown(input.ChannelEnv, samplePayload())
	require.NoError(t, err)

	assert.Contains(t, md, "Delivered via `env`.")
	assert.Contains(t, md, "| Full name | octocat/hello-world |")
	assert.Contains(t, md, "| Link | - |")
	assert.Contains(t, md, "| note | a\\|b |")
	assert.Less(t, strings.Index(md, "| note |"), strings.Index(md, "| tag |"))
}

func TestDescribe(t *testing.T) {
	var buf bytes.Buffer
	r := New(config.Config{Describe: config.DescribeConfig{Style: "notty"}})

	require.NoError(t, r.Describe(&buf, input.ChannelArgv, samplePayload()))
	assert.Contains(t, buf.String(), "octocat/hello-world")
}

func TestWrite_YAMLKeepsNumberText(t *testing.T) {
	in, err := input.Decode(input.RawPayload(`{"build":{"number":12345678901234567891},"ratio":0.5}`))
	require.NoError(t, err)

	var buf bytes.Buffer
	r := New(config.Config{Output: config.OutputConfig{Format: config.FormatYAML}})
	require.NoError(t, r.Write(&buf, in))

	assert.Contains(t, buf.String(), "number: 12345678901234567891\n")
	assert.Contains(t, buf.String(), "ratio: 0.5\n")
}

func TestWrite_JSONRejectsInvalidUTF8(t *testing.T) {
	r := New(config.Config{Output: config.OutputConfig{Format: config.FormatJSON}})

	err := r.Write(&bytes.Buffer{}, input.ResolvedInput{"vargs": map[string]any{"token": "a\xffb"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "vargs.token")
}

func TestWrite_YAMLKeepsInvalidUTF8(t *testing.T) {
	var buf bytes.Buffer
	r := New(config.Config{Output: config.OutputConfig{Format: config.FormatYAML}})
	require.NoError(t, r.Write(&buf, input.ResolvedInput{"token": "a\xffb"}))

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "a\xffb", got["token"])
}
