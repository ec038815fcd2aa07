package input

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"sort"
	"strings"
	"unicode/utf8"
)

// Channel names.
const (
	ChannelArgv  = "argv"
	ChannelEnv   = "env"
	ChannelStdin = "stdin"
)

const (
	// ArgsDelimiter separates plugin arguments from the payload in argv.
	ArgsDelimiter = "--"
	// MarkerKey signals that the payload is delivered through the environment.
	MarkerKey = "DRONE_REPO_OWNER"
	// VargsPrefix marks environment keys that carry user parameters.
	VargsPrefix = "PLUGIN_"
)

// StructuredChannel is implemented by channels that build the payload object
// themselves instead of handing back serialized text.
type StructuredChannel interface {
	Channel
	ExtractInput(src Source) (ResolvedInput, error)
}

// RawPayload is a serialized JSON document produced by a channel.
type RawPayload []byte

// Source is everything a channel may read from during one resolution.
type Source struct {
	Args  []string
	Env   Environment
	Stdin io.Reader
}

// Channel is one mechanism by which the host delivers the payload.
type Channel interface {
	Name() string
	// Active reports whether this channel is the one the host used.
	Active(src Source) bool
	Extract(src Source) (RawPayload, error)
}

// ArgvChannel reads the payload from arguments following "--".
type ArgvChannel struct{}

func (ArgvChannel) Name() string { return ChannelArgv }

func (ArgvChannel) Active(src Source) bool {
	return slices.Contains(src.Args, ArgsDelimiter)
}

// Extract joins everything after the first delimiter with single spaces, so a
// JSON object word-split by the shell is put back together.
func (ArgvChannel) Extract(src Source) (RawPayload, error) {
	idx := slices.Index(src.Args, ArgsDelimiter)
	if idx < 0 {
		return nil, fmt.Errorf("%w: no %q delimiter in arguments", ErrInputNotFound, ArgsDelimiter)
	}
	params := src.Args[idx+1:]
	if len(params) == 0 {
		return nil, fmt.Errorf("%w: a JSON payload was expected after the %s delimiter", ErrInputNotFound, ArgsDelimiter)
	}
	return RawPayload(strings.Join(params, " ")), nil
}

// StdinChannel reads the whole stream. Used for local development.
type StdinChannel struct{}

func (StdinChannel) Name() string { return ChannelStdin }

func (StdinChannel) Active(Source) bool { return true }

func (StdinChannel) Extract(src Source) (RawPayload, error) {
	if src.Stdin == nil {
		return nil, fmt.Errorf("%w: no payload in argv or stdin", ErrInputNotFound)
	}
	data, err := io.ReadAll(src.Stdin)
	if err != nil {
		return nil, fmt.Errorf("%w: read stdin: %w", ErrInputNotFound, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: no payload in argv or stdin", ErrInputNotFound)
	}
	return RawPayload(data), nil
}

// EnvChannel rebuilds the payload from DRONE_* and PLUGIN_* variables.
type EnvChannel struct{}

func (EnvChannel) Name() string { return ChannelEnv }

func (EnvChannel) Active(src Source) bool {
	_, ok := src.Env.Lookup(MarkerKey)
	return ok
}

// ExtractInput builds the payload object straight from the snapshot, so
// values reach the caller byte for byte.
func (EnvChannel) ExtractInput(src Source) (ResolvedInput, error) {
	p, err := PayloadFromEnvironment(src.Env)
	if err != nil {
		return nil, err
	}
	return p.Input(), nil
}

// Extract serializes the environment payload. JSON cannot carry invalid
// UTF-8, so such values are rejected rather than replaced.
func (EnvChannel) Extract(src Source) (RawPayload, error) {
	p, err := PayloadFromEnvironment(src.Env)
	if err != nil {
		return nil, err
	}
	if path, ok := invalidUTF8(p.Input()); ok {
		return nil, fmt.Errorf("%w: %s is not valid UTF-8", ErrMalformedInput, path)
	}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode environment payload: %w", err)
	}
	return RawPayload(data), nil
}

// PayloadFromEnvironment maps the fixed DRONE_* keys and every PLUGIN_* key of
// env onto a Payload. All fixed keys are required.
func PayloadFromEnvironment(env Environment) (Payload, error) {
	var missing []string
	get := func(key string) string {
		v, ok := env.Lookup(key)
		if !ok {
			missing = append(missing, key)
		}
		return v
	}

	workspace := get("DRONE_WORKSPACE")
	p := Payload{
		Repo: Repo{
			Owner:    get("DRONE_REPO_OWNER"),
			Name:     get("DRONE_REPO_NAME"),
			FullName: get("DRONE_REPO"),
			LinkURL:  get("DRONE_REPO_LINK"),
			CloneURL: get("DRONE_REMOTE_URL"),
		},
		Build: Build{
			Number:      get("DRONE_BUILD_NUMBER"),
			Event:       get("DRONE_BUILD_EVENT"),
			Branch:      get("DRONE_BRANCH"),
			Commit:      get("DRONE_COMMIT"),
			Ref:         get("DRONE_COMMIT_REF"),
			Author:      get("DRONE_COMMIT_AUTHOR"),
			AuthorEmail: get("DRONE_COMMIT_AUTHOR_EMAIL"),
		},
		Workspace: Workspace{
			Root: workspace,
			Path: workspace,
		},
		Vargs: vargsFromEnvironment(env),
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return Payload{}, fmt.Errorf("%w: environment variables misconfigured, missing %s",
			ErrMalformedInput, strings.Join(missing, ", "))
	}
	return p, nil
}

func vargsFromEnvironment(env Environment) map[string]any {
	vargs := make(map[string]any)
	for key, value := range env {
		if !strings.HasPrefix(key, VargsPrefix) {
			continue
		}
		vargs[strings.ToLower(key[len(VargsPrefix):])] = value
	}
	return vargs
}

// invalidUTF8 returns the dotted path of the first value in in that is not
// valid UTF-8.
func invalidUTF8(in ResolvedInput) (string, bool) {
	paths := make([]string, 0)
	for section, fields := range in {
		m, ok := fields.(map[string]any)
		if !ok {
			continue
		}
		for field, value := range m {
			if v, ok := value.(string); ok && !utf8.ValidString(v) {
				paths = append(paths, section+"."+field)
			}
		}
	}
	if len(paths) == 0 {
		return "", false
	}
	sort.Strings(paths)
	return paths[0], true
}
