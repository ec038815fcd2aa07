// Package input finds and decodes the payload a CI host hands to a plugin.
//
// Three channels are checked in a fixed order: arguments after "--", the
// legacy DRONE_* environment, and finally stdin. Exactly one channel is used
// per resolution; channels are never merged.
package input

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Result is the outcome of one resolution. Raw is nil for channels that
// build the payload object directly.
type Result struct {
	Channel string
	Raw     RawPayload
	Input   ResolvedInput
}

// Resolver selects a channel and decodes its payload.
type Resolver struct {
	channels []Channel
	logger   zerolog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithChannels replaces the ordered channel list.
func WithChannels(channels ...Channel) Option {
	return func(r *Resolver) {
		r.channels = channels
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// DefaultChannels returns the channels in priority order.
func DefaultChannels() []Channel {
	return []Channel{ArgvChannel{}, EnvChannel{}, StdinChannel{}}
}

// NewResolver creates a Resolver using DefaultChannels unless overridden.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		channels: DefaultChannels(),
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Select returns the first active channel for src, or nil.
func (r *Resolver) Select(src Source) Channel {
	for _, ch := range r.channels {
		if ch.Active(src) {
			return ch
		}
	}
	return nil
}

// Resolve extracts and decodes the payload from whichever channel is active.
func (r *Resolver) Resolve(argv []string, env Environment, stdin io.Reader) (ResolvedInput, error) {
	res, err := r.ResolveSource(Source{Args: argv, Env: env, Stdin: stdin})
	if err != nil {
		return nil, err
	}
	return res.Input, nil
}

// ResolveSource is like Resolve but also reports the channel and raw payload.
func (r *Resolver) ResolveSource(src Source) (*Result, error) {
	ch := r.Select(src)
	if ch == nil {
		return nil, fmt.Errorf("%w: no input channel is active", ErrInputNotFound)
	}
	r.logger.Debug().Str("channel", ch.Name()).Msg("input channel selected")

	var (
		raw RawPayload
		in  ResolvedInput
		err error
	)
	if sc, ok := ch.(StructuredChannel); ok {
		in, err = sc.ExtractInput(src)
	} else {
		raw, err = ch.Extract(src)
		if err == nil {
			in, err = Decode(raw)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%s channel: %w", ch.Name(), err)
	}
	r.logger.Debug().Str("channel", ch.Name()).Int("bytes", len(raw)).Int("keys", len(in)).Msg("input resolved")

	return &Result{Channel: ch.Name(), Raw: raw, Input: in}, nil
}

// Decode parses raw as a single JSON object. Numbers are kept as json.Number
// so their text survives unchanged.
func Decode(raw RawPayload) (ResolvedInput, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var in ResolvedInput
	if err := dec.Decode(&in); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedInput, err)
	}
	if in == nil {
		return nil, fmt.Errorf("%w: payload is not a JSON object", ErrMalformedInput)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: unexpected data after the payload object", ErrMalformedInput)
	}
	return in, nil
}

// Get resolves the payload of the running process.
func Get() (ResolvedInput, error) {
	return NewResolver().Resolve(os.Args, ProcessEnvironment(), os.Stdin)
}
