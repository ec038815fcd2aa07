package input

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// ResolvedInput is the deserialized payload object.
type ResolvedInput map[string]any

// Payload is the typed view of a Drone plugin payload.
type Payload struct {
	Repo      Repo           `json:"repo"      mapstructure:"repo"`
	Build     Build          `json:"build"     mapstructure:"build"`
	Workspace Workspace      `json:"workspace" mapstructure:"workspace"`
	Vargs     map[string]any `json:"vargs"     mapstructure:"vargs"`
}

// Repo describes the repository being built.
type Repo struct {
	Owner    string `json:"owner"     mapstructure:"owner"`
	Name     string `json:"name"      mapstructure:"name"`
	FullName string `json:"full_name" mapstructure:"full_name"`
	LinkURL  string `json:"link_url"  mapstructure:"link_url"`
	CloneURL string `json:"clone_url" mapstructure:"clone_url"`
}

// Build describes the build that triggered the plugin.
type Build struct {
	Number      string `json:"number"       mapstructure:"number"`
	Event       string `json:"event"        mapstructure:"event"`
	Branch      string `json:"branch"       mapstructure:"branch"`
	Commit      string `json:"commit"       mapstructure:"commit"`
	Ref         string `json:"ref"          mapstructure:"ref"`
	Author      string `json:"author"       mapstructure:"author"`
	AuthorEmail string `json:"author_email" mapstructure:"author_email"`
}

// Workspace describes where the repository is checked out.
type Workspace struct {
	Root string `json:"root" mapstructure:"root"`
	Path string `json:"path" mapstructure:"path"`
}

// Input returns p as a payload object. Values are carried over unchanged.
func (p Payload) Input() ResolvedInput {
	vargs := make(map[string]any, len(p.Vargs))
	for k, v := range p.Vargs {
		vargs[k] = v
	}
	return ResolvedInput{
		"repo": map[string]any{
			"owner":     p.Repo.Owner,
			"name":      p.Repo.Name,
			"full_name": p.Repo.FullName,
			"link_url":  p.Repo.LinkURL,
			"clone_url": p.Repo.CloneURL,
		},
		"build": map[string]any{
			"number":       p.Build.Number,
			"event":        p.Build.Event,
			"branch":       p.Build.Branch,
			"commit":       p.Build.Commit,
			"ref":          p.Build.Ref,
			"author":       p.Build.Author,
			"author_email": p.Build.AuthorEmail,
		},
		"workspace": map[string]any{
			"root": p.Workspace.Root,
			"path": p.Workspace.Path,
		},
		"vargs": vargs,
	}
}

// Payload decodes in into the typed view. Scalars are weakly converted so
// argv payloads carrying numeric build numbers still decode.
func (in ResolvedInput) Payload() (Payload, error) {
	var p Payload
	if err := decode(map[string]any(in), &p); err != nil {
		return Payload{}, fmt.Errorf("%w: %w", ErrMalformedInput, err)
	}
	return p, nil
}

// DecodeVargs decodes the vargs object into target, typically a plugin
// settings struct with mapstructure tags.
func (in ResolvedInput) DecodeVargs(target any) error {
	raw, ok := in["vargs"]
	if !ok || raw == nil {
		return nil
	}
	if err := decode(raw, target); err != nil {
		return fmt.Errorf("decode vargs: %w", err)
	}
	return nil
}

func decode(src, target any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           target,
		TagName:          "mapstructure",
		DecodeHook:       mapstructure.StringToSliceHookFunc(","),
	})
	if err != nil {
		return err
	}
	return dec.Decode(src)
}
