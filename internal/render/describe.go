package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/metalagman/droneplug/pkg/input"
)

// Markdown summarizes a resolved payload as a markdown document.
func Markdown(channel string, in input.ResolvedInput) (string, error) {
	p, err := in.Payload()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Plugin input\n\nDelivered via `%s`.\n\n", channel)

	b.WriteString("## Repository\n\n")
	writeRows(&b, [][2]string{
		{"Owner", p.Repo.Owner},
		{"Name", p.Repo.Name},
		{"Full name", p.Repo.FullName},
		{"Link", p.Repo.LinkURL},
		{"Clone URL", p.Repo.CloneURL},
	})

	b.WriteString("## Build\n\n")
	writeRows(&b, [][2]string{
		{"Number", p.Build.Number},
		{"Event", p.Build.Event},
		{"Branch", p.Build.Branch},
		{"Commit", p.Build.Commit},
		{"Ref", p.Build.Ref},
		{"Author", p.Build.Author},
		{"Author email", p.Build.AuthorEmail},
	})

	b.WriteString("## Workspace\n\n")
	writeRows(&b, [][2]string{
		{"Root", p.Workspace.Root},
		{"Path", p.Workspace.Path},
	})

	b.WriteString("## Parameters\n\n")
	if len(p.Vargs) == 0 {
		b.WriteString("_none_\n")
		return b.String(), nil
	}
	keys := make([]string, 0, len(p.Vargs))
	for k := range p.Vargs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	rows := make([][2]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, [2]string{k, fmt.Sprint(p.Vargs[k])})
	}
	writeRows(&b, rows)
	return b.String(), nil
}

func writeRows(b *strings.Builder, rows [][2]string) {
	b.WriteString("| Field | Value |\n| --- | --- |\n")
	for _, row := range rows {
		value := strings.ReplaceAll(row[1], "|", "\\|")
		if value == "" {
			value = "-"
		}
		fmt.Fprintf(b, "| %s | %s |\n", row[0], value)
	}
	b.WriteString("\n")
}

// Describe writes a terminal rendering of the payload summary to w.
func (r *Renderer) Describe(w io.Writer, channel string, in input.ResolvedInput) error {
	md, err := Markdown(channel, in)
	if err != nil {
		return err
	}
	style := r.style
	if style == "" {
		style = "notty"
	}
	out, err := glamour.Render(md, style)
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	if _, err := io.WriteString(w, out); err != nil {
		return fmt.Errorf("write description: %w", err)
	}
	return nil
}
