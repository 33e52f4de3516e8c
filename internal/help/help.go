// Package help renders the documentation returned for a "?" command.
package help

import (
	"embed"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/roach88/sqlfrag/internal/command"
	"github.com/roach88/sqlfrag/internal/transform"
)

//go:embed topics/*.md
var topicFS embed.FS

// Renderer returns markdown help text. The zero value is ready to use.
type Renderer struct{}

// Topics lists the available topic names in sorted order.
func Topics() []string {
	entries, err := topicFS.ReadDir("topics")
	if err != nil {
		return nil
	}
	names := []string{"commands"}
	for _, e := range entries {
		name := strings.TrimSuffix(e.Name(), ".md")
		if name != "index" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Render returns the topics named by args, in order, separated by a blank
// line. No args yields the index; an unknown topic yields a notice and the
// index.
func Render(args []string) string {
	if len(args) == 0 {
		return read("index")
	}

	var parts []string
	for _, arg := range args {
		topic := command.Fold(strings.TrimSpace(arg))
		text := read(topic)
		if text == "" {
			text = fmt.Sprintf("no help for %q\n\n", arg) + read("index")
		}
		parts = append(parts, strings.TrimRight(text, "\n"))
	}
	return strings.Join(parts, "\n\n") + "\n"
}

// Render implements the compiler's help hook.
func (Renderer) Render(args []string) string {
	return Render(args)
}

// Pretty renders markdown for a terminal of the given width.
func Pretty(markdown string, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}
	out, err := r.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}

func read(topic string) string {
	if topic == "commands" {
		return commandsTopic()
	}
	if strings.ContainsAny(topic, "/\\.") {
		return ""
	}
	data, err := topicFS.ReadFile("topics/" + topic + ".md")
	if err != nil {
		return ""
	}
	return string(data)
}

// commandsTopic is built from the transformer registry.
func commandsTopic() string {
	var b strings.Builder
	b.WriteString("# Commands\n\n")
	b.WriteString("Arguments are a chain of commands applied left to right. Words that\n")
	b.WriteString("are not commands are appended as is.\n\n")
	b.WriteString("| command | result |\n|---|---|\n")
	for _, c := range transform.Commands() {
		fmt.Fprintf(&b, "| `%s` | `%s` |\n", c.Usage, c.Summary)
	}
	b.WriteString("\nWhen the arguments contain `_` they form a template instead and every\n")
	b.WriteString("`_` is replaced by the value:\n\n")
	b.WriteString("    sqlfrag compile --ref Orders::Total f SUM ( _ )\n")
	b.WriteString("    SUM(orders.total)\n")
	return b.String()
}
