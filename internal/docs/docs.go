// Package docs embeds the help pages shown by `taskdeck docs` and the TUI
// help overlay.
package docs

import (
	"embed"
	"sort"
	"strings"
)

//go:embed content/*.md
var pages embed.FS

// Topic is one embedded help page, listed by name with its page title.
type Topic struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

// Topics lists the embedded pages sorted by name.
func Topics() []Topic {
	entries, err := pages.ReadDir("content")
	if err != nil {
		return nil
	}
	var out []Topic
	for _, e := range entries {
		name := strings.TrimSuffix(e.Name(), ".md")
		body, ok := Get(name)
		if !ok {
			continue
		}
		out = append(out, Topic{Name: name, Title: pageTitle(body, name)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Get returns the raw markdown for a topic name (case-insensitive).
func Get(name string) (string, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return "", false
	}
	b, err := pages.ReadFile("content/" + name + ".md")
	if err != nil {
		return "", false
	}
	return string(b), true
}

// pageTitle is the page's first markdown heading, falling back to the topic
// name for pages without one.
func pageTitle(body, fallback string) string {
	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(line, "#") {
			if t := strings.TrimSpace(strings.TrimLeft(line, "#")); t != "" {
				return t
			}
		}
	}
	return fallback
}
