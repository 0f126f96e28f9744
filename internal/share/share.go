// Package share renders experiences for sharing outside curate: a Markdown
// itinerary, and an HTML page produced from it.
package share

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/mesh-intelligence/curate/pkg/types"
)

const itineraryTemplate = `# {{ md .DisplayTitle }}

_{{ md .DisplayDate }} · starting {{ startsAt . }}_
{{ with .Description }}
{{ md . }}
{{ end }}
{{ range $i, $stop := .Itinerary -}}
{{ inc $i }}. **{{ $stop.At }}** · {{ link $stop.Place }} ({{ md $stop.Place.Category }})
{{- with $stop.Place.Address }}
   {{ md . }}
{{- end }}
{{ end }}`

var itinerary = template.Must(template.New("itinerary").Funcs(template.FuncMap{
	"md":       escapeMarkdown,
	"inc":      func(i int) int { return i + 1 },
	"startsAt": func(e *types.Experience) string { return types.FormatHour(e.StartHour()) },
	"link": func(p types.Place) string {
		if !strings.HasPrefix(p.Website, "https://") && !strings.HasPrefix(p.Website, "http://") {
			return escapeMarkdown(p.Name)
		}
		return fmt.Sprintf("[%s](%s)", escapeMarkdown(p.Name), p.Website)
	},
}).Parse(itineraryTemplate))

var markdown = goldmark.New(goldmark.WithExtensions(extension.Linkify, extension.Typographer))

// Markdown renders e as a numbered itinerary.
func Markdown(e *types.Experience) (string, error) {
	var buf bytes.Buffer
	if err := itinerary.Execute(&buf, e); err != nil {
		return "", fmt.Errorf("render itinerary: %w", err)
	}
	return buf.String(), nil
}

// HTML renders e as an HTML fragment. Titles and descriptions come from
// users and catalog files, so the output is passed through a UGC policy.
func HTML(e *types.Experience) (string, error) {
	src, err := Markdown(e)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return string(htmlPolicy().SanitizeBytes(buf.Bytes())), nil
}

func htmlPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.RequireNoFollowOnLinks(true)
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	return policy
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "*", `\*`, "_", `\_`, "`", "\\`",
	"[", `\[`, "]", `\]`, "<", `\<`, ">", `\>`, "#", `\#`,
)

// escapeMarkdown keeps free text from being read as Markdown syntax.
func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
