package export

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
)

//go:embed template.html
var pageTemplate string

var page = template.Must(template.New("page").Parse(pageTemplate))

// HTML renders the payload as a self-contained page with an embedded
// force-layout canvas. The JSON payload is inlined into a script tag.
func HTML(p Payload) ([]byte, error) {
	data, err := JSON(p)
	if err != nil {
		return nil, fmt.Errorf("encoding payload: %w", err)
	}
	var buf bytes.Buffer
	err = page.Execute(&buf, map[string]any{
		"Payload": template.JS(data),
		"Nodes":   p.Stats.Nodes,
		"Edges":   p.Stats.Edges,
	})
	if err != nil {
		return nil, fmt.Errorf("rendering page: %w", err)
	}
	return buf.Bytes(), nil
}
