package resume

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strconv"
)

//go:embed templates/*
var templateFS embed.FS

var baseTemplate = template.Must(template.New("resume.html").ParseFS(templateFS, "templates/resume.html"))

// styles holds the stylesheet for each template, loaded once.
var styles = func() map[string]template.CSS {
	out := make(map[string]template.CSS, len(Templates))
	for _, name := range Templates {
		b, err := templateFS.ReadFile("templates/" + name + ".css")
		if err != nil {
			panic(fmt.Sprintf("resume: missing stylesheet for %s: %v", name, err))
		}
		out[name] = template.CSS(b)
	}
	return out
}()

type renderView struct {
	Template string
	Style    template.CSS
	Data
}

// Render substitutes data into the named template and returns the HTML document.
// Unknown template names fall back to professional.
// INVARIANT: data is not mutated
func Render(templateName string, data Data) (string, error) {
	name := NormalizeTemplate(templateName)
	var buf bytes.Buffer
	if err := baseTemplate.Execute(&buf, renderView{Template: name, Style: styles[name], Data: data}); err != nil {
		return "", fmt.Errorf("render resume: %w", err)
	}
	return buf.String(), nil
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
