package project

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// templateFuncMap returns the function map available to skeleton templates.
func templateFuncMap() template.FuncMap {
	return sprig.TxtFuncMap()
}

// Render specializes the named skeleton file with the given context.
// The context must supply every key the template dereferences; missing
// keys are an error, never silently dropped.
func Render(name string, context map[string]any) (string, error) {
	file, ok := Lookup(name)
	if !ok {
		return "", fmt.Errorf("unknown skeleton file: %s", name)
	}
	if file.Kind != KindRender {
		return "", fmt.Errorf("skeleton file %s is not a template", name)
	}
	tmpl, err := template.New(name).
		Funcs(templateFuncMap()).
		Option("missingkey=error").
		Parse(file.Content)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	var buf strings.Builder
	if err := tmpl.Execute(&buf, context); err != nil {
		return "", fmt.Errorf("failed to render template %s: %w", name, err)
	}
	return buf.String(), nil
}
