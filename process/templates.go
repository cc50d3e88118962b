package process

import (
	"bytes"
	"fmt"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"cssmin/config"
)

// NameValues are available to output.name_template.
type NameValues struct {
	Context string
	// Dir is the slash separated directory of the source relative to the
	// processed root, "." for the root itself.
	Dir    string
	Base   string
	Ext    string
	Source string
	Mode   string
}

// DeclarationValues are available to output.declaration_template, one
// expansion per written declaration.
type DeclarationValues struct {
	Context   string
	Name      string
	Value     string
	Important bool
	Prefix    string
}

func parseTemplate(name config.TemplateFieldName, field string) (*template.Template, error) {
	tmpl, err := template.New(string(name)).Funcs(sprig.FuncMap()).Parse(field)
	if err != nil {
		return nil, fmt.Errorf("unable to parse template field %s: %w", name, err)
	}
	return tmpl, nil
}

func expandTemplate(tmpl *template.Template, values any) (string, error) {
	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}
