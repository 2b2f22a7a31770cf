package split

import (
	"bytes"
	"fmt"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"stylesplit/config"
	"stylesplit/mozdoc"
)

const (
	kindGlobal = "global"
	kindScoped = "scoped"
)

type RuleValue struct {
	Type  string
	Value string
}

// Values is a struct that holds variables we make available for template expansion
type Values struct {
	Context string
	Source  string
	Index   int
	Kind    string
	Rules   []RuleValue
	Format  string
}

func sectionKind(s mozdoc.Section) string {
	if _, ok := s.(mozdoc.Scoped); ok {
		return kindScoped
	}
	return kindGlobal
}

func buildRules(s mozdoc.Section) []RuleValue {
	scoped, ok := s.(mozdoc.Scoped)
	if !ok {
		return nil
	}
	result := make([]RuleValue, 0, len(scoped.Rules))
	for _, r := range scoped.Rules {
		result = append(result, RuleValue{Type: r.Type.String(), Value: r.Value})
	}
	return result
}

func expandTemplate(name config.TemplateFieldName, field string, values Values) (string, error) {
	tmpl, err := template.New(string(name)).Funcs(sprig.FuncMap()).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	values.Context = string(name)

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}
