package generator

import "text/template"

const accessorTmpl = `{{.Header}}

package {{.Package}}

import (
{{- range .Imports}}
	{{.}}
{{- end}}
)

// ErrorCode returns the machine-readable error code of e, the name of its constant.
func (e {{.Type}}) ErrorCode() string {
	switch e {
{{- range .Variants}}
	case {{.Name}}:
		return {{.Code}}
{{- end}}
	}
	return fmt.Sprintf("{{.Type}}({{.Verb}})", {{.Underlying}}(e))
}

// HTTPStatus returns the HTTP status code declared for e.
func (e {{.Type}}) HTTPStatus() int {
	switch e {
{{- range .Variants}}
	case {{.Name}}:
		return {{.Status}}
{{- end}}
	}
	return {{.FallbackStatus}}
}

// Message returns the human-readable message declared for e.
func (e {{.Type}}) Message() string {
	switch e {
{{- range .Variants}}
	case {{.Name}}:
		return {{.Message}}
{{- end}}
	}
	return {{.FallbackMessage}}
}
{{- if .ErrorMethod}}

// Error implements the error interface by returning e.Message().
func (e {{.Type}}) Error() string {
	return e.Message()
}
{{- end}}
`

var accessorTemplate = template.Must(template.New("accessors").Parse(accessorTmpl))

type fileData struct {
	Header          string
	Package         string
	Imports         []string
	Type            string
	Underlying      string
	Verb            string
	FallbackStatus  int
	FallbackMessage string
	ErrorMethod     bool
	Variants        []variantData
}

type variantData struct {
	Name    string
	Code    string
	Status  string
	Message string
}
