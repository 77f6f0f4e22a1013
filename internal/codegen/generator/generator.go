// Package generator emits ErrorCode, HTTPStatus and Message accessors for
// enums whose constants carry //httperr:detail annotations.
package generator

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Alia5/httperrgen/internal/codegen/annotation"
	"github.com/Alia5/httperrgen/internal/codegen/manifest"
	"github.com/Alia5/httperrgen/internal/codegen/meta"
	"github.com/Alia5/httperrgen/internal/codegen/scanner"
	"golang.org/x/tools/imports"
)

// DefaultHeader marks generated files so tools treat them as generated.
const DefaultHeader = "// Code generated by httperrgen; DO NOT EDIT."

// Options tune the generated output.
type Options struct {
	Header      string // first line of the file, DefaultHeader when empty
	ErrorMethod bool   // also emit Error() string
}

// Generator renders accessor files
type Generator struct {
	logger *slog.Logger
	opts   Options
}

// Result is the rendered file for one type.
type Result struct {
	Type   string
	Path   string
	Source []byte
}

// New creates a new Generator instance
func New(logger *slog.Logger, opts Options) *Generator {
	if opts.Header == "" {
		opts.Header = DefaultHeader
	}
	return &Generator{
		logger: logger,
		opts:   opts,
	}
}

// FileName returns the default output file name for typeName.
func FileName(typeName string) string {
	return strings.ToLower(typeName) + "_httperr.go"
}

// GenerateTypes renders every requested type of the package in dir. The
// manifest may be nil. Nothing is returned unless every type succeeds.
func (g *Generator) GenerateTypes(dir string, types []string, m *manifest.Manifest) ([]Result, error) {
	g.logger.Debug("Scanning package", "dir", dir)
	pkg, err := scanner.LoadPackage(dir)
	if err != nil {
		return nil, err
	}
	if m != nil {
		if err := m.CheckTypes(pkg.HasType); err != nil {
			return nil, err
		}
	}

	results := make([]Result, 0, len(types))
	for _, typeName := range types {
		enum, err := pkg.Enum(typeName)
		if err != nil {
			return nil, err
		}
		g.logger.Debug("Found enum", "type", enum.Name, "variants", len(enum.Variants))

		if m != nil {
			if err := m.Apply(enum); err != nil {
				return nil, err
			}
		}

		src, err := g.Generate(enum)
		if err != nil {
			return nil, err
		}
		results = append(results, Result{
			Type:   typeName,
			Path:   filepath.Join(dir, FileName(typeName)),
			Source: src,
		})
	}
	return results, nil
}

// Generate renders the accessor file for enum. Generation fails as a whole
// when any variant lacks a complete detail annotation.
func (g *Generator) Generate(enum *meta.Enum) ([]byte, error) {
	if enum == nil || len(enum.Variants) == 0 {
		name := ""
		if enum != nil {
			name = enum.Name
		}
		return nil, &meta.ShapeError{Type: name, Kind: "type without constants", Reason: "no variants to generate"}
	}

	variants, err := g.resolve(enum)
	if err != nil {
		return nil, err
	}

	data := fileData{
		Header:          g.opts.Header,
		Package:         enum.Package,
		Imports:         importSpecs(enum.Imports),
		Type:            enum.Name,
		Underlying:      enum.Underlying,
		Verb:            "%d",
		FallbackStatus:  http.StatusInternalServerError,
		FallbackMessage: strconv.Quote("unknown " + enum.Name),
		ErrorMethod:     g.opts.ErrorMethod,
		Variants:        variants,
	}
	if enum.Underlying == "string" {
		data.Verb = "%q"
	}

	var buf bytes.Buffer
	if err := accessorTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("exec accessor tmpl: %w", err)
	}

	filename := FileName(enum.Name)
	if enum.Pos.Filename != "" {
		filename = filepath.Join(filepath.Dir(enum.Pos.Filename), filename)
	}
	out, err := imports.Process(filename, buf.Bytes(), &imports.Options{
		Comments:  true,
		TabIndent: true,
		TabWidth:  8,
	})
	if err != nil {
		// Only possible when a detail value does not fit its position,
		// e.g. a statement-like expression.
		return nil, fmt.Errorf("format generated source for %s: %w", enum.Name, err)
	}

	g.logger.Info("Generated accessors", "type", enum.Name, "variants", len(variants))
	return out, nil
}

// resolve extracts the detail set of every variant. All variant errors are
// reported together.
func (g *Generator) resolve(enum *meta.Enum) ([]variantData, error) {
	var (
		variants []variantData
		errs     []error
	)
	for _, v := range enum.Variants {
		set, err := annotation.Extract(v.Annotations)
		if err != nil {
			errs = append(errs, meta.NewSyntaxError(enum.Name+"."+v.Name, err))
			continue
		}
		if missing := set.Missing(); len(missing) > 0 {
			errs = append(errs, &meta.MissingAnnotationError{
				Type:    enum.Name,
				Variant: v.Name,
				Keys:    missing,
				Pos:     v.Pos,
			})
			continue
		}

		g.logger.Debug("Resolved detail",
			"type", enum.Name,
			"variant", v.Name,
			"status", set[annotation.KeyStatus],
			"message", set[annotation.KeyMessage])

		variants = append(variants, variantData{
			Name:    v.Name,
			Code:    strconv.Quote(v.Name),
			Status:  set[annotation.KeyStatus].String(),
			Message: set[annotation.KeyMessage].String(),
		})
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return variants, nil
}

// importSpecs adds fmt for the fallback error code. Unused imports are
// pruned after formatting.
func importSpecs(imps []meta.Import) []string {
	specs := make([]string, 0, len(imps)+1)
	hasFmt := false
	for _, imp := range imps {
		if imp.Path == "fmt" && imp.Name == "" {
			hasFmt = true
		}
		specs = append(specs, imp.Spec())
	}
	if !hasFmt {
		specs = append([]string{`"fmt"`}, specs...)
	}
	return specs
}
