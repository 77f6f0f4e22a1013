// Package meta holds the descriptors shared between the scanner and the
// accessor generator.
package meta

import (
	"go/token"

	"github.com/Alia5/httperrgen/internal/codegen/annotation"
)

// Enum describes one enumerated type found in a Go package.
// Built once per generation pass; the generator never modifies it.
type Enum struct {
	Package    string         // package clause of the scanned directory
	Name       string         // type name, e.g. "AppError"
	Underlying string         // underlying basic type, e.g. "int" or "string"
	Pos        token.Position // declaration of the type
	Variants   []Variant      // constants of the type, in declaration order
	Imports    []Import       // imports of the files declaring the variants
}

// Variant is one named constant of an Enum.
type Variant struct {
	Name        string
	Pos         token.Position
	Annotations []annotation.Block // every //httperr: directive attached to the constant
}

// Import is an import spec visible to variant declarations.
type Import struct {
	Name string // explicit name, empty when the package name is implied
	Path string
}

// Spec renders the import the way it appears in an import block.
func (i Import) Spec() string {
	if i.Name != "" {
		return i.Name + " " + `"` + i.Path + `"`
	}
	return `"` + i.Path + `"`
}

// Variant returns the variant with the given name, or nil.
func (e *Enum) Variant(name string) *Variant {
	for i := range e.Variants {
		if e.Variants[i].Name == name {
			return &e.Variants[i]
		}
	}
	return nil
}
