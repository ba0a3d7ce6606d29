// Package sig holds the function signature table the lowering pass
// populates in its declare sub-pass and consults while emitting call
// sites, per spec.md §4.5.
package sig

import (
	"fmt"

	"github.com/malphas-lang/malphas-lang/internal/types"
)

// Parameter is one declared function argument's name and type.
type Parameter struct {
	Name string
	Type types.Type
}

// Signature is a function's declared shape: its ordered parameters and
// return type. ReturnType is the zero Type (types.Boolean) combined with
// Void=true for a function declared with no `-> type` clause.
type Signature struct {
	Name       string
	Parameters []Parameter
	ReturnType types.Type
	Void       bool
}

// Table maps function names to their declared Signature. It is built in
// full before any function body is lowered, so forward references and
// mutual recursion resolve without a second pass over the AST.
type Table struct {
	functions map[string]*Signature
}

// NewTable constructs an empty signature table.
func NewTable() *Table {
	return &Table{functions: make(map[string]*Signature)}
}

// Declare registers sig, returning an error if a function of that name is
// already declared.
func (t *Table) Declare(s *Signature) error {
	if _, exists := t.functions[s.Name]; exists {
		return fmt.Errorf("function %q declared more than once", s.Name)
	}
	t.functions[s.Name] = s
	return nil
}

// Lookup returns the Signature for name, if declared.
func (t *Table) Lookup(name string) (*Signature, bool) {
	s, ok := t.functions[name]
	return s, ok
}
