// Package lower implements the two-sub-pass lowering visitor: sub-pass 1
// declares every function's signature, sub-pass 2 walks each body and
// emits SSA IR through internal/irgen, per spec.md §4.5.
package lower

import (
	"github.com/sirupsen/logrus"

	"github.com/malphas-lang/malphas-lang/internal/ast"
	"github.com/malphas-lang/malphas-lang/internal/irgen"
	"github.com/malphas-lang/malphas-lang/internal/sig"
	"github.com/malphas-lang/malphas-lang/internal/types"
)

// New lowers a parsed file into a complete IR module named moduleName.
// constants is the embedder-provided named-constant table SPEC_FULL.md §6
// recovers from original_source/crates/compiler/src/lib.rs's `constants:
// HashMap<&str, Value>`: bare identifiers that resolve to nothing in a
// function's environment chain fall back to it before UnknownName is
// raised. A nil map disables the feature entirely.
func New(file *ast.File, moduleName string, constants map[string]irgen.Constant) (*irgen.Module, error) {
	log := logrus.WithField("module", moduleName)

	table := sig.NewTable()
	signatures := make(map[*ast.Function]*sig.Signature, len(file.Functions))

	log.Debug("declare sub-pass: registering function signatures")
	for _, fn := range file.Functions {
		s, err := declareSignature(fn)
		if err != nil {
			return nil, err
		}
		if declErr := table.Declare(s); declErr != nil {
			return nil, newError(ErrInvalidFunctionBody, fn.Span(), "%s", declErr)
		}
		signatures[fn] = s
	}

	module := irgen.NewModule(moduleName)
	log.Debug("emit sub-pass: lowering function bodies")
	for _, fn := range file.Functions {
		if err := lowerFunction(fn, signatures[fn], table, module, constants); err != nil {
			return nil, err
		}
	}
	return module, nil
}

func declareSignature(fn *ast.Function) (*sig.Signature, error) {
	params := make([]sig.Parameter, 0, len(fn.Arguments))
	for _, arg := range fn.Arguments {
		t, err := types.Lookup(arg.Type)
		if err != nil {
			return nil, newError(ErrTypeMismatch, fn.Span(), "function %q: parameter %q: %s", fn.Name, arg.Name, err)
		}
		params = append(params, sig.Parameter{Name: arg.Name, Type: t})
	}

	if fn.ReturnType == "" {
		return &sig.Signature{Name: fn.Name, Parameters: params, Void: true}, nil
	}
	ret, err := types.Lookup(fn.ReturnType)
	if err != nil {
		return nil, newError(ErrTypeMismatch, fn.Span(), "function %q: return type: %s", fn.Name, err)
	}
	return &sig.Signature{Name: fn.Name, Parameters: params, ReturnType: ret}, nil
}
