package irgen

import (
	"fmt"
	"strings"

	"github.com/malphas-lang/malphas-lang/internal/types"
)

// Module accumulates the textual IR for a whole compilation unit: the
// fixed two-line header spec.md §6 pins byte-for-byte, followed by one
// function definition per declared function.
type Module struct {
	name string
	body strings.Builder
}

// NewModule starts a module named name (the source file's logical name).
func NewModule(name string) *Module {
	return &Module{name: name}
}

// String renders the complete module: header then every function emitted
// into it so far via Builder.Finish.
func (m *Module) String() string {
	var out strings.Builder
	fmt.Fprintf(&out, "; ModuleID = '%s'\n", m.name)
	fmt.Fprintf(&out, "source_filename = \"%s\"\n", m.name)
	out.WriteString(m.body.String())
	return out.String()
}

// DeclareExternal writes an opaque function declaration (no body), used
// when a signature is registered but never given a definition — not
// reachable from this language's grammar today, kept for the signature
// table's forward-declaration story to have somewhere to go.
func (m *Module) DeclareExternal(sig string) {
	fmt.Fprintf(&m.body, "declare %s\n", sig)
}

// Builder emits one function's body. A fresh Builder is created per
// function by the lowering pass; Finish appends the rendered function
// into the owning Module.
type Builder struct {
	module *Module

	name       string
	params     []string // "type %name" pairs already formatted
	returnType types.Type
	voidReturn bool

	blocks    []*Block
	current   *Block
	regNames  map[string]int
	labelName map[string]int
}

type Block struct {
	label string
	instr []string
	term  string // terminator; empty until the block is closed
}

// NewFunction begins a new function named fn, returning its Builder. The
// entry block is created and made current automatically, matching
// spec.md §4.5's "allocate parameter slots in the entry block before any
// other instruction".
func NewFunction(m *Module, fn string, returnType types.Type, voidReturn bool) *Builder {
	b := &Builder{
		module:     m,
		name:       fn,
		returnType: returnType,
		voidReturn: voidReturn,
		regNames:   make(map[string]int),
		labelName:  make(map[string]int),
	}
	b.NewBlock(fn)
	return b
}

// AddParam records one declared parameter's rendered "type %name" pair,
// in declaration order, for the function's signature line.
func (b *Builder) AddParam(t types.Type, name string) {
	b.params = append(b.params, fmt.Sprintf("%s %%%s", t.LLVMName(), name))
}

func (b *Builder) uniqueName(base string, table map[string]int) string {
	n := table[base]
	table[base] = n + 1
	if n == 0 {
		return base
	}
	return fmt.Sprintf("%s.%d", base, n)
}

// NewBlock creates and switches to a new basic block named by a unique
// form of base (then/else/continue-style labels get ".1", ".2" suffixes
// on repeat use within the same function, same as LLVM's own symbol
// uniquification).
func (b *Builder) NewBlock(base string) *Block {
	blk := &Block{label: b.uniqueName(base, b.labelName)}
	b.blocks = append(b.blocks, blk)
	b.current = blk
	return blk
}

// NewBlockDetached creates a block named by a unique form of base
// without switching emission to it, for when the branch instruction
// targeting it must be emitted on the current block first (see
// internal/lower's conditional lowering).
func (b *Builder) NewBlockDetached(base string) *Block {
	blk := &Block{label: b.uniqueName(base, b.labelName)}
	b.blocks = append(b.blocks, blk)
	return blk
}

// SetCurrent switches emission to an already-created block, used when the
// lowering pass needs to finish a branch's instructions out of creation
// order (e.g. closing the continuation block after both arms of a
// conditional have been visited).
func (b *Builder) SetCurrent(blk *Block) {
	b.current = blk
}

// Current returns the block new instructions are appended to.
func (b *Builder) Current() *Block { return b.current }

// Terminated reports whether the current block already has a terminator
// (ret/br); the lowering pass consults this to implement return
// short-circuiting (spec.md §8 property 9): it must not append a second
// terminator, such as a fallthrough branch, after a `return` already
// closed the block.
func (b *Builder) Terminated() bool {
	return b.current != nil && b.current.term != ""
}

func (b *Builder) emit(line string) {
	b.current.instr = append(b.current.instr, line)
}

// Alloca emits a stack slot for a variable of type t named per spec.md
// §8 S3's `%load_N_ptr` convention, where N is the slot's declaration
// order in the function.
func (b *Builder) Alloca(t types.Type, slot int) Value {
	name := b.uniqueName(fmt.Sprintf("load_%d_ptr", slot), b.regNames)
	b.emit(fmt.Sprintf("%%%s = alloca %s", name, t.LLVMName()))
	return Value{Type: types.Pointer, Reg: name}
}

// Store emits a store of v into the slot ptr.
func (b *Builder) Store(v Value, ptr Value, valueType types.Type) {
	b.emit(fmt.Sprintf("store %s %s, %s* %s", valueType.LLVMName(), v.Operand(), valueType.LLVMName(), ptr.Operand()))
}

// Load emits a load of type t from ptr, naming the result per spec.md §8
// S3's `%<type>_load` convention.
func (b *Builder) Load(ptr Value, t types.Type) Value {
	name := b.uniqueName(fmt.Sprintf("%s_load", t.LLVMName()), b.regNames)
	b.emit(fmt.Sprintf("%%%s = load %s, %s* %s", name, t.LLVMName(), t.LLVMName(), ptr.Operand()))
	return Value{Type: t, Reg: name}
}

// IntArith is an integer arithmetic opcode.
type IntArith string

const (
	IAdd IntArith = "add"
	ISub IntArith = "sub"
	IMul IntArith = "mul"
	ISDiv IntArith = "sdiv"
)

// FloatArith is a floating point arithmetic opcode.
type FloatArith string

const (
	FAdd FloatArith = "fadd"
	FSub FloatArith = "fsub"
	FMul FloatArith = "fmul"
	FDiv FloatArith = "fdiv"
)

// EmitIntArith emits an integer arithmetic instruction; callers fold
// constant operands themselves before reaching here (see internal/lower),
// so every call to this method produces a real instruction.
func (b *Builder) EmitIntArith(op IntArith, t types.Type, lhs, rhs Value) Value {
	name := b.uniqueName(fmt.Sprintf("%s_%s", t.LLVMName(), op), b.regNames)
	b.emit(fmt.Sprintf("%%%s = %s %s %s, %s", name, op, t.LLVMName(), lhs.Operand(), rhs.Operand()))
	return Value{Type: t, Reg: name}
}

// EmitFloatArith emits a floating point arithmetic instruction.
func (b *Builder) EmitFloatArith(op FloatArith, t types.Type, lhs, rhs Value) Value {
	name := b.uniqueName(fmt.Sprintf("%s_%s", t.LLVMName(), op), b.regNames)
	b.emit(fmt.Sprintf("%%%s = %s %s %s, %s", name, op, t.LLVMName(), lhs.Operand(), rhs.Operand()))
	return Value{Type: t, Reg: name}
}

// ICmp is a signed integer comparison predicate (spec.md §1 limits
// comparisons to signed integer compare for the integer side).
type ICmp string

const (
	ICmpEQ  ICmp = "eq"
	ICmpNE  ICmp = "ne"
	ICmpSLT ICmp = "slt"
	ICmpSLE ICmp = "sle"
	ICmpSGT ICmp = "sgt"
	ICmpSGE ICmp = "sge"
)

// EmitICmp emits a signed integer compare, producing an i1 result.
func (b *Builder) EmitICmp(pred ICmp, t types.Type, lhs, rhs Value) Value {
	name := b.uniqueName(fmt.Sprintf("%s_icmp_%s", t.LLVMName(), pred), b.regNames)
	b.emit(fmt.Sprintf("%%%s = icmp %s %s %s, %s", name, pred, t.LLVMName(), lhs.Operand(), rhs.Operand()))
	return Value{Type: types.Boolean, Reg: name}
}

// FCmp is a floating point comparison predicate.
type FCmp string

const (
	FCmpOEQ FCmp = "oeq"
	FCmpONE FCmp = "one"
	FCmpOLT FCmp = "olt"
	FCmpOLE FCmp = "ole"
	FCmpOGT FCmp = "ogt"
	FCmpOGE FCmp = "oge"
)

// EmitFCmp emits an ordered floating point compare, producing an i1
// result.
func (b *Builder) EmitFCmp(pred FCmp, t types.Type, lhs, rhs Value) Value {
	name := b.uniqueName(fmt.Sprintf("%s_fcmp_%s", t.LLVMName(), pred), b.regNames)
	b.emit(fmt.Sprintf("%%%s = fcmp %s %s %s, %s", name, pred, t.LLVMName(), lhs.Operand(), rhs.Operand()))
	return Value{Type: types.Boolean, Reg: name}
}

// Call emits a direct call to callee, which must already be declared in
// the owning module's signature table.
func (b *Builder) Call(callee string, returnType types.Type, voidReturn bool, args []Value, argTypes []types.Type) Value {
	rendered := make([]string, len(args))
	for i, a := range args {
		rendered[i] = fmt.Sprintf("%s %s", argTypes[i].LLVMName(), a.Operand())
	}
	if voidReturn {
		b.emit(fmt.Sprintf("call void @%s(%s)", callee, strings.Join(rendered, ", ")))
		return Value{}
	}
	name := b.uniqueName(fmt.Sprintf("%s_call", callee), b.regNames)
	b.emit(fmt.Sprintf("%%%s = call %s @%s(%s)", name, returnType.LLVMName(), callee, strings.Join(rendered, ", ")))
	return Value{Type: returnType, Reg: name}
}

// Ret closes the current block with a return of v.
func (b *Builder) Ret(v Value, t types.Type) {
	b.current.term = fmt.Sprintf("ret %s %s", t.LLVMName(), v.Operand())
}

// RetVoid closes the current block with a void return.
func (b *Builder) RetVoid() {
	b.current.term = "ret void"
}

// Br closes the current block with an unconditional branch to target.
func (b *Builder) Br(target *Block) {
	b.current.term = fmt.Sprintf("br label %%%s", target.label)
}

// CondBr closes the current block with a conditional branch.
func (b *Builder) CondBr(cond Value, thenBlk, elseBlk *Block) {
	b.current.term = fmt.Sprintf("br i1 %s, label %%%s, label %%%s", cond.Operand(), thenBlk.label, elseBlk.label)
}

// Label returns blk's symbol, for use with Br/CondBr targets captured
// before the block they point to is finished.
func (blk *Block) Label() string { return blk.label }

// Finish renders the function and appends it to the owning module. Any
// block still lacking a terminator is rendered with `unreachable`. The
// lowering pass itself checks the block that is current when a body ends
// before calling Finish: a non-void function whose body ends in an
// unterminated block (including the join block after a trailing
// conditional whose arms both return) is rejected there, and a void one
// gets `ret void`.
func (b *Builder) Finish() {
	returnType := "void"
	if !b.voidReturn {
		returnType = b.returnType.LLVMName()
	}
	fmt.Fprintf(&b.module.body, "define %s @%s(%s) {\n", returnType, b.name, strings.Join(b.params, ", "))
	for _, blk := range b.blocks {
		fmt.Fprintf(&b.module.body, "%s:\n", blk.label)
		for _, line := range blk.instr {
			fmt.Fprintf(&b.module.body, "  %s\n", line)
		}
		term := blk.term
		if term == "" {
			term = "unreachable"
		}
		fmt.Fprintf(&b.module.body, "  %s\n", term)
	}
	b.module.body.WriteString("}\n")
}
