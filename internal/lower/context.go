package lower

import (
	"github.com/malphas-lang/malphas-lang/internal/irgen"
	"github.com/malphas-lang/malphas-lang/internal/sig"
)

// ctx carries the per-function state threaded through statement and
// expression lowering: the signature table (for call resolution), the IR
// builder, and the next free stack-slot index handed to Alloca for
// every new `let` binding (assignment to a mutable binding stores into
// the binding's existing slot and does not take a new index).
type ctx struct {
	table     *sig.Table
	builder   *irgen.Builder
	slot      int
	constants map[string]irgen.Constant
}

func (c *ctx) nextSlot() int {
	n := c.slot
	c.slot++
	return n
}
