package ast

import (
	"github.com/wippyai/masm/opcode"
)

// Modulus is the order of the base field, 2^64 - 2^32 + 1.
const Modulus uint64 = 0xFFFFFFFF00000001

// Limits enforced in both directions so that anything the encoder accepts
// the decoder accepts too.
const (
	MaxPushInputs   = 16
	MaxBodyLen      = 1<<16 - 1
	MaxNestingDepth = 256
)

// Felt is a base field element in canonical form.
type Felt uint64

// NewFelt returns v as a field element, or false when v is not reduced.
func NewFelt(v uint64) (Felt, bool) {
	if v >= Modulus {
		return 0, false
	}
	return Felt(v), true
}

// Canonical reports whether f is below the field modulus.
func (f Felt) Canonical() bool {
	return uint64(f) < Modulus
}

// Word is four field elements.
type Word [4]Felt

// Digest is a MAST root: four field elements.
type Digest [4]Felt

// ProcedureID identifies an imported procedure.
type ProcedureID [24]byte

// Node is an element of a code body: an Instruction or one of the control
// flow blocks.
type Node interface {
	node()
}

// Instruction is a non-control-flow instruction with its immediate.
//
// Imm must match Op.Imm():
//
//	ImmNone        nil
//	ImmU8          uint8
//	ImmU16         uint16
//	ImmU32         uint32
//	ImmFelt        Felt
//	ImmWord        Word
//	ImmU8List      []uint8
//	ImmU16List     []uint16
//	ImmU32List     []uint32
//	ImmFeltList    []Felt
//	ImmProcedureID ProcedureID
//	ImmDigest      Digest
type Instruction struct {
	Imm any
	Op  opcode.OpCode
}

// IfElse executes Then when the top of the stack is 1 and Else when it is 0.
type IfElse struct {
	Then []Node
	Else []Node
}

// Repeat executes Body Count times.
type Repeat struct {
	Body  []Node
	Count uint32
}

// While executes Body while the top of the stack is 1.
type While struct {
	Body []Node
}

func (Instruction) node() {}
func (IfElse) node()      {}
func (Repeat) node()      {}
func (While) node()       {}

// Op returns the opcode that tags n on the wire.
func Op(n Node) (opcode.OpCode, bool) {
	switch n := n.(type) {
	case Instruction:
		return n.Op, true
	case IfElse:
		return opcode.IfElse, true
	case Repeat:
		return opcode.Repeat, true
	case While:
		return opcode.While, true
	default:
		return 0, false
	}
}
