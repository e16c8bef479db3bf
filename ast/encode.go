package ast

import (
	"fmt"
	"strconv"

	"github.com/wippyai/masm/errors"
	"github.com/wippyai/masm/internal/binary"
	"github.com/wippyai/masm/opcode"
)

// EncodeBody serializes a code body: a u16 node count followed by each node's
// tag and operands.
func EncodeBody(body []Node) ([]byte, error) {
	w := binary.NewWriter()
	if err := WriteBody(w, body); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// WriteBody serializes body into w.
func WriteBody(w *binary.Writer, body []Node) error {
	return writeBody(w, body, 0, []string{"body"})
}

func writeBody(w *binary.Writer, body []Node, depth int, path []string) error {
	if depth > MaxNestingDepth {
		return errors.TooLarge(errors.PhaseEncode, path, "nesting depth", depth, MaxNestingDepth)
	}
	if len(body) > MaxBodyLen {
		return errors.Overflow(errors.PhaseEncode, path, len(body), "u16 node count")
	}
	w.WriteU16(uint16(len(body)))
	for i, n := range body {
		if err := writeNode(w, n, depth, subPath(path, strconv.Itoa(i))); err != nil {
			return err
		}
	}
	return nil
}

func writeNode(w *binary.Writer, n Node, depth int, path []string) error {
	switch n := n.(type) {
	case Instruction:
		if !n.Op.Valid() {
			return errors.New(errors.PhaseEncode, errors.KindInvalidOpcode).
				Path(path...).
				Value(byte(n.Op)).
				Detail("%s is not an assigned opcode", n.Op).
				Build()
		}
		if n.Op.Imm().IsControlFlow() {
			return errors.InvalidData(errors.PhaseEncode, path,
				fmt.Sprintf("%s must be encoded as a control flow node", n.Op))
		}
		w.Byte(opcode.Encode(n.Op))
		return writeImm(w, n.Op.Imm(), n.Imm, subPath(path, "imm"))

	case IfElse:
		w.Byte(opcode.Encode(opcode.IfElse))
		if err := writeBody(w, n.Then, depth+1, subPath(path, "then")); err != nil {
			return err
		}
		return writeBody(w, n.Else, depth+1, subPath(path, "else"))

	case Repeat:
		w.Byte(opcode.Encode(opcode.Repeat))
		w.WriteU32(n.Count)
		return writeBody(w, n.Body, depth+1, subPath(path, "body"))

	case While:
		w.Byte(opcode.Encode(opcode.While))
		return writeBody(w, n.Body, depth+1, subPath(path, "body"))

	default:
		return errors.TypeMismatch(errors.PhaseEncode, path, "ast node", fmt.Sprintf("%T", n))
	}
}

func writeImm(w *binary.Writer, kind opcode.ImmKind, imm any, path []string) error {
	mismatch := func(want string) error {
		return errors.TypeMismatch(errors.PhaseEncode, path, want, fmt.Sprintf("%T", imm))
	}

	switch kind {
	case opcode.ImmNone:
		if imm != nil {
			return mismatch("no immediate")
		}

	case opcode.ImmU8:
		v, ok := imm.(uint8)
		if !ok {
			return mismatch("uint8")
		}
		w.Byte(v)

	case opcode.ImmU16:
		v, ok := imm.(uint16)
		if !ok {
			return mismatch("uint16")
		}
		w.WriteU16(v)

	case opcode.ImmU32:
		v, ok := imm.(uint32)
		if !ok {
			return mismatch("uint32")
		}
		w.WriteU32(v)

	case opcode.ImmFelt:
		v, ok := imm.(Felt)
		if !ok {
			return mismatch("ast.Felt")
		}
		return writeFelt(w, v, path)

	case opcode.ImmWord:
		v, ok := imm.(Word)
		if !ok {
			return mismatch("ast.Word")
		}
		return writeFelts(w, v[:], path)

	case opcode.ImmDigest:
		v, ok := imm.(Digest)
		if !ok {
			return mismatch("ast.Digest")
		}
		return writeFelts(w, v[:], path)

	case opcode.ImmProcedureID:
		v, ok := imm.(ProcedureID)
		if !ok {
			return mismatch("ast.ProcedureID")
		}
		w.WriteBytes(v[:])

	case opcode.ImmU8List:
		v, ok := imm.([]uint8)
		if !ok {
			return mismatch("[]uint8")
		}
		if err := writeListLen(w, len(v), path); err != nil {
			return err
		}
		w.WriteBytes(v)

	case opcode.ImmU16List:
		v, ok := imm.([]uint16)
		if !ok {
			return mismatch("[]uint16")
		}
		if err := writeListLen(w, len(v), path); err != nil {
			return err
		}
		for _, x := range v {
			w.WriteU16(x)
		}

	case opcode.ImmU32List:
		v, ok := imm.([]uint32)
		if !ok {
			return mismatch("[]uint32")
		}
		if err := writeListLen(w, len(v), path); err != nil {
			return err
		}
		for _, x := range v {
			w.WriteU32(x)
		}

	case opcode.ImmFeltList:
		v, ok := imm.([]Felt)
		if !ok {
			return mismatch("[]ast.Felt")
		}
		if err := writeListLen(w, len(v), path); err != nil {
			return err
		}
		return writeFelts(w, v, path)

	default:
		return errors.InvalidData(errors.PhaseEncode, path, fmt.Sprintf("no encoding for operand kind %s", kind))
	}
	return nil
}

func writeFelt(w *binary.Writer, f Felt, path []string) error {
	if !f.Canonical() {
		return errors.NonCanonical(errors.PhaseEncode, path, uint64(f), "field element")
	}
	w.WriteU64(uint64(f))
	return nil
}

func writeFelts(w *binary.Writer, fs []Felt, path []string) error {
	for i, f := range fs {
		if err := writeFelt(w, f, subPath(path, strconv.Itoa(i))); err != nil {
			return err
		}
	}
	return nil
}

func writeListLen(w *binary.Writer, n int, path []string) error {
	if n > MaxPushInputs {
		return errors.TooLarge(errors.PhaseEncode, path, "list length", n, MaxPushInputs)
	}
	w.Byte(byte(n))
	return nil
}

// subPath returns path extended by elems without aliasing the caller's slice.
func subPath(path []string, elems ...string) []string {
	out := make([]string, 0, len(path)+len(elems))
	out = append(out, path...)
	return append(out, elems...)
}
