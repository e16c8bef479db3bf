package opcode

import (
	goerrors "errors"
	"fmt"
	"io"

	"github.com/wippyai/masm/errors"
)

// Reserved tag range between the exec/call group and control flow.
// Readers rely on these bytes being invalid.
const (
	ReservedFirst byte = 240
	ReservedLast  byte = 252
)

// ErrInvalidOpcode matches any error returned for an unassigned tag:
//
//	if errors.Is(err, opcode.ErrInvalidOpcode) { ... }
var ErrInvalidOpcode = &errors.Error{Kind: errors.KindInvalidOpcode}

var (
	byName = make(map[string]OpCode, 256)
	all    []OpCode
)

func init() {
	for i := range table {
		if table[i].name == "" {
			continue
		}
		op := OpCode(i)
		byName[table[i].name] = op
		all = append(all, op)
	}
}

// Encode returns the wire tag of op.
func Encode(op OpCode) byte {
	return byte(op)
}

// Decode returns the opcode assigned to b. Unassigned bytes fail with an
// invalid-opcode error carrying b; there is no fallback variant.
func Decode(b byte) (OpCode, error) {
	if table[b].name == "" {
		return 0, errors.InvalidOpcode(b)
	}
	return OpCode(b), nil
}

// Write writes the tag of op as a single byte.
func Write(w io.ByteWriter, op OpCode) error {
	return w.WriteByte(Encode(op))
}

// Read consumes exactly one byte from r and decodes it.
// An empty stream is reported as an unexpected EOF, not as an opcode.
func Read(r io.ByteReader) (OpCode, error) {
	b, err := r.ReadByte()
	if err != nil {
		if goerrors.Is(err, io.EOF) {
			return 0, errors.UnexpectedEOF(errors.PhaseDecode, []string{"opcode"}, err)
		}
		return 0, errors.Wrap(errors.PhaseDecode, errors.KindInvalidData, err, "read opcode")
	}
	return Decode(b)
}

// InvalidTag reports the offending byte when err is, or wraps, an
// invalid-opcode error.
func InvalidTag(err error) (byte, bool) {
	for err != nil {
		if e, ok := err.(*errors.Error); ok && e.Kind == errors.KindInvalidOpcode {
			b, ok := e.Value.(byte)
			return b, ok
		}
		err = goerrors.Unwrap(err)
	}
	return 0, false
}

// Valid reports whether op is an assigned variant.
func (op OpCode) Valid() bool {
	return table[op].name != ""
}

// String returns the canonical variant name, or OpCode(0xNN) for an
// unassigned value.
func (op OpCode) String() string {
	if name := table[op].name; name != "" {
		return name
	}
	return fmt.Sprintf("OpCode(0x%02x)", byte(op))
}

// Group returns the functional group of op.
func (op OpCode) Group() Group {
	return table[op].group
}

// Imm returns the operand layout that follows op on the wire.
func (op OpCode) Imm() ImmKind {
	return table[op].imm
}

// Lookup returns the opcode with the given canonical name.
func Lookup(name string) (OpCode, bool) {
	op, ok := byName[name]
	return op, ok
}

// All returns every assigned opcode in ascending tag order.
func All() []OpCode {
	out := make([]OpCode, len(all))
	copy(out, all)
	return out
}

// Count returns the number of assigned opcodes.
func Count() int {
	return len(all)
}

// IsReserved reports whether b falls in the reserved gap.
func IsReserved(b byte) bool {
	return b >= ReservedFirst && b <= ReservedLast
}
