package ast_test

import (
	"bytes"
	"encoding/binary"
	goerrors "errors"
	"reflect"
	"strings"
	"testing"

	"github.com/wippyai/masm/ast"
	"github.com/wippyai/masm/errors"
	mbinary "github.com/wippyai/masm/internal/binary"
	"github.com/wippyai/masm/opcode"
)

func sampleImm(kind opcode.ImmKind) any {
	switch kind {
	case opcode.ImmU8:
		return uint8(7)
	case opcode.ImmU16:
		return uint16(0x1234)
	case opcode.ImmU32:
		return uint32(0xDEADBEEF)
	case opcode.ImmFelt:
		return ast.Felt(ast.Modulus - 1)
	case opcode.ImmWord:
		return ast.Word{1, 2, 3, ast.Felt(ast.Modulus - 1)}
	case opcode.ImmDigest:
		return ast.Digest{5, 6, 7, 8}
	case opcode.ImmProcedureID:
		var id ast.ProcedureID
		for i := range id {
			id[i] = byte(i + 1)
		}
		return id
	case opcode.ImmU8List:
		return []uint8{1, 2, 3}
	case opcode.ImmU16List:
		return []uint16{1, 0xFFFF}
	case opcode.ImmU32List:
		return []uint32{0, 1 << 31}
	case opcode.ImmFeltList:
		return []ast.Felt{9, 10, 11, 12, 13}
	default:
		return nil
	}
}

// everyInstruction returns one node per assigned opcode.
func everyInstruction() []ast.Node {
	var body []ast.Node
	for _, op := range opcode.All() {
		switch op {
		case opcode.IfElse:
			body = append(body, ast.IfElse{
				Then: []ast.Node{ast.Instruction{Op: opcode.Add}},
				Else: []ast.Node{ast.Instruction{Op: opcode.PushU8, Imm: uint8(1)}},
			})
		case opcode.Repeat:
			body = append(body, ast.Repeat{Count: 4, Body: []ast.Node{ast.Instruction{Op: opcode.Dup0}}})
		case opcode.While:
			body = append(body, ast.While{Body: []ast.Node{ast.Instruction{Op: opcode.Drop}}})
		default:
			body = append(body, ast.Instruction{Op: op, Imm: sampleImm(op.Imm())})
		}
	}
	return body
}

func TestRoundTripEveryOpcode(t *testing.T) {
	body := everyInstruction()
	data, err := ast.EncodeBody(body)
	if err != nil {
		t.Fatalf("EncodeBody: %v", err)
	}
	got, err := ast.DecodeBody(data)
	if err != nil {
		t.Fatalf("DecodeBody: %v", err)
	}
	if len(got) != len(body) {
		t.Fatalf("decoded %d nodes, want %d", len(got), len(body))
	}
	for i := range body {
		if !reflect.DeepEqual(got[i], body[i]) {
			op, _ := ast.Op(body[i])
			t.Errorf("node %d (%s): got %#v, want %#v", i, op, got[i], body[i])
		}
	}
}

func TestWireLayout(t *testing.T) {
	body := []ast.Node{
		ast.Instruction{Op: opcode.Drop},
		ast.Instruction{Op: opcode.PushU16, Imm: uint16(0x0102)},
		ast.Repeat{Count: 2, Body: []ast.Node{ast.Instruction{Op: opcode.Add}}},
	}
	want := []byte{
		0x03, 0x00,
		118,
		197, 0x02, 0x01,
		254, 0x02, 0x00, 0x00, 0x00,
		0x01, 0x00, 4,
	}
	got, err := ast.EncodeBody(body)
	if err != nil {
		t.Fatalf("EncodeBody: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("EncodeBody:\n got % x\nwant % x", got, want)
	}
}

func TestPushFeltStream(t *testing.T) {
	data := []byte{0x01, 0x00, 199}
	data = binary.LittleEndian.AppendUint64(data, 42)

	body, err := ast.DecodeBody(data)
	if err != nil {
		t.Fatalf("DecodeBody: %v", err)
	}
	want := []ast.Node{ast.Instruction{Op: opcode.PushFelt, Imm: ast.Felt(42)}}
	if !reflect.DeepEqual(body, want) {
		t.Errorf("got %#v, want %#v", body, want)
	}
}

func TestNestedControlFlow(t *testing.T) {
	body := []ast.Node{
		ast.While{Body: []ast.Node{
			ast.IfElse{
				Then: []ast.Node{
					ast.Repeat{Count: 3, Body: []ast.Node{
						ast.Instruction{Op: opcode.U32WrappingAddImm, Imm: uint32(1)},
					}},
				},
			},
			ast.Instruction{Op: opcode.Dup0},
		}},
	}
	data, err := ast.EncodeBody(body)
	if err != nil {
		t.Fatalf("EncodeBody: %v", err)
	}
	got, err := ast.DecodeBody(data)
	if err != nil {
		t.Fatalf("DecodeBody: %v", err)
	}
	if !reflect.DeepEqual(got, body) {
		t.Errorf("got %#v, want %#v", got, body)
	}
}

func TestDecodeInvalidTagAborts(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		tag  byte
	}{
		{"top level", []byte{0x02, 0x00, 118, 241}, 241},
		{"reserved low", []byte{0x01, 0x00, 240}, 240},
		{"reserved high", []byte{0x01, 0x00, 252}, 252},
		{"inside while", []byte{0x01, 0x00, 255, 0x01, 0x00, 245}, 245},
		{"inside else", []byte{0x01, 0x00, 253, 0x00, 0x00, 0x01, 0x00, 250}, 250},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := ast.DecodeBody(tt.data)
			if err == nil {
				t.Fatalf("DecodeBody succeeded with %#v", body)
			}
			if body != nil {
				t.Errorf("partial body returned: %#v", body)
			}
			if !goerrors.Is(err, opcode.ErrInvalidOpcode) {
				t.Errorf("error %v does not match ErrInvalidOpcode", err)
			}
			tag, ok := opcode.InvalidTag(err)
			if !ok || tag != tt.tag {
				t.Errorf("InvalidTag = %d, %v; want %d", tag, ok, tt.tag)
			}
			var pe *mbinary.ParseError
			if !goerrors.As(err, &pe) {
				t.Fatalf("expected *ParseError, got %T", err)
			}
			if pe.Position != len(tt.data) {
				t.Errorf("Position = %d, want %d", pe.Position, len(tt.data))
			}
		})
	}
}

func TestDecodeTruncated(t *testing.T) {
	data, err := ast.EncodeBody(everyInstruction())
	if err != nil {
		t.Fatalf("EncodeBody: %v", err)
	}
	eof := &errors.Error{Kind: errors.KindUnexpectedEOF}
	for n := 0; n < len(data); n++ {
		_, err := ast.DecodeBody(data[:n])
		if err == nil {
			t.Fatalf("prefix of %d bytes decoded successfully", n)
		}
		if !goerrors.Is(err, eof) {
			t.Fatalf("prefix of %d bytes: got %v, want unexpected EOF", n, err)
		}
	}
}

func TestDecodeTrailingBytes(t *testing.T) {
	_, err := ast.DecodeBody([]byte{0x01, 0x00, 118, 118})
	if !goerrors.Is(err, &errors.Error{Phase: errors.PhaseDecode, Kind: errors.KindInvalidData}) {
		t.Errorf("got %v, want trailing bytes error", err)
	}
}

func TestDecodeNonCanonicalFelt(t *testing.T) {
	data := []byte{0x01, 0x00, byte(opcode.PushFelt)}
	data = binary.LittleEndian.AppendUint64(data, ast.Modulus)
	_, err := ast.DecodeBody(data)
	if !goerrors.Is(err, &errors.Error{Kind: errors.KindNonCanonical}) {
		t.Errorf("got %v, want non-canonical error", err)
	}
}

func TestDecodeListTooLong(t *testing.T) {
	data := []byte{0x01, 0x00, byte(opcode.PushU8List), ast.MaxPushInputs + 1}
	data = append(data, make([]byte, ast.MaxPushInputs+1)...)
	_, err := ast.DecodeBody(data)
	if !goerrors.Is(err, &errors.Error{Kind: errors.KindTooLarge}) {
		t.Errorf("got %v, want too large error", err)
	}
}

func TestNestingDepth(t *testing.T) {
	nest := func(depth int) []byte {
		var data []byte
		for i := 0; i < depth; i++ {
			data = append(data, 0x01, 0x00, byte(opcode.While))
		}
		return append(data, 0x00, 0x00)
	}

	if _, err := ast.DecodeBody(nest(ast.MaxNestingDepth)); err != nil {
		t.Errorf("depth %d: %v", ast.MaxNestingDepth, err)
	}
	_, err := ast.DecodeBody(nest(ast.MaxNestingDepth + 1))
	if !goerrors.Is(err, &errors.Error{Kind: errors.KindTooLarge}) {
		t.Errorf("depth %d: got %v, want too large", ast.MaxNestingDepth+1, err)
	}

	var body []ast.Node
	for i := 0; i <= ast.MaxNestingDepth; i++ {
		body = []ast.Node{ast.While{Body: body}}
	}
	_, err = ast.EncodeBody(body)
	if !goerrors.Is(err, &errors.Error{Phase: errors.PhaseEncode, Kind: errors.KindTooLarge}) {
		t.Errorf("encode depth %d: got %v, want too large", ast.MaxNestingDepth+1, err)
	}
}

func TestEncodeErrors(t *testing.T) {
	tests := []struct {
		name string
		node ast.Node
		kind errors.Kind
	}{
		{"wrong imm type", ast.Instruction{Op: opcode.PushU32, Imm: 5}, errors.KindTypeMismatch},
		{"missing imm", ast.Instruction{Op: opcode.PushFelt}, errors.KindTypeMismatch},
		{"unexpected imm", ast.Instruction{Op: opcode.Drop, Imm: uint8(1)}, errors.KindTypeMismatch},
		{"unassigned opcode", ast.Instruction{Op: opcode.OpCode(241)}, errors.KindInvalidOpcode},
		{"control flow as instruction", ast.Instruction{Op: opcode.While}, errors.KindInvalidData},
		{"non-canonical felt", ast.Instruction{Op: opcode.PushFelt, Imm: ast.Felt(ast.Modulus)}, errors.KindNonCanonical},
		{"non-canonical word", ast.Instruction{Op: opcode.PushWord, Imm: ast.Word{0, 0, ast.Felt(^uint64(0)), 0}}, errors.KindNonCanonical},
		{"list too long", ast.Instruction{Op: opcode.PushU32List, Imm: make([]uint32, ast.MaxPushInputs+1)}, errors.KindTooLarge},
		{"nil node", nil, errors.KindTypeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ast.EncodeBody([]ast.Node{tt.node})
			if !goerrors.Is(err, &errors.Error{Phase: errors.PhaseEncode, Kind: tt.kind}) {
				t.Errorf("got %v, want %s", err, tt.kind)
			}
		})
	}
}

func TestEncodeErrorPath(t *testing.T) {
	body := []ast.Node{
		ast.Instruction{Op: opcode.Drop},
		ast.IfElse{Else: []ast.Node{ast.Instruction{Op: opcode.PushU8, Imm: "x"}}},
	}
	_, err := ast.EncodeBody(body)
	var e *errors.Error
	if !goerrors.As(err, &e) {
		t.Fatalf("expected *errors.Error, got %T", err)
	}
	if got := strings.Join(e.Path, "."); got != "body.1.else.0.imm" {
		t.Errorf("Path = %q, want body.1.else.0.imm", got)
	}
}

func TestNewFelt(t *testing.T) {
	if f, ok := ast.NewFelt(ast.Modulus - 1); !ok || uint64(f) != ast.Modulus-1 {
		t.Errorf("NewFelt(p-1) = %d, %v", f, ok)
	}
	if _, ok := ast.NewFelt(ast.Modulus); ok {
		t.Error("NewFelt(p) should fail")
	}
}

func TestOp(t *testing.T) {
	tests := []struct {
		node ast.Node
		want opcode.OpCode
	}{
		{ast.Instruction{Op: opcode.Hash}, opcode.Hash},
		{ast.IfElse{}, opcode.IfElse},
		{ast.Repeat{}, opcode.Repeat},
		{ast.While{}, opcode.While},
	}
	for _, tt := range tests {
		got, ok := ast.Op(tt.node)
		if !ok || got != tt.want {
			t.Errorf("Op(%#v) = %s, %v", tt.node, got, ok)
		}
	}
	if _, ok := ast.Op(nil); ok {
		t.Error("Op(nil) should fail")
	}
}

func TestSprint(t *testing.T) {
	body := []ast.Node{
		ast.Instruction{Op: opcode.PushFelt, Imm: ast.Felt(3)},
		ast.While{Body: []ast.Node{
			ast.IfElse{
				Then: []ast.Node{ast.Instruction{Op: opcode.Drop}},
				Else: []ast.Node{ast.Instruction{Op: opcode.PushWord, Imm: ast.Word{1, 2, 3, 4}}},
			},
		}},
		ast.Repeat{Count: 2, Body: []ast.Node{ast.Instruction{Op: opcode.Add}}},
	}
	want := strings.Join([]string{
		"PushFelt 3",
		"while.true",
		"  if.true",
		"    Drop",
		"  else",
		"    PushWord [1 2 3 4]",
		"  end",
		"end",
		"repeat.2",
		"  Add",
		"end",
		"",
	}, "\n")
	if got := ast.Sprint(body); got != want {
		t.Errorf("Sprint:\n%s\nwant:\n%s", got, want)
	}
}
