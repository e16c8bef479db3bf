package ast

import (
	"bytes"
	goerrors "errors"
	"fmt"
	"io"
	"strconv"

	"go.uber.org/zap"

	"github.com/wippyai/masm/errors"
	"github.com/wippyai/masm/internal/binary"
	"github.com/wippyai/masm/opcode"
)

// DecodeBody parses a code body produced by EncodeBody. The whole input must
// be consumed; trailing bytes are an error.
func DecodeBody(data []byte) ([]Node, error) {
	br := bytes.NewReader(data)
	body, err := ReadBody(binary.NewReader(br))
	if err != nil {
		return nil, err
	}
	if br.Len() != 0 {
		return nil, errors.InvalidData(errors.PhaseDecode, []string{"body"},
			fmt.Sprintf("%d trailing bytes after body", br.Len()))
	}
	return body, nil
}

// ReadBody parses one code body from r. The first failure aborts the whole
// body; nothing is skipped or resynchronized.
func ReadBody(r *binary.Reader) ([]Node, error) {
	body, err := readBody(r, 0, []string{"body"})
	if err != nil {
		fields := []zap.Field{zap.Int("position", r.Position()), zap.Error(err)}
		if tag, ok := opcode.InvalidTag(err); ok {
			fields = append(fields, zap.Uint8("tag", tag))
		}
		Logger().Debug("decode body failed", fields...)
		return nil, r.WrapError("body", err)
	}
	return body, nil
}

func readBody(r *binary.Reader, depth int, path []string) ([]Node, error) {
	if depth > MaxNestingDepth {
		return nil, errors.TooLarge(errors.PhaseDecode, path, "nesting depth", depth, MaxNestingDepth)
	}
	n, err := r.ReadU16()
	if err != nil {
		return nil, readErr(err, path)
	}
	if n == 0 {
		return nil, nil
	}

	body := make([]Node, 0, min(int(n), 1024))
	for i := 0; i < int(n); i++ {
		node, err := readNode(r, depth, subPath(path, strconv.Itoa(i)))
		if err != nil {
			return nil, err
		}
		body = append(body, node)
	}
	return body, nil
}

func readNode(r *binary.Reader, depth int, path []string) (Node, error) {
	op, err := opcode.Read(r)
	if err != nil {
		return nil, err
	}

	switch op.Imm() {
	case opcode.ImmBranches:
		then, err := readBody(r, depth+1, subPath(path, "then"))
		if err != nil {
			return nil, err
		}
		els, err := readBody(r, depth+1, subPath(path, "else"))
		if err != nil {
			return nil, err
		}
		return IfElse{Then: then, Else: els}, nil

	case opcode.ImmCountedBody:
		count, err := r.ReadU32()
		if err != nil {
			return nil, readErr(err, subPath(path, "count"))
		}
		body, err := readBody(r, depth+1, subPath(path, "body"))
		if err != nil {
			return nil, err
		}
		return Repeat{Count: count, Body: body}, nil

	case opcode.ImmBody:
		body, err := readBody(r, depth+1, subPath(path, "body"))
		if err != nil {
			return nil, err
		}
		return While{Body: body}, nil
	}

	imm, err := readImm(r, op.Imm(), subPath(path, "imm"))
	if err != nil {
		return nil, err
	}
	return Instruction{Op: op, Imm: imm}, nil
}

func readImm(r *binary.Reader, kind opcode.ImmKind, path []string) (any, error) {
	switch kind {
	case opcode.ImmNone:
		return nil, nil

	case opcode.ImmU8:
		v, err := r.ReadU8()
		if err != nil {
			return nil, readErr(err, path)
		}
		return v, nil

	case opcode.ImmU16:
		v, err := r.ReadU16()
		if err != nil {
			return nil, readErr(err, path)
		}
		return v, nil

	case opcode.ImmU32:
		v, err := r.ReadU32()
		if err != nil {
			return nil, readErr(err, path)
		}
		return v, nil

	case opcode.ImmFelt:
		return readFelt(r, path)

	case opcode.ImmWord:
		var v Word
		if err := readFelts(r, v[:], path); err != nil {
			return nil, err
		}
		return v, nil

	case opcode.ImmDigest:
		var v Digest
		if err := readFelts(r, v[:], path); err != nil {
			return nil, err
		}
		return v, nil

	case opcode.ImmProcedureID:
		buf, err := r.ReadBytes(len(ProcedureID{}))
		if err != nil {
			return nil, readErr(err, path)
		}
		var v ProcedureID
		copy(v[:], buf)
		return v, nil

	case opcode.ImmU8List:
		n, err := readListLen(r, path)
		if err != nil {
			return nil, err
		}
		v, err := r.ReadBytes(n)
		if err != nil {
			return nil, readErr(err, path)
		}
		return v, nil

	case opcode.ImmU16List:
		n, err := readListLen(r, path)
		if err != nil {
			return nil, err
		}
		v := make([]uint16, n)
		for i := range v {
			if v[i], err = r.ReadU16(); err != nil {
				return nil, readErr(err, path)
			}
		}
		return v, nil

	case opcode.ImmU32List:
		n, err := readListLen(r, path)
		if err != nil {
			return nil, err
		}
		v := make([]uint32, n)
		for i := range v {
			if v[i], err = r.ReadU32(); err != nil {
				return nil, readErr(err, path)
			}
		}
		return v, nil

	case opcode.ImmFeltList:
		n, err := readListLen(r, path)
		if err != nil {
			return nil, err
		}
		v := make([]Felt, n)
		if err := readFelts(r, v, path); err != nil {
			return nil, err
		}
		return v, nil

	default:
		return nil, errors.InvalidData(errors.PhaseDecode, path, fmt.Sprintf("no decoding for operand kind %s", kind))
	}
}

func readFelt(r *binary.Reader, path []string) (Felt, error) {
	v, err := r.ReadU64()
	if err != nil {
		return 0, readErr(err, path)
	}
	f, ok := NewFelt(v)
	if !ok {
		return 0, errors.NonCanonical(errors.PhaseDecode, path, v, "field element")
	}
	return f, nil
}

func readFelts(r *binary.Reader, dst []Felt, path []string) error {
	for i := range dst {
		f, err := readFelt(r, subPath(path, strconv.Itoa(i)))
		if err != nil {
			return err
		}
		dst[i] = f
	}
	return nil
}

func readListLen(r *binary.Reader, path []string) (int, error) {
	n, err := r.ReadU8()
	if err != nil {
		return 0, readErr(err, path)
	}
	if int(n) > MaxPushInputs {
		return 0, errors.TooLarge(errors.PhaseDecode, path, "list length", int(n), MaxPushInputs)
	}
	return int(n), nil
}

func readErr(err error, path []string) error {
	if goerrors.Is(err, io.EOF) || goerrors.Is(err, io.ErrUnexpectedEOF) {
		return errors.UnexpectedEOF(errors.PhaseDecode, path, err)
	}
	return errors.Wrap(errors.PhaseDecode, errors.KindInvalidData, err, "read "+path[len(path)-1])
}
