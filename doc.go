// Package masm provides the binary opcode registry of a stack-machine
// assembly and the code-body serialization built on it.
//
// Every instruction is identified on the wire by a single tag byte. Tags
// 0-239 and 253-255 are assigned, 240-252 are reserved, and a reader treats
// any unassigned byte as a hard error.
//
// # Architecture Overview
//
// The module is organized into several packages with distinct responsibilities:
//
//	masm/
//	├── opcode/          Tag table: encode, decode, names, groups, operand kinds
//	├── ast/             Code bodies: instructions and nested control flow, wire codec
//	├── cache/           SQLite store of encoded bodies keyed by source hash
//	├── manifest/        Tag table export and verification (CBOR, YAML, TOML)
//	├── config/          TOML configuration for the masm command
//	├── errors/          Structured error types for debugging
//	├── internal/binary/ Position-tracking little-endian reader and writer
//	└── cmd/masm/        Command line tool and interactive opcode browser
//
// # Quick Start
//
// Decode a tag byte:
//
//	op, err := opcode.Decode(b)
//	if errors.Is(err, opcode.ErrInvalidOpcode) {
//	    tag, _ := opcode.InvalidTag(err)
//	    log.Fatalf("unassigned tag %d", tag)
//	}
//
// Serialize a body:
//
//	data, err := ast.EncodeBody([]ast.Node{
//	    ast.Instruction{Op: opcode.PushFelt, Imm: ast.Felt(42)},
//	    ast.Repeat{Count: 3, Body: []ast.Node{ast.Instruction{Op: opcode.Dup0}}},
//	})
//
// # Wire Format
//
// A body is a little-endian u16 node count followed by the nodes. Each node
// is its tag byte and, for tags that take one, an operand whose layout is
// given by OpCode.Imm. Control-flow tags carry nested bodies instead.
//
// # Thread Safety
//
// The opcode table is immutable after package initialization and safe for
// concurrent use. Cache is safe for concurrent use.
package masm
