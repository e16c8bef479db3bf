// Package ast serializes Miden assembly code bodies to the compact binary
// form used to cache parsed programs.
//
// A body is a little-endian u16 node count followed by the nodes. Each node
// starts with its one-byte tag from package opcode; the tag's operand kind
// decides what follows:
//
//	fixed immediates  u8, u16, u32, felt (u64), word (4 felts)
//	lists             u8 count (at most MaxPushInputs), then the elements
//	procedure ids     24 raw bytes
//	digests           4 felts
//	if/else           then-body, else-body
//	repeat            u32 count, body
//	while             body
//
// Field elements must be canonical (below Modulus) on both sides.
//
// Decoding is all-or-nothing. An unknown tag, a truncated stream, a
// non-canonical felt or an oversized list aborts the whole body, because the
// operands of an unknown instruction cannot be skipped safely.
package ast
