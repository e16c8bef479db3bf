// Package opcode is the tag registry for serialized Miden assembly.
//
// Every instruction variant is bound to one byte. The serializer writes that
// byte before the variant's operands; the deserializer reads it back, asks
// Decode for the variant, and dispatches on it to learn which operands follow.
//
// # Tag layout
//
//	  0-32   field arithmetic, comparison, assertions
//	 33-38   ext2 arithmetic
//	 39-117  u32 operations
//	118-195  stack manipulation
//	196-225  push, environment, memory, locals, advice
//	226-232  hashing and Merkle trees
//	233      FRI folding
//	234-239  exec / call / syscall
//	240-252  reserved, always invalid
//	253-255  if/else, repeat, while
//
// The table is fixed at build time. Values are never renumbered; a future
// format revision may only claim bytes that are currently unassigned.
//
// # Decoding
//
// Decode is closed-world. A byte without an assignment is rejected with an
// error of kind invalid_opcode whose Value is the byte, and callers must abort
// the enclosing structure: operand layouts are not self-delimiting, so there
// is no way to skip an unknown instruction.
//
//	op, err := opcode.Read(r)
//	if err != nil {
//		return nil, err
//	}
//	switch op.Imm() { ... }
//
// Encode, Decode and every accessor are pure and safe for concurrent use.
package opcode
