// Package errors provides structured error types for the masm module.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the node path, the offending value, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindNonCanonical).
//		Path("body", "3", "imm").
//		Value(v).
//		Detail("felt %d is not reduced", v).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.InvalidOpcode(241)
//	err := errors.UnexpectedEOF(errors.PhaseDecode, path, io.EOF)
//
// All errors implement the standard error interface and support errors.Is/As.
// Is matches on phase and kind; a target without a phase matches every phase.
package errors
