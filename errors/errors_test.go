package errors

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseDecode,
				Kind:   KindNonCanonical,
				Path:   []string{"body", "2", "imm"},
				Detail: "felt not reduced",
			},
			contains: []string{"[decode]", "non_canonical", "body.2.imm", "felt not reduced"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseEncode,
				Kind:  KindOverflow,
			},
			contains: []string{"[encode]", "overflow"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseLoad,
				Kind:   KindInvalidData,
				Detail: "cache row",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[load]", "invalid_data", "cache row", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseDecode,
		Kind:  KindUnexpectedEOF,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}

	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseDecode,
		Kind:  KindInvalidOpcode,
		Path:  []string{"body"},
	}

	if !err.Is(&Error{Phase: PhaseDecode, Kind: KindInvalidOpcode}) {
		t.Error("Is should match same phase and kind")
	}

	if err.Is(&Error{Phase: PhaseEncode, Kind: KindInvalidOpcode}) {
		t.Error("Is should not match different phase")
	}

	if err.Is(&Error{Phase: PhaseDecode, Kind: KindOverflow}) {
		t.Error("Is should not match different kind")
	}

	if !err.Is(&Error{Kind: KindInvalidOpcode}) {
		t.Error("Is should match any phase when target phase is empty")
	}

	target := &Error{Phase: PhaseDecode, Kind: KindInvalidOpcode}
	if !errors.Is(err, target) {
		t.Error("errors.Is should match")
	}

	if err.Is(io.EOF) {
		t.Error("Is should not match foreign errors")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseDecode, KindNonCanonical).
		Path("body", "imm").
		Value(uint64(42)).
		Cause(cause).
		Detail("expected %s, got %s", "felt", "u64").
		Build()

	if err.Phase != PhaseDecode {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseDecode)
	}
	if err.Kind != KindNonCanonical {
		t.Errorf("Kind = %v, want %v", err.Kind, KindNonCanonical)
	}
	if len(err.Path) != 2 || err.Path[0] != "body" || err.Path[1] != "imm" {
		t.Errorf("Path = %v, want [body imm]", err.Path)
	}
	if err.Value != uint64(42) {
		t.Errorf("Value = %v, want 42", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "expected felt, got u64" {
		t.Errorf("Detail = %v, want 'expected felt, got u64'", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("InvalidOpcode", func(t *testing.T) {
		err := InvalidOpcode(241)
		if err.Kind != KindInvalidOpcode || err.Phase != PhaseDecode {
			t.Errorf("got %v/%v, want decode/invalid_opcode", err.Phase, err.Kind)
		}
		if err.Value != byte(241) {
			t.Errorf("Value = %v, want 241", err.Value)
		}
		if !strings.Contains(err.Error(), "241") || !strings.Contains(err.Error(), "0xf1") {
			t.Errorf("message %q should name the tag", err.Error())
		}
	})

	t.Run("UnexpectedEOF", func(t *testing.T) {
		err := UnexpectedEOF(PhaseDecode, []string{"body"}, io.EOF)
		if err.Kind != KindUnexpectedEOF {
			t.Errorf("Kind = %v, want %v", err.Kind, KindUnexpectedEOF)
		}
		if !errors.Is(err, io.EOF) {
			t.Error("UnexpectedEOF should unwrap to its cause")
		}
	})

	t.Run("NonCanonical", func(t *testing.T) {
		err := NonCanonical(PhaseDecode, nil, uint64(7), "felt")
		if err.Kind != KindNonCanonical || err.Value != uint64(7) {
			t.Errorf("got kind %v value %v", err.Kind, err.Value)
		}
	})

	t.Run("TooLarge", func(t *testing.T) {
		err := TooLarge(PhaseDecode, nil, "list length", 17, 16)
		if err.Kind != KindTooLarge {
			t.Errorf("Kind = %v, want %v", err.Kind, KindTooLarge)
		}
		if !strings.Contains(err.Detail, "17") || !strings.Contains(err.Detail, "16") {
			t.Errorf("Detail = %q", err.Detail)
		}
	})

	t.Run("TypeMismatch", func(t *testing.T) {
		err := TypeMismatch(PhaseEncode, []string{"imm"}, "uint32", "string")
		if err.Kind != KindTypeMismatch {
			t.Errorf("Kind = %v, want %v", err.Kind, KindTypeMismatch)
		}
		if err.Detail != "expected uint32, got string" {
			t.Errorf("Detail = %q", err.Detail)
		}
	})

	t.Run("Overflow", func(t *testing.T) {
		err := Overflow(PhaseEncode, []string{"body"}, 70000, "u16")
		if err.Kind != KindOverflow {
			t.Errorf("Kind = %v, want %v", err.Kind, KindOverflow)
		}
		if err.Value != 70000 {
			t.Errorf("Value = %v, want 70000", err.Value)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		err := NotFound(PhaseValidate, "opcode", "Frobnicate")
		if !strings.Contains(err.Detail, `"Frobnicate"`) {
			t.Errorf("Detail = %q", err.Detail)
		}
	})

	t.Run("Wrap", func(t *testing.T) {
		cause := errors.New("disk")
		err := Wrap(PhaseLoad, KindInvalidData, cause, "read cache")
		if !errors.Is(err, cause) {
			t.Error("Wrap should keep the cause")
		}
	})
}
