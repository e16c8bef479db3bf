// Package manifest exports the opcode tag table in machine-readable form.
//
// A manifest lists every assigned tag with its name, group and operand kind,
// plus the reserved ranges that must stay invalid. It is meant for collision
// audits and for readers implemented outside this module, which can check
// their own table against it with Verify.
package manifest

import (
	"bytes"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/masm/errors"
	"github.com/wippyai/masm/opcode"
)

// Version identifies the revision of the tag table described by Build.
const Version = 1

// Manifest describes the complete tag table.
type Manifest struct {
	Entries  []Entry `cbor:"2,keyasint" yaml:"entries" toml:"entries"`
	Reserved []Range `cbor:"3,keyasint" yaml:"reserved" toml:"reserved"`
	Version  int     `cbor:"1,keyasint" yaml:"version" toml:"version"`
}

// Entry is one assigned tag.
type Entry struct {
	Name  string `cbor:"2,keyasint" yaml:"name" toml:"name"`
	Group string `cbor:"3,keyasint" yaml:"group" toml:"group"`
	Imm   string `cbor:"4,keyasint" yaml:"imm" toml:"imm"`
	Tag   uint8  `cbor:"1,keyasint" yaml:"tag" toml:"tag"`
}

// Range is an inclusive range of tags.
type Range struct {
	First uint8 `cbor:"1,keyasint" yaml:"first" toml:"first"`
	Last  uint8 `cbor:"2,keyasint" yaml:"last" toml:"last"`
}

// Format names a serialization format for manifests.
type Format string

const (
	FormatCBOR Format = "cbor"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Formats returns the supported formats.
func Formats() []Format {
	return []Format{FormatCBOR, FormatYAML, FormatTOML}
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats() {
		if string(f) == s {
			return f, nil
		}
	}
	return "", errors.InvalidInput(errors.PhaseValidate, fmt.Sprintf("unknown manifest format %q", s))
}

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("manifest: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// Build describes the compiled tag table.
func Build() *Manifest {
	m := &Manifest{
		Version:  Version,
		Reserved: []Range{{First: opcode.ReservedFirst, Last: opcode.ReservedLast}},
	}
	for _, op := range opcode.All() {
		m.Entries = append(m.Entries, Entry{
			Tag:   opcode.Encode(op),
			Name:  op.String(),
			Group: op.Group().String(),
			Imm:   op.Imm().String(),
		})
	}
	return m
}

// Marshal serializes m. CBOR output is canonical, so equal manifests
// produce identical bytes.
func Marshal(m *Manifest, format Format) ([]byte, error) {
	switch format {
	case FormatCBOR:
		return cborEncMode.Marshal(m)
	case FormatYAML:
		return yaml.Marshal(m)
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(m); err != nil {
			return nil, errors.Wrap(errors.PhaseEncode, errors.KindInvalidData, err, "encode toml manifest")
		}
		return buf.Bytes(), nil
	default:
		return nil, errors.InvalidInput(errors.PhaseEncode, fmt.Sprintf("unknown manifest format %q", format))
	}
}

// Unmarshal parses a manifest written by Marshal.
func Unmarshal(data []byte, format Format) (*Manifest, error) {
	var m Manifest
	var err error
	switch format {
	case FormatCBOR:
		err = cbor.Unmarshal(data, &m)
	case FormatYAML:
		err = yaml.Unmarshal(data, &m)
	case FormatTOML:
		err = toml.Unmarshal(data, &m)
	default:
		return nil, errors.InvalidInput(errors.PhaseDecode, fmt.Sprintf("unknown manifest format %q", format))
	}
	if err != nil {
		return nil, errors.Wrap(errors.PhaseDecode, errors.KindInvalidData, err, fmt.Sprintf("decode %s manifest", format))
	}
	return &m, nil
}

// Verify checks that m describes exactly the compiled tag table: same
// version, every tag bound to the same name, group and operand kind, no
// missing or extra tags, and the same reserved ranges.
func Verify(m *Manifest) error {
	if m.Version != Version {
		return mismatch("version", "version %d, want %d", m.Version, Version)
	}

	seen := make(map[uint8]bool, len(m.Entries))
	for _, e := range m.Entries {
		path := fmt.Sprintf("entries.%d", e.Tag)
		if seen[e.Tag] {
			return mismatch(path, "tag %d listed twice", e.Tag)
		}
		seen[e.Tag] = true

		op, err := opcode.Decode(e.Tag)
		if err != nil {
			return mismatch(path, "tag %d (%s) is not assigned", e.Tag, e.Name)
		}
		if op.String() != e.Name {
			return mismatch(path, "tag %d is %s, manifest says %s", e.Tag, op, e.Name)
		}
		if op.Group().String() != e.Group {
			return mismatch(path, "%s is in group %s, manifest says %s", op, op.Group(), e.Group)
		}
		if op.Imm().String() != e.Imm {
			return mismatch(path, "%s takes %s, manifest says %s", op, op.Imm(), e.Imm)
		}
	}
	if len(seen) != opcode.Count() {
		for _, op := range opcode.All() {
			if !seen[opcode.Encode(op)] {
				return mismatch("entries", "%s (tag %d) missing", op, opcode.Encode(op))
			}
		}
	}

	want := Build().Reserved
	if len(m.Reserved) != len(want) {
		return mismatch("reserved", "%d reserved ranges, want %d", len(m.Reserved), len(want))
	}
	for i, r := range m.Reserved {
		if r != want[i] {
			return mismatch("reserved", "range %d-%d, want %d-%d", r.First, r.Last, want[i].First, want[i].Last)
		}
	}
	return nil
}

func mismatch(path, format string, args ...any) error {
	return errors.New(errors.PhaseValidate, errors.KindInvalidData).
		Path(path).
		Detail(format, args...).
		Build()
}
