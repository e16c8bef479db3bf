package ast

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"
)

// Fprint writes an indented listing of body to w, one node per line.
func Fprint(w io.Writer, body []Node) error {
	p := &printer{w: w}
	p.body(body, 0)
	return p.err
}

// Sprint returns the listing produced by Fprint.
func Sprint(body []Node) string {
	var b strings.Builder
	_ = Fprint(&b, body)
	return b.String()
}

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) line(depth int, format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, "%s%s\n", strings.Repeat("  ", depth), fmt.Sprintf(format, args...))
}

func (p *printer) body(body []Node, depth int) {
	for _, n := range body {
		switch n := n.(type) {
		case Instruction:
			if n.Imm == nil {
				p.line(depth, "%s", n.Op)
			} else {
				p.line(depth, "%s %s", n.Op, formatImm(n.Imm))
			}
		case IfElse:
			p.line(depth, "if.true")
			p.body(n.Then, depth+1)
			if len(n.Else) > 0 {
				p.line(depth, "else")
				p.body(n.Else, depth+1)
			}
			p.line(depth, "end")
		case Repeat:
			p.line(depth, "repeat.%d", n.Count)
			p.body(n.Body, depth+1)
			p.line(depth, "end")
		case While:
			p.line(depth, "while.true")
			p.body(n.Body, depth+1)
			p.line(depth, "end")
		default:
			p.line(depth, "<%T>", n)
		}
	}
}

func formatImm(imm any) string {
	switch v := imm.(type) {
	case ProcedureID:
		return "0x" + hex.EncodeToString(v[:])
	case Word:
		return formatFelts(v[:])
	case Digest:
		return formatFelts(v[:])
	case []Felt:
		return formatFelts(v)
	default:
		return fmt.Sprint(v)
	}
}

func formatFelts(fs []Felt) string {
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = fmt.Sprint(uint64(f))
	}
	return "[" + strings.Join(parts, " ") + "]"
}
