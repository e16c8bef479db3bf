package main

import (
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/masm/ast"
	"github.com/wippyai/masm/cache"
	"github.com/wippyai/masm/config"
	"github.com/wippyai/masm/manifest"
	"github.com/wippyai/masm/opcode"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	nameStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#98FB98"))
	immStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB"))
	tagStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
)

// output writes listings, styled only when stdout is a terminal.
type output struct {
	w      io.Writer
	styled bool
}

func (o *output) render(s lipgloss.Style, text string) string {
	if !o.styled {
		return text
	}
	return s.Render(text)
}

func main() {
	var (
		list        = flag.Bool("list", false, "List assigned opcodes")
		group       = flag.String("group", "", "Restrict -list to one group")
		tag         = flag.String("tag", "", "Decode a tag byte (decimal or 0x hex)")
		name        = flag.String("name", "", "Encode an opcode name")
		decode      = flag.String("decode", "", "Decode a hex-encoded body and print it")
		export      = flag.String("export", "", "Export the tag table manifest (cbor, yaml, toml)")
		outFile     = flag.String("o", "", "Output file for -export (default stdout)")
		verify      = flag.String("verify", "", "Verify a manifest file against the tag table")
		cached      = flag.String("cached", "", "Show the cached body for a source file; with -decode, store it")
		configFile  = flag.String("config", "", "Configuration file (default "+config.FileName+" if present)")
		interactive = flag.Bool("i", false, "Interactive opcode browser")
	)
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fatal(err)
	}
	logger, err := cfg.NewLogger()
	if err != nil {
		fatal(err)
	}
	defer logger.Sync()
	ast.SetLogger(logger.Named("ast"))
	cache.SetLogger(logger.Named("cache"))

	out := &output{w: os.Stdout, styled: term.IsTerminal(int(os.Stdout.Fd()))}

	switch {
	case *interactive:
		err = runInteractive()
	case *list:
		err = listOpcodes(out, *group)
	case *tag != "":
		err = showTag(out, *tag)
	case *name != "":
		err = showName(out, *name)
	case *export != "":
		err = exportManifest(*export, *outFile)
	case *verify != "":
		err = verifyManifest(out, *verify)
	case *cached != "":
		err = runCached(out, cfg, *cached, *decode)
	case *decode != "":
		err = decodeBody(out, *decode)
	default:
		usage()
		os.Exit(1)
	}
	if err != nil {
		logger.Debug("command failed", zap.Error(err))
		fatal(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: masm -list [-group name]")
	fmt.Fprintln(os.Stderr, "       masm -tag <byte> | -name <opcode>")
	fmt.Fprintln(os.Stderr, "       masm -decode <hex>")
	fmt.Fprintln(os.Stderr, "       masm -export cbor|yaml|toml [-o file]")
	fmt.Fprintln(os.Stderr, "       masm -verify <manifest> (format from extension)")
	fmt.Fprintln(os.Stderr, "       masm -cached <source> [-decode <hex>]")
	fmt.Fprintln(os.Stderr, "       masm -i  (interactive mode)")
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func listOpcodes(out *output, groupName string) error {
	groups := opcode.Groups()
	if groupName != "" {
		g, ok := opcode.ParseGroup(groupName)
		if !ok {
			return fmt.Errorf("unknown group %q", groupName)
		}
		groups = []opcode.Group{g}
	}

	for _, g := range groups {
		lo, hi, _ := g.Range()
		fmt.Fprintf(out.w, "%s\n", out.render(headerStyle, fmt.Sprintf("%s (%d-%d)", g, lo, hi)))
		for _, op := range opcode.All() {
			if op.Group() != g {
				continue
			}
			fmt.Fprintln(out.w, formatOpcode(out, op))
		}
		fmt.Fprintln(out.w)
	}
	if groupName == "" {
		fmt.Fprintf(out.w, "%d assigned, %d-%d reserved\n", opcode.Count(), opcode.ReservedFirst, opcode.ReservedLast)
	}
	return nil
}

func formatOpcode(out *output, op opcode.OpCode) string {
	line := fmt.Sprintf("  %s %s",
		out.render(tagStyle, fmt.Sprintf("%3d 0x%02x", opcode.Encode(op), opcode.Encode(op))),
		out.render(nameStyle, fmt.Sprintf("%-24s", op)))
	if imm := op.Imm(); imm != opcode.ImmNone {
		line += " " + out.render(immStyle, imm.String())
	}
	return strings.TrimRight(line, " ")
}

func showTag(out *output, s string) error {
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return fmt.Errorf("tag %q: %w", s, err)
	}
	op, err := opcode.Decode(byte(v))
	if err != nil {
		if opcode.IsReserved(byte(v)) {
			return fmt.Errorf("%w (reserved range %d-%d)", err, opcode.ReservedFirst, opcode.ReservedLast)
		}
		return err
	}
	fmt.Fprintln(out.w, formatOpcode(out, op))
	return nil
}

func showName(out *output, name string) error {
	op, ok := opcode.Lookup(name)
	if !ok {
		return fmt.Errorf("unknown opcode %q", name)
	}
	fmt.Fprintln(out.w, formatOpcode(out, op))
	return nil
}

func parseHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.Join(strings.Fields(s), ""), "0x")
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode hex: %w", err)
	}
	return data, nil
}

func decodeBody(out *output, s string) error {
	data, err := parseHex(s)
	if err != nil {
		return err
	}
	body, err := ast.DecodeBody(data)
	if err != nil {
		if tag, ok := opcode.InvalidTag(err); ok {
			return fmt.Errorf("invalid tag 0x%02x: %w", tag, err)
		}
		return err
	}
	return ast.Fprint(out.w, body)
}

func exportManifest(formatName, path string) error {
	format, err := manifest.ParseFormat(formatName)
	if err != nil {
		return err
	}
	data, err := manifest.Marshal(manifest.Build(), format)
	if err != nil {
		return err
	}
	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func formatFromPath(path string) (manifest.Format, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "yml" {
		ext = "yaml"
	}
	return manifest.ParseFormat(ext)
}

func verifyManifest(out *output, path string) error {
	format, err := formatFromPath(path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	m, err := manifest.Unmarshal(data, format)
	if err != nil {
		return err
	}
	if err := manifest.Verify(m); err != nil {
		return err
	}
	fmt.Fprintf(out.w, "%s: %d entries match\n", path, len(m.Entries))
	return nil
}

func runCached(out *output, cfg *config.Config, sourcePath, bodyHex string) error {
	ctx := context.Background()

	src, err := os.ReadFile(sourcePath)
	if err != nil {
		return fmt.Errorf("read %s: %w", sourcePath, err)
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Cache.Path), 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	c, err := cache.Open(ctx, cfg.Cache.Path)
	if err != nil {
		return err
	}
	defer c.Close()

	if bodyHex != "" {
		data, err := parseHex(bodyHex)
		if err != nil {
			return err
		}
		body, err := ast.DecodeBody(data)
		if err != nil {
			return err
		}
		if err := c.Put(ctx, src, body); err != nil {
			return err
		}
		fmt.Fprintf(out.w, "stored %s\n", cache.Key(src))
		return nil
	}

	body, ok, err := c.Get(ctx, src)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s: not cached", sourcePath)
	}
	return ast.Fprint(out.w, body)
}
