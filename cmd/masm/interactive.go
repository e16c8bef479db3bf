package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/masm/opcode"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// pageSize is the number of rows shown in the list view.
const pageSize = 20

type modelState int

const (
	stateBrowse modelState = iota
	stateDetails
)

type interactiveModel struct {
	filter   textinput.Model
	matches  []opcode.OpCode
	selected int
	offset   int
	state    modelState
	styled   *output
}

func newInteractiveModel() *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "name, tag or group"
	ti.Prompt = "filter: "
	ti.Width = 40
	ti.Focus()

	m := &interactiveModel{
		filter: ti,
		state:  stateBrowse,
		styled: &output{styled: true},
	}
	m.applyFilter()
	return m
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

// applyFilter keeps opcodes whose name or group contains the query, or whose
// tag equals it when the query parses as a number.
func (m *interactiveModel) applyFilter() {
	q := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	tag, tagErr := strconv.ParseUint(q, 0, 8)

	m.matches = m.matches[:0]
	for _, op := range opcode.All() {
		switch {
		case q == "":
		case tagErr == nil && uint64(opcode.Encode(op)) == tag:
		case strings.Contains(strings.ToLower(op.String()), q):
		case strings.Contains(op.Group().String(), q):
		default:
			continue
		}
		m.matches = append(m.matches, op)
	}
	m.selected = 0
	m.offset = 0
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "up":
			if m.state == stateBrowse && m.selected > 0 {
				m.selected--
				if m.selected < m.offset {
					m.offset = m.selected
				}
			}
			return m, nil

		case "down":
			if m.state == stateBrowse && m.selected < len(m.matches)-1 {
				m.selected++
				if m.selected >= m.offset+pageSize {
					m.offset = m.selected - pageSize + 1
				}
			}
			return m, nil

		case "enter":
			switch m.state {
			case stateBrowse:
				if len(m.matches) > 0 {
					m.state = stateDetails
				}
			case stateDetails:
				m.state = stateBrowse
			}
			return m, nil

		case "esc":
			if m.state == stateDetails {
				m.state = stateBrowse
				return m, nil
			}
			if m.filter.Value() == "" {
				return m, tea.Quit
			}
			m.filter.SetValue("")
			m.applyFilter()
			return m, nil
		}
	}

	if m.state != stateBrowse {
		return m, nil
	}
	before := m.filter.Value()
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	if m.filter.Value() != before {
		m.applyFilter()
	}
	return m, cmd
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("MASM Opcodes"))
	fmt.Fprintf(&b, " %d assigned, %d-%d reserved\n\n", opcode.Count(), opcode.ReservedFirst, opcode.ReservedLast)

	switch m.state {
	case stateBrowse:
		b.WriteString(m.filter.View())
		b.WriteString("\n\n")
		if len(m.matches) == 0 {
			b.WriteString(errorStyle.Render(m.noMatch()))
			b.WriteString("\n")
		}
		end := min(m.offset+pageSize, len(m.matches))
		for i := m.offset; i < end; i++ {
			op := m.matches[i]
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + m.plainRow(op)))
			} else {
				b.WriteString(formatOpcode(m.styled, op))
			}
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "\n%d/%d  ", len(m.matches), opcode.Count())
		b.WriteString(helpStyle.Render("type to filter • ↑/↓ select • enter details • esc clear/quit"))

	case stateDetails:
		op := m.matches[m.selected]
		b.WriteString(m.details(op))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter/esc back • ctrl+c quit"))
	}

	return b.String()
}

func (m *interactiveModel) plainRow(op opcode.OpCode) string {
	return strings.TrimPrefix(formatOpcode(&output{}, op), "  ")
}

// noMatch explains an empty result, naming the reserved range when the
// query is a tag from it.
func (m *interactiveModel) noMatch() string {
	q := strings.TrimSpace(m.filter.Value())
	if v, err := strconv.ParseUint(q, 0, 8); err == nil {
		if _, err := opcode.Decode(byte(v)); err != nil {
			if opcode.IsReserved(byte(v)) {
				return fmt.Sprintf("tag %d is reserved", v)
			}
			return err.Error()
		}
	}
	return "no matching opcodes"
}

func (m *interactiveModel) details(op opcode.OpCode) string {
	var b strings.Builder
	tag := opcode.Encode(op)
	imm := op.Imm()
	lo, hi, _ := op.Group().Range()

	fmt.Fprintf(&b, "%s\n\n", nameStyle.Render(op.String()))
	fmt.Fprintf(&b, "  tag      %d (0x%02x)\n", tag, tag)
	fmt.Fprintf(&b, "  group    %s (%d-%d)\n", op.Group(), lo, hi)
	fmt.Fprintf(&b, "  operand  %s\n", immStyle.Render(imm.String()))
	switch size := imm.Size(); {
	case imm == opcode.ImmNone:
	case size >= 0:
		fmt.Fprintf(&b, "  size     %d bytes\n", size)
	case imm.IsControlFlow():
		fmt.Fprintf(&b, "  size     nested body\n")
	default:
		fmt.Fprintf(&b, "  size     u8 count prefix\n")
	}
	return b.String()
}

func runInteractive() error {
	p := tea.NewProgram(newInteractiveModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
