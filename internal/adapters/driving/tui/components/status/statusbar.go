// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/curata/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/curata/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/curata/internal/core/domain"
)

// State represents the current application state for display.
type State string

const (
	StateReady   State = "ready"
	StateBusy    State = "busy"
	StateNotice  State = "notice"
	StateWarning State = "warning"
	StateError   State = "error"
)

// Bar displays application status and keybinding hints.
// While busy it animates a spinner next to the message.
type Bar struct {
	styles   *styles.Styles
	spinner  spinner.Model
	bindings []key.Binding
	state    State
	message  string
	position string
	width    int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Title

	return &Bar{
		styles:   s,
		spinner:  sp,
		bindings: km.ShortHelp(),
		state:    StateReady,
		width:    80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update advances the spinner while busy. Other messages are ignored.
func (s *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	tick, ok := msg.(spinner.TickMsg)
	if !ok || s.state != StateBusy {
		return s, nil
	}
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(tick)
	return s, cmd
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (s *Bar) renderLeft() string {
	var left string
	switch s.state {
	case StateBusy:
		left = s.spinner.View() + " " + s.styles.Muted.Render(s.message)
	case StateError:
		left = s.styles.Error.Render("Error: " + s.message)
	case StateWarning:
		left = s.styles.Warning.Render(s.message)
	case StateNotice:
		left = s.styles.Success.Render(s.message)
	default:
		left = s.styles.Muted.Render("Ready")
	}
	if s.position != "" {
		left = s.styles.Normal.Render(s.position) + "  " + left
	}
	return left
}

func (s *Bar) renderRight() string {
	hints := make([]string, 0, len(s.bindings))
	for _, b := range s.bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetBusy shows message with a spinner and returns the command that starts it.
func (s *Bar) SetBusy(message string) tea.Cmd {
	s.state = StateBusy
	s.message = message
	return s.spinner.Tick
}

// SetNotice shows an informational message.
func (s *Bar) SetNotice(message string) {
	s.state = StateNotice
	s.message = message
}

// SetWarning shows a message needing the operator's attention.
func (s *Bar) SetWarning(message string) {
	s.state = StateWarning
	s.message = message
}

// SetError shows the operator-facing message for err.
func (s *Bar) SetError(err error) {
	s.state = StateError
	s.message = domain.UserMessage(err)
}

// SetPosition sets the cursor readout, e.g. "3/12".
func (s *Bar) SetPosition(position string) {
	s.position = position
}

// SetBindings replaces the keybinding hints.
func (s *Bar) SetBindings(bindings []key.Binding) {
	s.bindings = bindings
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// Busy reports whether the spinner is running.
func (s *Bar) Busy() bool {
	return s.state == StateBusy
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the status bar to default state.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
}
