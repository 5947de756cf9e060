// Package tags provides the tag registry view for the TUI.
package tags

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/curata/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/curata/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/curata/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/curata/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/curata/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/curata/internal/core/domain"
	"github.com/custodia-labs/curata/internal/core/ports/driving"
)

// View lists registered tags and adds or removes them.
type View struct {
	ctx     context.Context
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	service driving.TagService

	tags     []domain.Tag
	selected int
	adding   bool
	field    *input.Field
	bar      *status.Bar

	width  int
	height int
	ready  bool
}

// NewView creates a new tag registry view.
func NewView(s *styles.Styles, km *keymap.KeyMap, service driving.TagService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	bar := status.NewBar(s, km)
	bar.SetBindings(km.TagsHelp())

	return &View{
		ctx:     context.Background(),
		styles:  s,
		keymap:  km,
		service: service,
		field:   input.NewField(s, "New tag", ""),
		bar:     bar,
		width:   80,
		height:  24,
	}
}

// SetContext sets the context used for service calls.
func (v *View) SetContext(ctx context.Context) {
	v.ctx = ctx
}

// Init loads the registry.
func (v *View) Init() tea.Cmd {
	v.adding = false
	v.field.Reset()
	return v.load()
}

func (v *View) load() tea.Cmd {
	ctx, service := v.ctx, v.service
	return func() tea.Msg {
		tags, err := service.List(ctx)
		return messages.TagsLoaded{Tags: tags, Err: err}
	}
}

// Update handles messages for the view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)

	case messages.TagsLoaded:
		if msg.Err != nil {
			v.bar.SetError(msg.Err)
			return v, nil
		}
		v.tags = msg.Tags
		if v.selected >= len(v.tags) {
			v.selected = max(len(v.tags)-1, 0)
		}

	case messages.TagsChanged:
		if msg.Err != nil {
			v.bar.SetError(msg.Err)
		} else {
			v.bar.SetNotice(msg.Status)
		}
		return v, v.load()

	case tea.KeyMsg:
		if v.adding {
			return v.handleAddKey(msg)
		}
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	km := v.keymap
	switch key := msg.String(); {
	case keymap.Matches(key, km.Back):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewMenu} }
	case keymap.Matches(key, km.Quit):
		return v, tea.Quit
	case keymap.Matches(key, km.Up):
		if v.selected > 0 {
			v.selected--
		}
	case keymap.Matches(key, km.Down):
		if v.selected < len(v.tags)-1 {
			v.selected++
		}
	case keymap.Matches(key, km.Add):
		v.adding = true
		return v, v.field.Focus()
	case keymap.Matches(key, km.Delete):
		if len(v.tags) == 0 {
			return v, nil
		}
		return v, v.remove(v.tags[v.selected].Name)
	}
	return v, nil
}

func (v *View) handleAddKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	//nolint:exhaustive // only enter and esc leave add mode
	switch msg.Type {
	case tea.KeyEnter:
		name := strings.TrimSpace(v.field.Value())
		v.field.Reset()
		v.adding = false
		if name == "" {
			return v, nil
		}
		return v, v.add(name)
	case tea.KeyEsc:
		v.field.Reset()
		v.adding = false
		return v, nil
	default:
		var cmd tea.Cmd
		v.field, cmd = v.field.Update(msg)
		return v, cmd
	}
}

func (v *View) add(name string) tea.Cmd {
	ctx, service := v.ctx, v.service
	return func() tea.Msg {
		if err := service.Add(ctx, name); err != nil {
			return messages.TagsChanged{Err: err}
		}
		return messages.TagsChanged{Status: fmt.Sprintf("Added tag %q", name)}
	}
}

func (v *View) remove(name string) tea.Cmd {
	ctx, service := v.ctx, v.service
	return func() tea.Msg {
		if err := service.Remove(ctx, name); err != nil {
			return messages.TagsChanged{Err: err}
		}
		return messages.TagsChanged{Status: fmt.Sprintf("Removed tag %q", name)}
	}
}

// View renders the registry.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render(fmt.Sprintf("Tags (%d)", len(v.tags))))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("Posts keep their tag when it is removed here."))
	b.WriteString("\n\n")

	if len(v.tags) == 0 {
		b.WriteString(v.styles.Muted.Render("No tags registered"))
		b.WriteString("\n")
	}
	for i, tag := range v.tags {
		if i == v.selected {
			b.WriteString("> " + v.styles.Selected.Render(tag.Name))
		} else {
			b.WriteString("  " + v.styles.Normal.Render(tag.Name))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if v.adding {
		b.WriteString(v.field.View())
		b.WriteString("\n")
	}
	b.WriteString(v.bar.View())
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.bar.SetWidth(width)
	v.field.SetWidth(width / 2)
}

// Tags returns the loaded tags.
func (v *View) Tags() []domain.Tag {
	return v.tags
}

// Selected returns the highlighted index.
func (v *View) Selected() int {
	return v.selected
}

// Adding reports whether the add field is open.
func (v *View) Adding() bool {
	return v.adding
}

// Status returns the status bar.
func (v *View) Status() *status.Bar {
	return v.bar
}
