// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help shows the help view.
	Help key.Binding

	// Back returns to the previous view.
	Back key.Binding

	// Up navigates up in a list.
	Up key.Binding

	// Down navigates down in a list.
	Down key.Binding

	// Select confirms a selection.
	Select key.Binding

	// Next advances the collection cursor.
	Next key.Binding

	// Previous moves the collection cursor back.
	Previous key.Binding

	// Publish moves the current draft to published.
	Publish key.Binding

	// Delete removes the current post or tag.
	Delete key.Binding

	// Tag sets the tag of the current post.
	Tag key.Binding

	// Ready toggles the ready-to-publish flag.
	Ready key.Binding

	// Reload re-reads the collection from disk.
	Reload key.Binding

	// Export writes the export file for the collection.
	Export key.Binding

	// Validate checks that the current post's media exists.
	Validate key.Binding

	// Add registers a new tag.
	Add key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Next: key.NewBinding(
			key.WithKeys("n", "right", "l"),
			key.WithHelp("n/→", "next"),
		),
		Previous: key.NewBinding(
			key.WithKeys("p", "left", "h"),
			key.WithHelp("p/←", "previous"),
		),
		Publish: key.NewBinding(
			key.WithKeys("P"),
			key.WithHelp("P", "publish"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		Tag: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "tag"),
		),
		Ready: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "toggle ready"),
		),
		Reload: key.NewBinding(
			key.WithKeys("R", "ctrl+r"),
			key.WithHelp("R", "reload"),
		),
		Export: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "export"),
		),
		Validate: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "check media"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Help}
}

// CurateHelp returns keybindings for a collection view.
// Publish and Ready only apply to drafts.
func (k *KeyMap) CurateHelp(drafts bool) []key.Binding {
	if drafts {
		return []key.Binding{k.Next, k.Previous, k.Publish, k.Ready, k.Tag, k.Delete, k.Back}
	}
	return []key.Binding{k.Next, k.Previous, k.Tag, k.Delete, k.Back}
}

// TagsHelp returns keybindings for the tag registry view.
func (k *KeyMap) TagsHelp() []key.Binding {
	return []key.Binding{k.Add, k.Delete, k.Back}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Next, k.Previous, k.Reload},
		{k.Publish, k.Ready, k.Tag, k.Delete},
		{k.Export, k.Validate, k.Add},
		{k.Back, k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
