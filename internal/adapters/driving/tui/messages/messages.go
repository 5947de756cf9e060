// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/curata/internal/core/domain"
	"github.com/custodia-labs/curata/internal/core/ports/driving"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewDrafts curates the unpublished collection.
	ViewDrafts
	// ViewPublished browses the published collection.
	ViewPublished
	// ViewTags manages the tag registry.
	ViewTags
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewDrafts:
		return "drafts"
	case ViewPublished:
		return "published"
	case ViewTags:
		return "tags"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// CollectionLoaded carries a freshly listed collection and its cursor.
type CollectionLoaded struct {
	Kind   domain.CollectionKind
	Posts  []domain.Post
	Cursor *driving.CursorView
	Err    error
}

// CursorMoved carries the result of a navigation step.
type CursorMoved struct {
	Kind   domain.CollectionKind
	Cursor *driving.CursorView
	Err    error
}

// ActionCompleted reports a mutating action on a collection.
// Status is shown to the operator; Warning marks it as needing attention.
type ActionCompleted struct {
	Kind    domain.CollectionKind
	Status  string
	Warning bool
	Err     error
}

// CollectionChanged is sent when a collection file was edited on disk.
type CollectionChanged struct {
	Kind domain.CollectionKind
}

// WatchFailed is sent when the file watcher reports an error.
type WatchFailed struct {
	Err error
}

// TagsLoaded carries the tag registry contents.
type TagsLoaded struct {
	Tags []domain.Tag
	Err  error
}

// TagsChanged reports an add or remove on the tag registry.
type TagsChanged struct {
	Status string
	Err    error
}

// ErrorOccurred is sent when an error happens.
type ErrorOccurred struct {
	Err error
}

// Quit is sent to exit the application.
type Quit struct{}
