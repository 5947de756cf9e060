package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/curata/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/curata/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/curata/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/curata/internal/adapters/driving/tui/views/curate"
	"github.com/custodia-labs/curata/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/curata/internal/adapters/driving/tui/views/tags"
	"github.com/custodia-labs/curata/internal/core/domain"
	"github.com/custodia-labs/curata/internal/core/ports/driven"
)

// App is the root Bubbletea model for the TUI.
// It follows the Elm architecture: Model, Update, View.
type App struct {
	// ports provides access to the services.
	ports *Ports

	// ctx is the context for service calls.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	menuView      *menu.View
	draftsView    *curate.View
	publishedView *curate.View
	tagsView      *tags.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// watchErr holds the last watcher failure.
	watchErr error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	svc := curate.Services{
		Lifecycle: ports.Lifecycle,
		Tags:      ports.Tags,
		Export:    ports.Export,
		Media:     ports.Media,
	}

	return &App{
		ports:         ports,
		ctx:           context.Background(),
		styles:        s,
		keymap:        km,
		menuView:      menu.NewView(s),
		draftsView:    curate.NewView(s, km, domain.CollectionUnpublished, svc),
		publishedView: curate.NewView(s, km, domain.CollectionPublished, svc),
		tagsView:      tags.NewView(s, km, ports.Tags),
		currentView:   messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.draftsView.SetContext(ctx)
	a.publishedView.SetContext(ctx)
	a.tagsView.SetContext(ctx)
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("curata"),
		a.watch(),
	)
}

// watch waits for the next watcher event. It is re-armed after each one.
func (a *App) watch() tea.Cmd {
	w := a.ports.Watcher
	if w == nil {
		return nil
	}
	return waitForChange(w)
}

func waitForChange(w driven.ChangeWatcher) tea.Cmd {
	return func() tea.Msg {
		select {
		case kind, ok := <-w.Changes():
			if !ok {
				return nil
			}
			return messages.CollectionChanged{Kind: kind}
		case err, ok := <-w.Errors():
			if !ok {
				return nil
			}
			return messages.WatchFailed{Err: err}
		}
	}
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a, a.forwardKey(msg)

	case messages.ViewChanged:
		a.currentView = msg.View
		switch msg.View {
		case messages.ViewDrafts:
			return a, a.draftsView.Init()
		case messages.ViewPublished:
			return a, a.publishedView.Init()
		case messages.ViewTags:
			return a, a.tagsView.Init()
		case messages.ViewMenu, messages.ViewHelp:
		}
		return a, nil

	case messages.CollectionChanged:
		a.watchErr = nil
		view := a.collectionView(msg.Kind)
		if view == nil {
			return a, a.watch()
		}
		_, cmd = view.Update(msg)
		return a, tea.Batch(cmd, a.watch())

	case messages.WatchFailed:
		a.watchErr = msg.Err
		return a, a.watch()

	case messages.CollectionLoaded:
		return a, a.routeCollection(msg.Kind, msg)

	case messages.CursorMoved:
		return a, a.routeCollection(msg.Kind, msg)

	case messages.ActionCompleted:
		return a, a.routeCollection(msg.Kind, msg)

	case messages.TagsLoaded, messages.TagsChanged:
		a.tagsView, cmd = a.tagsView.Update(msg)
		return a, cmd

	case spinner.TickMsg:
		var draftsCmd, publishedCmd tea.Cmd
		a.draftsView, draftsCmd = a.draftsView.Update(msg)
		a.publishedView, publishedCmd = a.publishedView.Update(msg)
		return a, tea.Batch(draftsCmd, publishedCmd)

	case messages.Quit:
		return a, tea.Quit
	}

	return a, nil
}

func (a *App) forwardKey(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewDrafts:
		a.draftsView, cmd = a.draftsView.Update(msg)
	case messages.ViewPublished:
		a.publishedView, cmd = a.publishedView.Update(msg)
	case messages.ViewTags:
		a.tagsView, cmd = a.tagsView.Update(msg)
	case messages.ViewHelp:
		switch {
		case msg.Type == tea.KeyEsc:
			a.currentView = messages.ViewMenu
		case keymap.Matches(msg.String(), a.keymap.Quit):
			return tea.Quit
		}
	}
	return cmd
}

func (a *App) collectionView(kind domain.CollectionKind) *curate.View {
	switch kind {
	case domain.CollectionUnpublished:
		return a.draftsView
	case domain.CollectionPublished:
		return a.publishedView
	}
	return nil
}

func (a *App) routeCollection(kind domain.CollectionKind, msg tea.Msg) tea.Cmd {
	view := a.collectionView(kind)
	if view == nil {
		return nil
	}
	_, cmd := view.Update(msg)
	return cmd
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var out string
	switch a.currentView {
	case messages.ViewDrafts:
		out = a.draftsView.View()
	case messages.ViewPublished:
		out = a.publishedView.View()
	case messages.ViewTags:
		out = a.tagsView.View()
	case messages.ViewHelp:
		out = a.viewHelp()
	default:
		out = a.menuView.View()
	}

	if a.watchErr != nil {
		out += "\n" + a.styles.Warning.Render("File watcher: "+a.watchErr.Error())
	}
	return out
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back to Menu
  ctrl+c      Quit

Drafts and Published:
  n/→, p/←    Next / previous post
  j/k         Next / previous post
  t           Set tag (blank for Uncategorised)
  d           Delete post (asks to confirm)
  R           Reload from disk
  x           Export (ready drafts, or all published)
  v           Check the post's media exists

Drafts only:
  P           Publish the post under the cursor
  r           Toggle ready to publish

Tags:
  a           Add tag
  d           Remove selected tag

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// WatchErr returns the last watcher failure.
func (a *App) WatchErr() error {
	return a.watchErr
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.draftsView.SetDimensions(width, height)
	a.publishedView.SetDimensions(width, height)
	a.tagsView.SetDimensions(width, height)
}
