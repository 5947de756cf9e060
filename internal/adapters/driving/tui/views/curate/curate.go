// Package curate provides the collection curation view for the TUI.
// One view instance is bound to one collection: drafts or published.
package curate

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/curata/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/curata/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/curata/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/curata/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/curata/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/curata/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/curata/internal/core/domain"
	"github.com/custodia-labs/curata/internal/core/ports/driving"
)

// Services are the driving ports the view calls.
// Lifecycle is required; the rest disable their actions when nil.
type Services struct {
	Lifecycle driving.LifecycleService
	Tags      driving.TagService
	Export    driving.ExportService
	Media     driving.MediaService
}

// mode is the view's input mode.
type mode int

const (
	modeBrowse mode = iota
	modeTag
	modeConfirmDelete
)

// View curates a single collection.
type View struct {
	ctx      context.Context
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	kind     domain.CollectionKind
	services Services

	list     *list.PostList
	bar      *status.Bar
	tagField *input.Field

	mode   mode
	cursor *driving.CursorView
	width  int
	height int
	ready  bool
}

// NewView creates a curation view for kind.
func NewView(s *styles.Styles, km *keymap.KeyMap, kind domain.CollectionKind, services Services) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	bar := status.NewBar(s, km)
	bar.SetBindings(km.CurateHelp(kind == domain.CollectionUnpublished))

	return &View{
		ctx:      context.Background(),
		styles:   s,
		keymap:   km,
		kind:     kind,
		services: services,
		list:     list.NewPostList(s),
		bar:      bar,
		tagField: input.NewField(s, "Tag", domain.UncategorisedTag),
		width:    80,
		height:   24,
	}
}

// SetContext sets the context used for service calls.
func (v *View) SetContext(ctx context.Context) {
	v.ctx = ctx
}

// Init loads the collection.
func (v *View) Init() tea.Cmd {
	v.mode = modeBrowse
	return tea.Batch(v.bar.SetBusy("Loading"), v.load(-1))
}

// Update handles messages for the view.
//
//nolint:gocyclo // message dispatch
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		v.bar, cmd = v.bar.Update(msg)
		return v, cmd

	case messages.CollectionLoaded:
		if msg.Kind != v.kind {
			return v, nil
		}
		if msg.Err != nil {
			v.bar.SetError(msg.Err)
			return v, nil
		}
		if v.bar.Busy() {
			v.bar.Clear()
		}
		v.list.SetPosts(msg.Posts)
		v.setCursor(msg.Cursor)
		return v, nil

	case messages.CursorMoved:
		if msg.Kind != v.kind {
			return v, nil
		}
		if msg.Err != nil {
			v.bar.SetError(msg.Err)
			return v, nil
		}
		v.setCursor(msg.Cursor)
		if msg.Cursor != nil && !msg.Cursor.Moved {
			v.bar.SetNotice(capitalise(msg.Cursor.Notice))
		} else {
			v.bar.Clear()
		}
		return v, nil

	case messages.ActionCompleted:
		if msg.Kind != v.kind {
			return v, nil
		}
		switch {
		case msg.Err != nil:
			v.bar.SetError(msg.Err)
		case msg.Warning:
			v.bar.SetWarning(msg.Status)
		default:
			v.bar.SetNotice(msg.Status)
		}
		// A failed write keeps the in-memory change, so refresh either way.
		return v, v.load(-1)

	case messages.CollectionChanged:
		if msg.Kind != v.kind {
			return v, nil
		}
		return v, tea.Batch(v.bar.SetBusy("File changed, reloading"), v.reload(v.index()))

	case tea.KeyMsg:
		return v.handleKey(msg)
	}

	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch v.mode {
	case modeTag:
		return v.handleTagKey(msg)
	case modeConfirmDelete:
		v.mode = modeBrowse
		if msg.String() == "y" {
			return v, v.deleteCurrent()
		}
		v.bar.Clear()
		return v, nil
	case modeBrowse:
	}

	km := v.keymap
	key := msg.String()
	switch {
	case keymap.Matches(key, km.Back):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewMenu} }
	case keymap.Matches(key, km.Quit):
		return v, tea.Quit
	case keymap.Matches(key, km.Help):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewHelp} }
	case keymap.Matches(key, km.Next), keymap.Matches(key, km.Down):
		return v, v.move(v.services.Lifecycle.Next)
	case keymap.Matches(key, km.Previous), keymap.Matches(key, km.Up):
		return v, v.move(v.services.Lifecycle.Previous)
	case keymap.Matches(key, km.Reload):
		return v, tea.Batch(v.bar.SetBusy("Reloading"), v.reload(-1))
	}

	post := v.current()
	if post == nil {
		return v, nil
	}

	switch {
	case keymap.Matches(key, km.Publish) && v.drafts():
		return v, tea.Batch(v.bar.SetBusy("Publishing"), v.publish(post.Title))
	case keymap.Matches(key, km.Ready) && v.drafts():
		return v, v.setReady(!post.ReadyToPublish)
	case keymap.Matches(key, km.Tag):
		v.mode = modeTag
		if post.Tag != domain.UncategorisedTag {
			v.tagField.SetValue(post.Tag)
		}
		return v, v.tagField.Focus()
	case keymap.Matches(key, km.Delete):
		v.mode = modeConfirmDelete
		v.bar.SetWarning(fmt.Sprintf("Delete %q? (y/n)", post.Title))
		return v, nil
	case keymap.Matches(key, km.Export) && v.services.Export != nil:
		return v, tea.Batch(v.bar.SetBusy("Exporting"), v.export())
	case keymap.Matches(key, km.Validate) && v.services.Media != nil:
		return v, tea.Batch(v.bar.SetBusy("Checking media"), v.validate())
	}
	return v, nil
}

func (v *View) handleTagKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	//nolint:exhaustive // only enter and esc leave tag mode
	switch msg.Type {
	case tea.KeyEnter:
		tag := v.tagField.Value()
		v.tagField.Reset()
		v.mode = modeBrowse
		return v, v.setTag(tag)
	case tea.KeyEsc:
		v.tagField.Reset()
		v.mode = modeBrowse
		return v, nil
	default:
		var cmd tea.Cmd
		v.tagField, cmd = v.tagField.Update(msg)
		return v, cmd
	}
}

// load lists the collection and positions the cursor.
// keep seeks back to a previous index when it is still in range;
// otherwise the service's cursor is reported as is.
func (v *View) load(keep int) tea.Cmd {
	ctx, kind, lifecycle := v.ctx, v.kind, v.services.Lifecycle
	return func() tea.Msg {
		posts, err := lifecycle.List(ctx, kind)
		if err != nil {
			return messages.CollectionLoaded{Kind: kind, Err: err}
		}
		var cursor *driving.CursorView
		if keep > 0 && keep < len(posts) {
			cursor, err = lifecycle.Seek(ctx, kind, keep)
		} else {
			cursor, err = lifecycle.Current(ctx, kind)
		}
		return messages.CollectionLoaded{Kind: kind, Posts: posts, Cursor: cursor, Err: err}
	}
}

// reload re-reads the backing file, which resets the cursor, then loads.
func (v *View) reload(keep int) tea.Cmd {
	ctx, kind, lifecycle := v.ctx, v.kind, v.services.Lifecycle
	load := v.load(keep)
	return func() tea.Msg {
		if err := lifecycle.Reload(ctx, kind); err != nil {
			return messages.CollectionLoaded{Kind: kind, Err: err}
		}
		return load()
	}
}

type navigateFunc func(ctx context.Context, kind domain.CollectionKind) (*driving.CursorView, error)

func (v *View) move(step navigateFunc) tea.Cmd {
	ctx, kind := v.ctx, v.kind
	return func() tea.Msg {
		cursor, err := step(ctx, kind)
		return messages.CursorMoved{Kind: kind, Cursor: cursor, Err: err}
	}
}

func (v *View) publish(title string) tea.Cmd {
	ctx, kind, lifecycle := v.ctx, v.kind, v.services.Lifecycle
	return func() tea.Msg {
		result, err := lifecycle.Publish(ctx, title)
		if err != nil {
			return messages.ActionCompleted{Kind: kind, Err: err}
		}
		if result.Ambiguous() {
			return messages.ActionCompleted{
				Kind:    kind,
				Status:  fmt.Sprintf("Published the first of %d posts titled %q", result.Matches, title),
				Warning: true,
			}
		}
		return messages.ActionCompleted{Kind: kind, Status: fmt.Sprintf("Published %q", title)}
	}
}

func (v *View) setReady(ready bool) tea.Cmd {
	ctx, kind, index, lifecycle := v.ctx, v.kind, v.index(), v.services.Lifecycle
	return func() tea.Msg {
		if err := lifecycle.SetReady(ctx, index, ready); err != nil {
			return messages.ActionCompleted{Kind: kind, Err: err}
		}
		if ready {
			return messages.ActionCompleted{Kind: kind, Status: "Marked ready to publish"}
		}
		return messages.ActionCompleted{Kind: kind, Status: "Marked not ready"}
	}
}

func (v *View) setTag(tag string) tea.Cmd {
	ctx, kind, index := v.ctx, v.kind, v.index()
	lifecycle, tags := v.services.Lifecycle, v.services.Tags
	return func() tea.Msg {
		if err := lifecycle.SetTag(ctx, kind, index, tag); err != nil {
			return messages.ActionCompleted{Kind: kind, Err: err}
		}
		name := domain.NormaliseTag(tag)
		if tags != nil && name != domain.UncategorisedTag {
			if ok, err := tags.Exists(ctx, name); err == nil && !ok {
				return messages.ActionCompleted{
					Kind:    kind,
					Status:  fmt.Sprintf("Tagged %q, which is not in the registry", name),
					Warning: true,
				}
			}
		}
		return messages.ActionCompleted{Kind: kind, Status: fmt.Sprintf("Tagged %q", name)}
	}
}

func (v *View) deleteCurrent() tea.Cmd {
	ctx, kind, index, lifecycle := v.ctx, v.kind, v.index(), v.services.Lifecycle
	title := ""
	if post := v.current(); post != nil {
		title = post.Title
	}
	return func() tea.Msg {
		if err := lifecycle.Delete(ctx, kind, index); err != nil {
			return messages.ActionCompleted{Kind: kind, Err: err}
		}
		return messages.ActionCompleted{Kind: kind, Status: fmt.Sprintf("Deleted %q", title)}
	}
}

func (v *View) export() tea.Cmd {
	ctx, kind, exporter := v.ctx, v.kind, v.services.Export
	return func() tea.Msg {
		var (
			result *driving.ExportResult
			err    error
		)
		if kind == domain.CollectionUnpublished {
			result, err = exporter.ExportReady(ctx)
		} else {
			result, err = exporter.ExportPublished(ctx)
		}
		if err != nil {
			return messages.ActionCompleted{Kind: kind, Err: err}
		}
		return messages.ActionCompleted{
			Kind:   kind,
			Status: fmt.Sprintf("Exported %d posts to %s", result.Count, result.Path),
		}
	}
}

func (v *View) validate() tea.Cmd {
	ctx, kind, index, media := v.ctx, v.kind, v.index(), v.services.Media
	return func() tea.Msg {
		result, err := media.Validate(ctx, kind, index)
		if err != nil {
			return messages.ActionCompleted{Kind: kind, Err: err}
		}
		if !result.Exists {
			return messages.ActionCompleted{
				Kind:    kind,
				Status:  fmt.Sprintf("Media missing: %s/%s", result.Bucket, result.Key),
				Warning: true,
			}
		}
		return messages.ActionCompleted{Kind: kind, Status: "Media found: " + result.Locator}
	}
}

func (v *View) setCursor(cursor *driving.CursorView) {
	if cursor == nil {
		return
	}
	v.cursor = cursor
	v.list.SetCursor(cursor.Index)
	if cursor.Total == 0 {
		v.bar.SetPosition("0/0")
		return
	}
	v.bar.SetPosition(fmt.Sprintf("%d/%d", cursor.Index+1, cursor.Total))
}

func (v *View) current() *domain.Post {
	if v.cursor == nil {
		return nil
	}
	return v.cursor.Post
}

func (v *View) index() int {
	if v.cursor == nil {
		return 0
	}
	return v.cursor.Index
}

func (v *View) drafts() bool {
	return v.kind == domain.CollectionUnpublished
}

// View renders the list beside the post card.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	title := "Drafts"
	if !v.drafts() {
		title = "Published"
	}
	b.WriteString(v.styles.Title.Render(fmt.Sprintf("%s (%d)", title, v.list.Count())))
	b.WriteString("\n\n")

	listWidth := v.width / 3
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(listWidth).Render(v.list.View()),
		v.renderCard(v.width-listWidth-4),
	)
	b.WriteString(body)
	b.WriteString("\n\n")

	if v.mode == modeTag {
		b.WriteString(v.tagField.View())
		b.WriteString("\n")
	}
	b.WriteString(v.bar.View())
	return b.String()
}

func (v *View) renderCard(width int) string {
	post := v.current()
	if post == nil {
		return v.styles.Card.Width(width).Render(v.styles.Muted.Render("Nothing here yet"))
	}

	ready := v.styles.Muted.Render("no")
	if post.ReadyToPublish {
		ready = v.styles.Ready.Render("yes")
	}
	media := v.styles.Muted.Render("(none)")
	if post.HasMedia() {
		media = v.styles.Normal.Render(post.MediaLocator)
	}

	rows := []string{
		v.styles.Subtitle.Render(post.Title),
		"",
		v.row("Type", v.styles.Normal.Render(post.Type)),
		v.row("Tag", v.styles.Tag.Render(post.DisplayTag())),
		v.row("Media", media),
	}
	if v.drafts() {
		rows = append(rows, v.row("Ready", ready))
	}
	rows = append(rows,
		"",
		v.styles.Label.Render("Caption"),
		v.styles.Normal.Width(width-4).Render(post.Caption),
		"",
		v.styles.Label.Render("Description"),
		v.styles.Muted.Width(width-4).Render(post.Description),
	)
	return v.styles.Card.Width(width).Render(strings.Join(rows, "\n"))
}

func (v *View) row(label, value string) string {
	return v.styles.Label.Render(label) + value
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.bar.SetWidth(width)
	v.list.SetDimensions(width/3, height-6)
	v.tagField.SetWidth(width / 2)
}

// Kind returns the collection this view curates.
func (v *View) Kind() domain.CollectionKind {
	return v.kind
}

// Cursor returns the last cursor snapshot.
func (v *View) Cursor() *driving.CursorView {
	return v.cursor
}

// Status returns the status bar.
func (v *View) Status() *status.Bar {
	return v.bar
}

// Editing reports whether the view is capturing text input.
func (v *View) Editing() bool {
	return v.mode != modeBrowse
}

func capitalise(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
