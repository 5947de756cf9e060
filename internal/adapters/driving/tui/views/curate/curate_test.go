package curate

import (
	"context"
	"errors"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/curata/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/curata/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/curata/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/curata/internal/core/domain"
	"github.com/custodia-labs/curata/internal/core/ports/driving"
	"github.com/custodia-labs/curata/internal/core/services"
)

// failingLifecycle overrides selected operations of a real lifecycle service.
type failingLifecycle struct {
	driving.LifecycleService
	publishErr error
}

func (f *failingLifecycle) Publish(ctx context.Context, title string) (*driving.PublishResult, error) {
	if f.publishErr != nil {
		return nil, f.publishErr
	}
	return f.LifecycleService.Publish(ctx, title)
}

type stubExporter struct {
	ready     int
	published int
}

func (s *stubExporter) SelectReady(context.Context) ([]domain.ExportRow, error) { return nil, nil }

func (s *stubExporter) ExportReady(context.Context) (*driving.ExportResult, error) {
	s.ready++
	return &driving.ExportResult{Path: "ready.csv", Count: 2}, nil
}

func (s *stubExporter) ExportPublished(context.Context) (*driving.ExportResult, error) {
	s.published++
	return &driving.ExportResult{Path: "published.csv", Count: 1}, nil
}

func seed(t *testing.T, kind domain.CollectionKind, posts ...domain.Post) driving.LifecycleService {
	t.Helper()
	repo := memory.NewPostStore()
	require.NoError(t, repo.Save(context.Background(), kind, posts))
	return services.NewLifecycleService(repo)
}

func newDraftsView(t *testing.T, svc Services) *View {
	t.Helper()
	v := NewView(nil, nil, domain.CollectionUnpublished, svc)
	v.SetDimensions(120, 40)
	drain(t, v, v.Init())
	return v
}

// drain runs cmd and feeds every resulting message back into the view.
// Spinner ticks are delivered once but their follow-up timers are not run.
func drain(t *testing.T, v *View, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	var seen []tea.Msg
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		require.Less(t, steps, 50, "command loop did not settle")
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		msg := next()
		if batch, ok := msg.(tea.BatchMsg); ok {
			queue = append(queue, batch...)
			continue
		}
		seen = append(seen, msg)
		_, follow := v.Update(msg)
		if _, tick := msg.(spinner.TickMsg); !tick {
			queue = append(queue, follow)
		}
	}
	return seen
}

func press(t *testing.T, v *View, key string) []tea.Msg {
	t.Helper()
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	_, cmd := v.Update(msg)
	return drain(t, v, cmd)
}

func TestNewView(t *testing.T) {
	v := NewView(nil, nil, domain.CollectionPublished, Services{})

	require.NotNil(t, v)
	assert.Equal(t, domain.CollectionPublished, v.Kind())
	assert.Nil(t, v.Cursor())
	assert.Equal(t, "Initialising...", v.View())
}

func TestView_InitLoadsCollection(t *testing.T) {
	lc := seed(t, domain.CollectionUnpublished, domain.Post{Title: "A"}, domain.Post{Title: "B"})

	v := newDraftsView(t, Services{Lifecycle: lc})

	require.NotNil(t, v.Cursor())
	assert.Equal(t, 2, v.Cursor().Total)
	assert.Equal(t, "A", v.Cursor().Post.Title)
	assert.Equal(t, status.StateReady, v.Status().State())
	assert.Contains(t, v.View(), "Drafts (2)")
}

func TestView_NextAndPrevious(t *testing.T) {
	lc := seed(t, domain.CollectionUnpublished, domain.Post{Title: "A"}, domain.Post{Title: "B"})
	v := newDraftsView(t, Services{Lifecycle: lc})

	press(t, v, "n")
	assert.Equal(t, "B", v.Cursor().Post.Title)

	press(t, v, "n")
	assert.Equal(t, "B", v.Cursor().Post.Title)
	assert.Equal(t, status.StateNotice, v.Status().State())
	assert.Equal(t, "End of list", v.Status().Message())

	press(t, v, "p")
	assert.Equal(t, "A", v.Cursor().Post.Title)
	assert.Equal(t, status.StateReady, v.Status().State())

	press(t, v, "p")
	assert.Equal(t, "Start of list", v.Status().Message())
}

func TestView_Publish(t *testing.T) {
	lc := seed(t, domain.CollectionUnpublished, domain.Post{Title: "A"}, domain.Post{Title: "B"})
	v := newDraftsView(t, Services{Lifecycle: lc})

	press(t, v, "P")

	assert.Equal(t, status.StateNotice, v.Status().State())
	assert.Equal(t, `Published "A"`, v.Status().Message())
	assert.Equal(t, 1, v.Cursor().Total)

	published, err := lc.List(context.Background(), domain.CollectionPublished)
	require.NoError(t, err)
	require.Len(t, published, 1)
	assert.Equal(t, "A", published[0].Title)
}

func TestView_PublishAmbiguousWarns(t *testing.T) {
	lc := seed(t, domain.CollectionUnpublished,
		domain.Post{Title: "Same", Caption: "first"},
		domain.Post{Title: "Same", Caption: "second"},
	)
	v := newDraftsView(t, Services{Lifecycle: lc})

	press(t, v, "P")

	assert.Equal(t, status.StateWarning, v.Status().State())
	assert.Contains(t, v.Status().Message(), "first of 2")
}

func TestView_PublishError(t *testing.T) {
	lc := &failingLifecycle{
		LifecycleService: seed(t, domain.CollectionUnpublished, domain.Post{Title: "A"}),
		publishErr:       domain.ErrPersistence,
	}
	v := newDraftsView(t, Services{Lifecycle: lc})

	press(t, v, "P")

	assert.Equal(t, status.StateError, v.Status().State())
	assert.Contains(t, v.Status().Message(), "Reload to resynchronise")
}

func TestView_PublishIgnoredOnPublishedCollection(t *testing.T) {
	lc := seed(t, domain.CollectionPublished, domain.Post{Title: "A"})
	v := NewView(nil, nil, domain.CollectionPublished, Services{Lifecycle: lc})
	v.SetDimensions(120, 40)
	drain(t, v, v.Init())

	msgs := press(t, v, "P")

	assert.Empty(t, msgs)
	assert.Equal(t, 1, v.Cursor().Total)
}

func TestView_ToggleReady(t *testing.T) {
	lc := seed(t, domain.CollectionUnpublished, domain.Post{Title: "A"})
	v := newDraftsView(t, Services{Lifecycle: lc})

	press(t, v, "r")
	assert.True(t, v.Cursor().Post.ReadyToPublish)

	press(t, v, "r")
	assert.False(t, v.Cursor().Post.ReadyToPublish)
	assert.Equal(t, "Marked not ready", v.Status().Message())
}

func TestView_SetTag(t *testing.T) {
	repo := memory.NewTagStore()
	tags := services.NewTagService(repo)
	require.NoError(t, tags.Add(context.Background(), "Launch"))
	lc := seed(t, domain.CollectionUnpublished, domain.Post{Title: "A"})
	v := newDraftsView(t, Services{Lifecycle: lc, Tags: tags})

	press(t, v, "t")
	assert.True(t, v.Editing())
	press(t, v, "Launch")
	press(t, v, "enter")

	assert.False(t, v.Editing())
	assert.Equal(t, "Launch", v.Cursor().Post.Tag)
	assert.Equal(t, status.StateNotice, v.Status().State())
}

func TestView_SetUnknownTagWarns(t *testing.T) {
	tags := services.NewTagService(memory.NewTagStore())
	lc := seed(t, domain.CollectionUnpublished, domain.Post{Title: "A"})
	v := newDraftsView(t, Services{Lifecycle: lc, Tags: tags})

	press(t, v, "t")
	press(t, v, "Mystery")
	press(t, v, "enter")

	assert.Equal(t, "Mystery", v.Cursor().Post.Tag)
	assert.Equal(t, status.StateWarning, v.Status().State())
}

func TestView_BlankTagBecomesSentinel(t *testing.T) {
	lc := seed(t, domain.CollectionUnpublished, domain.Post{Title: "A", Tag: "Old"})
	v := newDraftsView(t, Services{Lifecycle: lc})

	press(t, v, "t")
	v.tagField.SetValue("   ")
	press(t, v, "enter")

	assert.Equal(t, domain.UncategorisedTag, v.Cursor().Post.Tag)
}

func TestView_TagEscCancels(t *testing.T) {
	lc := seed(t, domain.CollectionUnpublished, domain.Post{Title: "A", Tag: "Keep"})
	v := newDraftsView(t, Services{Lifecycle: lc})

	press(t, v, "t")
	press(t, v, "esc")

	assert.False(t, v.Editing())
	assert.Equal(t, "Keep", v.Cursor().Post.Tag)
}

func TestView_DeleteConfirmed(t *testing.T) {
	lc := seed(t, domain.CollectionUnpublished, domain.Post{Title: "A"}, domain.Post{Title: "B"})
	v := newDraftsView(t, Services{Lifecycle: lc})
	press(t, v, "n")

	press(t, v, "d")
	assert.Equal(t, status.StateWarning, v.Status().State())
	press(t, v, "y")

	assert.Equal(t, 1, v.Cursor().Total)
	assert.Equal(t, 0, v.Cursor().Index)
	assert.Equal(t, "A", v.Cursor().Post.Title)
	assert.Equal(t, `Deleted "B"`, v.Status().Message())
}

func TestView_DeleteDeclined(t *testing.T) {
	lc := seed(t, domain.CollectionUnpublished, domain.Post{Title: "A"})
	v := newDraftsView(t, Services{Lifecycle: lc})

	press(t, v, "d")
	press(t, v, "n")

	assert.Equal(t, 1, v.Cursor().Total)
	assert.Equal(t, status.StateReady, v.Status().State())
}

func TestView_Export(t *testing.T) {
	exporter := &stubExporter{}
	lc := seed(t, domain.CollectionUnpublished, domain.Post{Title: "A"})
	v := newDraftsView(t, Services{Lifecycle: lc, Export: exporter})

	press(t, v, "x")

	assert.Equal(t, 1, exporter.ready)
	assert.Equal(t, 0, exporter.published)
	assert.Equal(t, "Exported 2 posts to ready.csv", v.Status().Message())
}

func TestView_ExportWithoutServiceIsNoop(t *testing.T) {
	lc := seed(t, domain.CollectionUnpublished, domain.Post{Title: "A"})
	v := newDraftsView(t, Services{Lifecycle: lc})

	assert.Empty(t, press(t, v, "x"))
}

func TestView_CollectionChangedReloadsAndKeepsPosition(t *testing.T) {
	repo := memory.NewPostStore()
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, domain.CollectionUnpublished, []domain.Post{{Title: "A"}, {Title: "B"}}))
	lc := services.NewLifecycleService(repo)
	v := newDraftsView(t, Services{Lifecycle: lc})
	press(t, v, "n")

	// External edit appends a post.
	require.NoError(t, repo.Save(ctx, domain.CollectionUnpublished,
		[]domain.Post{{Title: "A"}, {Title: "B"}, {Title: "C"}}))
	_, cmd := v.Update(messages.CollectionChanged{Kind: domain.CollectionUnpublished})
	drain(t, v, cmd)

	assert.Equal(t, 3, v.Cursor().Total)
	assert.Equal(t, 1, v.Cursor().Index)
	assert.Equal(t, "B", v.Cursor().Post.Title)
	assert.False(t, v.Status().Busy())
}

func TestView_IgnoresOtherCollections(t *testing.T) {
	lc := seed(t, domain.CollectionUnpublished, domain.Post{Title: "A"})
	v := newDraftsView(t, Services{Lifecycle: lc})

	_, cmd := v.Update(messages.CollectionChanged{Kind: domain.CollectionPublished})
	assert.Nil(t, cmd)

	_, cmd = v.Update(messages.ActionCompleted{Kind: domain.CollectionPublished, Err: errors.New("x")})
	assert.Nil(t, cmd)
	assert.Equal(t, status.StateReady, v.Status().State())
}

func TestView_EmptyCollection(t *testing.T) {
	lc := seed(t, domain.CollectionUnpublished)
	v := newDraftsView(t, Services{Lifecycle: lc})

	assert.Nil(t, v.Cursor().Post)
	assert.Contains(t, v.View(), "Nothing here yet")
	assert.Empty(t, press(t, v, "P"))
	assert.Empty(t, press(t, v, "d"))
}

func TestView_EscReturnsToMenu(t *testing.T) {
	v := newDraftsView(t, Services{Lifecycle: seed(t, domain.CollectionUnpublished)})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)

	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}

func TestView_RendersPostCard(t *testing.T) {
	lc := seed(t, domain.CollectionUnpublished, domain.Post{
		Title:        "Launch day",
		Type:         "Announcement",
		Caption:      "We are live",
		MediaLocator: "https://b.s3.amazonaws.com/x.png",
	})
	v := newDraftsView(t, Services{Lifecycle: lc})

	view := v.View()

	assert.Contains(t, view, "Launch day")
	assert.Contains(t, view, "Announcement")
	assert.Contains(t, view, domain.UncategorisedTag)
	assert.Contains(t, view, "1/1")
}

func TestCapitalise(t *testing.T) {
	assert.Equal(t, "", capitalise(""))
	assert.Equal(t, "End of list", capitalise("end of list"))
}
