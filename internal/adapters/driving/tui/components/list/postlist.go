// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/curata/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/curata/internal/core/domain"
)

// PostList renders a window of post titles around the collection cursor.
// It does not own the cursor; the lifecycle service does.
type PostList struct {
	posts  []domain.Post
	cursor int
	styles *styles.Styles
	width  int
	height int
}

// NewPostList creates a new post list component.
func NewPostList(s *styles.Styles) *PostList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &PostList{
		styles: s,
		width:  40,
		height: 10,
	}
}

// View renders the visible titles.
func (l *PostList) View() string {
	if len(l.posts) == 0 {
		return l.styles.Muted.Render("No posts")
	}

	start, end := l.window()
	lines := make([]string, 0, end-start+2)
	if start > 0 {
		lines = append(lines, l.styles.Muted.Render(fmt.Sprintf("  ↑ %d more", start)))
	}
	for i := start; i < end; i++ {
		lines = append(lines, l.renderPost(i, &l.posts[i]))
	}
	if end < len(l.posts) {
		lines = append(lines, l.styles.Muted.Render(fmt.Sprintf("  ↓ %d more", len(l.posts)-end)))
	}
	return strings.Join(lines, "\n")
}

// window returns the [start, end) range that keeps the cursor visible.
func (l *PostList) window() (start, end int) {
	visible := l.height - 2
	if visible < 1 {
		visible = 1
	}
	if l.cursor >= visible {
		start = l.cursor - visible + 1
	}
	end = start + visible
	if end > len(l.posts) {
		end = len(l.posts)
	}
	return start, end
}

func (l *PostList) renderPost(index int, post *domain.Post) string {
	marker := " "
	if post.ReadyToPublish {
		marker = l.styles.Ready.Render("✓")
	}

	title := truncate(post.Title, l.width-6)
	if index == l.cursor {
		return "> " + marker + " " + l.styles.Selected.Render(title)
	}
	return "  " + marker + " " + l.styles.Normal.Render(title)
}

func truncate(s string, limit int) string {
	if limit < 10 {
		limit = 10
	}
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-3]) + "..."
}

// SetPosts replaces the posts and clamps the cursor.
func (l *PostList) SetPosts(posts []domain.Post) {
	l.posts = posts
	l.SetCursor(l.cursor)
}

// Posts returns the current posts.
func (l *PostList) Posts() []domain.Post {
	return l.posts
}

// SetCursor highlights index, clamped to the list.
func (l *PostList) SetCursor(index int) {
	switch {
	case len(l.posts) == 0, index < 0:
		l.cursor = 0
	case index >= len(l.posts):
		l.cursor = len(l.posts) - 1
	default:
		l.cursor = index
	}
}

// Cursor returns the highlighted index.
func (l *PostList) Cursor() int {
	return l.cursor
}

// SetDimensions sets the component dimensions.
func (l *PostList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of posts.
func (l *PostList) Count() int {
	return len(l.posts)
}
