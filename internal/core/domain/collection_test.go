package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threePosts() []Post {
	return []Post{
		{Title: "one", Caption: "c1"},
		{Title: "two", Caption: "c2"},
		{Title: "three", Caption: "c3"},
	}
}

func TestParseCollectionKind(t *testing.T) {
	k, err := ParseCollectionKind("published")
	require.NoError(t, err)
	assert.Equal(t, CollectionPublished, k)

	_, err = ParseCollectionKind("drafts")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCollection_NewCopiesInput(t *testing.T) {
	posts := threePosts()
	c := NewCollection(CollectionUnpublished, posts)

	posts[0].Title = "changed"

	p, err := c.At(0)
	require.NoError(t, err)
	assert.Equal(t, "one", p.Title)
	assert.Equal(t, 0, c.Cursor())
}

func TestCollection_Navigation(t *testing.T) {
	c := NewCollection(CollectionUnpublished, threePosts())

	assert.False(t, c.Previous(), "previous at start is a no-op")
	assert.Equal(t, 0, c.Cursor())

	assert.True(t, c.Next())
	assert.True(t, c.Next())
	assert.False(t, c.Next(), "next at end is a no-op")
	assert.Equal(t, 2, c.Cursor())

	cur, ok := c.Current()
	require.True(t, ok)
	assert.Equal(t, "three", cur.Title)
}

func TestCollection_NavigationEmpty(t *testing.T) {
	c := NewCollection(CollectionPublished, nil)

	assert.False(t, c.Next())
	assert.False(t, c.Previous())
	_, ok := c.Current()
	assert.False(t, ok)
}

func TestCollection_AppendKeepsCursor(t *testing.T) {
	c := NewCollection(CollectionUnpublished, threePosts())
	require.NoError(t, c.Seek(1))

	c.Append(Post{Title: "four"})

	assert.Equal(t, 4, c.Len())
	assert.Equal(t, 1, c.Cursor())
}

func TestCollection_ReplaceTouchesOneSlot(t *testing.T) {
	c := NewCollection(CollectionUnpublished, threePosts())

	require.NoError(t, c.Replace(1, Post{Title: "TWO"}))

	assert.Equal(t, []string{"one", "TWO", "three"}, titles(c.Posts()))
	assert.ErrorIs(t, c.Replace(3, Post{}), ErrIndexOutOfRange)
}

func TestCollection_RemoveResetsCursor(t *testing.T) {
	c := NewCollection(CollectionUnpublished, threePosts())
	require.NoError(t, c.Seek(2))

	removed, err := c.Remove(1)
	require.NoError(t, err)

	assert.Equal(t, "two", removed.Title)
	assert.Equal(t, []string{"one", "three"}, titles(c.Posts()))
	assert.Equal(t, 0, c.Cursor())
}

func TestCollection_RemoveOutOfRange(t *testing.T) {
	c := NewCollection(CollectionUnpublished, threePosts())
	require.NoError(t, c.Seek(2))

	_, err := c.Remove(5)

	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, 2, c.Cursor())
}

func TestCollection_FindTitle(t *testing.T) {
	posts := append(threePosts(), Post{Title: "two", Caption: "dup"})
	c := NewCollection(CollectionUnpublished, posts)

	idx, n := c.FindTitle("two")
	assert.Equal(t, 1, idx)
	assert.Equal(t, 2, n)

	idx, n = c.FindTitle("missing")
	assert.Equal(t, -1, idx)
	assert.Equal(t, 0, n)
}

func TestCustomerSelection_Selected(t *testing.T) {
	sel := CustomerSelection{"a": true, "b": false, "c": true}

	assert.ElementsMatch(t, []string{"a", "c"}, sel.Selected())
}

func titles(posts []Post) []string {
	out := make([]string, len(posts))
	for i := range posts {
		out[i] = posts[i].Title
	}
	return out
}
