package domain

import "fmt"

// CollectionKind identifies one of the two lifecycle collections.
type CollectionKind string

// The two lifecycle collections. A post lives in exactly one of them.
const (
	CollectionUnpublished CollectionKind = "unpublished"
	CollectionPublished   CollectionKind = "published"
)

// Navigation boundary notices reported instead of wrapping.
const (
	NoticeEndOfList   = "end of list"
	NoticeStartOfList = "start of list"
)

// IsValid returns true if the kind is recognised.
func (k CollectionKind) IsValid() bool {
	return k == CollectionUnpublished || k == CollectionPublished
}

// String returns the string representation.
func (k CollectionKind) String() string {
	return string(k)
}

// ParseCollectionKind converts user input into a CollectionKind.
func ParseCollectionKind(s string) (CollectionKind, error) {
	k := CollectionKind(s)
	if !k.IsValid() {
		return "", fmt.Errorf("%w: unknown collection %q", ErrInvalidInput, s)
	}
	return k, nil
}

// AllCollectionKinds returns both collections in display order.
func AllCollectionKinds() []CollectionKind {
	return []CollectionKind{CollectionUnpublished, CollectionPublished}
}

// Collection is an ordered sequence of posts (oldest first) plus a cursor.
// The cursor stays within [0, len-1] and is 0 for an empty collection.
type Collection struct {
	Kind   CollectionKind
	posts  []Post
	cursor int
}

// NewCollection creates a collection holding a copy of posts, cursor at 0.
func NewCollection(kind CollectionKind, posts []Post) *Collection {
	c := &Collection{Kind: kind}
	c.Reset(posts)
	return c
}

// Len returns the number of posts.
func (c *Collection) Len() int {
	return len(c.posts)
}

// Cursor returns the current cursor index.
func (c *Collection) Cursor() int {
	return c.cursor
}

// InBounds reports whether i addresses an existing post.
func (c *Collection) InBounds(i int) bool {
	return i >= 0 && i < len(c.posts)
}

// At returns the post at index i.
func (c *Collection) At(i int) (Post, error) {
	if !c.InBounds(i) {
		return Post{}, fmt.Errorf("%w: %s index %d (length %d)", ErrIndexOutOfRange, c.Kind, i, len(c.posts))
	}
	return c.posts[i], nil
}

// Current returns the post under the cursor. ok is false when empty.
func (c *Collection) Current() (post Post, ok bool) {
	if len(c.posts) == 0 {
		return Post{}, false
	}
	return c.posts[c.cursor], true
}

// Posts returns a copy of the posts in order.
func (c *Collection) Posts() []Post {
	out := make([]Post, len(c.posts))
	copy(out, c.posts)
	return out
}

// Next advances the cursor. At the last post it is a no-op and returns false.
func (c *Collection) Next() bool {
	if c.cursor >= len(c.posts)-1 {
		return false
	}
	c.cursor++
	return true
}

// Previous moves the cursor back. At the first post it is a no-op and returns false.
func (c *Collection) Previous() bool {
	if c.cursor <= 0 {
		return false
	}
	c.cursor--
	return true
}

// Seek moves the cursor to i.
func (c *Collection) Seek(i int) error {
	if !c.InBounds(i) {
		return fmt.Errorf("%w: %s index %d (length %d)", ErrIndexOutOfRange, c.Kind, i, len(c.posts))
	}
	c.cursor = i
	return nil
}

// Append adds a post at the end. The cursor is left where it was.
func (c *Collection) Append(p Post) {
	c.posts = append(c.posts, p)
}

// Replace overwrites the post at index i, leaving all other slots untouched.
func (c *Collection) Replace(i int, p Post) error {
	if !c.InBounds(i) {
		return fmt.Errorf("%w: %s index %d (length %d)", ErrIndexOutOfRange, c.Kind, i, len(c.posts))
	}
	c.posts[i] = p
	return nil
}

// Remove deletes the post at index i and resets the cursor to 0.
func (c *Collection) Remove(i int) (Post, error) {
	if !c.InBounds(i) {
		return Post{}, fmt.Errorf("%w: %s index %d (length %d)", ErrIndexOutOfRange, c.Kind, i, len(c.posts))
	}
	removed := c.posts[i]
	c.posts = append(c.posts[:i:i], c.posts[i+1:]...)
	c.cursor = 0
	return removed, nil
}

// Reset replaces the contents with a copy of posts and resets the cursor to 0.
func (c *Collection) Reset(posts []Post) {
	c.posts = make([]Post, len(posts))
	copy(c.posts, posts)
	c.cursor = 0
}

// FindTitle returns the index of the first post with exactly this title
// and the total number of posts sharing it. Index is -1 when absent.
func (c *Collection) FindTitle(title string) (index, matches int) {
	index = -1
	for i := range c.posts {
		if c.posts[i].Title != title {
			continue
		}
		if index < 0 {
			index = i
		}
		matches++
	}
	return index, matches
}
