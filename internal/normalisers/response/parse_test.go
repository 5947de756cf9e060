package response

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/curata/internal/core/domain"
)

func TestParse_RejectsNonArray(t *testing.T) {
	inputs := []string{
		`{"caption":"c","content":"b"}`,
		`"text"`,
		`null`,
		`[{"caption":`,
		`not json at all`,
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			result, err := Parse(in)

			assert.Nil(t, result)
			require.ErrorIs(t, err, domain.ErrMalformedResponse)

			var merr *domain.MalformedResponseError
			require.True(t, errors.As(err, &merr))
			assert.Equal(t, in, merr.Raw)
		})
	}
}

func TestParse_AppliesDefaults(t *testing.T) {
	result, err := Parse(`[{"caption":"c1","content":"body1"}]`)
	require.NoError(t, err)
	require.Len(t, result.Posts, 1)

	post := result.Posts[0]
	assert.Equal(t, "c1", post.Caption)
	assert.Equal(t, "body1", post.Description)
	assert.Equal(t, "Untitled Post", post.Title)
	assert.Equal(t, "Unknown Type", post.Type)
	assert.Empty(t, post.MediaLocator)
	assert.Empty(t, post.BucketRef)
	assert.Empty(t, post.FolderRef)
	assert.Empty(t, post.Tag)
	assert.False(t, post.ReadyToPublish)
	assert.Empty(t, result.Rejections)
}

func TestParse_UsesProvidedTitleAndType(t *testing.T) {
	result, err := Parse(`[{"caption":"c","content":"b","title":"Launch","type":"Carousel"}]`)
	require.NoError(t, err)
	require.Len(t, result.Posts, 1)

	assert.Equal(t, "Launch", result.Posts[0].Title)
	assert.Equal(t, "Carousel", result.Posts[0].Type)
}

func TestParse_RejectionIsLocal(t *testing.T) {
	text := `[
		{"caption":"a","content":"1"},
		{"content":"no caption"},
		{"caption":"b","content":"2"},
		{"caption":"no content"},
		"a string",
		null,
		{"caption":"c","content":"3"}
	]`

	result, err := Parse(text)
	require.NoError(t, err)

	require.Len(t, result.Posts, 3)
	assert.Equal(t, "a", result.Posts[0].Caption)
	assert.Equal(t, "b", result.Posts[1].Caption)
	assert.Equal(t, "c", result.Posts[2].Caption)

	require.Len(t, result.Rejections, 4)
	assert.Equal(t, 1, result.Rejections[0].Index)
	assert.Equal(t, `missing "caption" field`, result.Rejections[0].Reason)
	assert.Equal(t, `{"content":"no caption"}`, result.Rejections[0].Raw)
	assert.Equal(t, 3, result.Rejections[1].Index)
	assert.Equal(t, `missing "content" field`, result.Rejections[1].Reason)
	assert.Equal(t, "entry is not an object", result.Rejections[2].Reason)
	assert.Equal(t, "entry is not an object", result.Rejections[3].Reason)

	assert.ErrorIs(t, result.Rejections[0].Err(), domain.ErrInvalidPostEntry)
}

func TestParse_EmptyCaptionRejected(t *testing.T) {
	result, err := Parse(`[{"caption":"  ","content":"b"},{"caption":null,"content":"b"}]`)
	require.NoError(t, err)

	assert.Empty(t, result.Posts)
	require.Len(t, result.Rejections, 2)
	assert.Equal(t, "caption is empty", result.Rejections[0].Reason)
}

func TestParse_NonStringScalarsFormatted(t *testing.T) {
	result, err := Parse(`[{"caption":42,"content":{"k":"v"},"title":1.5}]`)
	require.NoError(t, err)
	require.Len(t, result.Posts, 1)

	assert.Equal(t, "42", result.Posts[0].Caption)
	assert.Equal(t, `{"k":"v"}`, result.Posts[0].Description)
	assert.Equal(t, "1.5", result.Posts[0].Title)
}

func TestParse_EmptyArray(t *testing.T) {
	result, err := Parse(`[]`)
	require.NoError(t, err)

	assert.Empty(t, result.Posts)
	assert.Empty(t, result.Rejections)
}

func TestSanitizeThenParse(t *testing.T) {
	t.Run("fenced response", func(t *testing.T) {
		result, err := Parse(Sanitize("```json\n[{\"caption\":\"c1\",\"content\":\"body1\"}]\n```"))
		require.NoError(t, err)
		require.Len(t, result.Posts, 1)
		assert.Equal(t, "c1", result.Posts[0].Caption)
		assert.Equal(t, "body1", result.Posts[0].Description)
		assert.Equal(t, "Untitled Post", result.Posts[0].Title)
	})

	t.Run("bare object", func(t *testing.T) {
		sanitized := Sanitize(`{"caption":"c1","content":"b1"}`)
		assert.Equal(t, `[{"caption":"c1","content":"b1"}]`, sanitized)

		result, err := Parse(sanitized)
		require.NoError(t, err)
		assert.Len(t, result.Posts, 1)
	})

	t.Run("still malformed after wrap", func(t *testing.T) {
		_, err := Parse(Sanitize(`{"caption": "c1"`))
		assert.ErrorIs(t, err, domain.ErrMalformedResponse)
	})
}
