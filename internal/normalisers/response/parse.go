package response

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/curata/internal/core/domain"
)

// Field names expected in each response entry.
const (
	fieldCaption = "caption"
	fieldContent = "content"
	fieldTitle   = "title"
	fieldType    = "type"
)

// Result holds the posts accepted from a response and the entries rejected.
type Result struct {
	// Posts are accepted entries in response order.
	Posts []domain.Post

	// Rejections are entries that could not become posts.
	Rejections []domain.Rejection
}

// Parse decodes sanitised text into posts.
//
// Parse fails with a *domain.MalformedResponseError (matching
// domain.ErrMalformedResponse) when the text is not a JSON array; nothing
// is returned from such a batch. Otherwise every element is considered
// independently: objects carrying both "caption" and "content" become posts,
// anything else is recorded as a rejection.
func Parse(text string) (*Result, error) {
	var entries []json.RawMessage
	if err := json.Unmarshal([]byte(text), &entries); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			err = fmt.Errorf("expected a JSON array, got %s", typeErr.Value)
		}
		return nil, &domain.MalformedResponseError{Raw: text, Err: err}
	}
	if entries == nil {
		// JSON null decodes without error.
		return nil, &domain.MalformedResponseError{Raw: text, Err: errors.New("expected a JSON array, got null")}
	}

	result := &Result{
		Posts: make([]domain.Post, 0, len(entries)),
	}
	for i, raw := range entries {
		post, reason := parseEntry(raw)
		if reason != "" {
			result.Rejections = append(result.Rejections, domain.Rejection{
				Index:  i,
				Raw:    compact(raw),
				Reason: reason,
			})
			continue
		}
		result.Posts = append(result.Posts, post)
	}
	return result, nil
}

// parseEntry builds a post from one array element.
// A non-empty reason means the entry was rejected.
func parseEntry(raw json.RawMessage) (domain.Post, string) {
	var fields map[string]any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil || fields == nil {
		return domain.Post{}, "entry is not an object"
	}

	captionVal, ok := fields[fieldCaption]
	if !ok {
		return domain.Post{}, `missing "caption" field`
	}
	contentVal, ok := fields[fieldContent]
	if !ok {
		return domain.Post{}, `missing "content" field`
	}

	caption := text(captionVal)
	if strings.TrimSpace(caption) == "" {
		return domain.Post{}, "caption is empty"
	}

	return domain.Post{
		Title:       textOr(fields[fieldTitle], domain.DefaultPostTitle),
		Description: text(contentVal),
		Type:        textOr(fields[fieldType], domain.DefaultPostType),
		Caption:     caption,
	}, ""
}

// text renders a decoded JSON value as post text.
// Strings pass through, other scalars are formatted, containers are re-encoded.
func text(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		if val {
			return "true"
		}
		return "false"
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	}
}

// textOr returns text(v), or fallback when v is absent or blank.
func textOr(v any, fallback string) string {
	s := text(v)
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func compact(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}
