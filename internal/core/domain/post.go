package domain

import "strings"

// Defaults applied to posts built from model output.
const (
	// DefaultPostTitle is used when the model omits a title.
	DefaultPostTitle = "Untitled Post"

	// DefaultPostType is used when the model omits a type.
	DefaultPostType = "Unknown Type"

	// UncategorisedTag is the sentinel stored whenever a post's tag is blank.
	UncategorisedTag = "Uncategorised"
)

// Post is a single content item tracked from draft to published.
// JSON field names match the on-disk collection files.
type Post struct {
	// Title is the display name. Used as the lookup key for publish.
	Title string `json:"title"`

	// Description is the body content, sourced from the model's "content" field.
	Description string `json:"description"`

	// Type is a free-text category.
	Type string `json:"type"`

	// Caption is required; a post without one is never accepted from a response.
	Caption string `json:"caption"`

	// BucketRef is the bucket used to resolve the media locator.
	BucketRef string `json:"s3_bucket_url"`

	// FolderRef is the folder within BucketRef for uploaded media.
	FolderRef string `json:"s3_folder_path"`

	// MediaLocator is the externally addressable URL of the bound asset.
	// Empty until media is bound.
	MediaLocator string `json:"s3_file_name"`

	// Tag is a denormalised copy of a registry tag name.
	Tag string `json:"tag"`

	// ReadyToPublish gates export and publish eligibility.
	ReadyToPublish bool `json:"ready_to_publish"`
}

// DisplayTag returns the tag, substituting the sentinel when blank.
func (p Post) DisplayTag() string {
	return NormaliseTag(p.Tag)
}

// Normalised returns a copy of the post with its tag normalised.
func (p Post) Normalised() Post {
	p.Tag = NormaliseTag(p.Tag)
	return p
}

// HasMedia returns true if a media locator has been recorded.
func (p Post) HasMedia() bool {
	return strings.TrimSpace(p.MediaLocator) != ""
}

// ExportReady reports whether the post passes the publish-readiness predicate:
// flagged ready, with a non-blank caption and media locator.
func (p Post) ExportReady() bool {
	return p.ReadyToPublish &&
		strings.TrimSpace(p.Caption) != "" &&
		strings.TrimSpace(p.MediaLocator) != ""
}

// NormaliseTag trims a tag name and substitutes the sentinel when blank.
func NormaliseTag(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return UncategorisedTag
	}
	return tag
}
