package domain

// Tag is a named label. Names are unique and case-sensitive within the registry.
// Posts carry a copy of the name, so removing a tag does not touch posts.
type Tag struct {
	Name string `json:"name"`
}
