package domain

import "strings"

// ExportRow is the projection of a publish-ready post.
type ExportRow struct {
	Caption      string
	MediaLocator string
}

// SelectReady projects the publish-ready posts in input order.
// Caption and locator are trimmed.
func SelectReady(posts []Post) []ExportRow {
	rows := make([]ExportRow, 0, len(posts))
	for i := range posts {
		if !posts[i].ExportReady() {
			continue
		}
		rows = append(rows, ExportRow{
			Caption:      strings.TrimSpace(posts[i].Caption),
			MediaLocator: strings.TrimSpace(posts[i].MediaLocator),
		})
	}
	return rows
}
