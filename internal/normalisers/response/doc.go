// Package response turns raw language-model output into post records.
// Sanitize coerces the text toward a JSON array of objects, and Parse
// maps each array element to a domain.Post, rejecting malformed entries
// individually rather than failing the batch.
package response
