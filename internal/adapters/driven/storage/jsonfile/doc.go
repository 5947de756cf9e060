// Package jsonfile persists collections, tags, prompts, customers and
// selections as JSON documents in the data directory.
//
// Every write replaces the whole file: the document is written to a
// temporary file in the same directory and renamed over the target, so a
// failed write leaves the previous file intact. A missing file reads as an
// empty collection.
package jsonfile
