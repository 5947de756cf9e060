// Package normalisers holds the converters that turn raw external input
// into domain records. The response package handles language-model output.
package normalisers
