// Package annotation holds the value types and the layered store produced by a
// segmentation pass over a single input text.
//
// A Store keeps named layers of SpanAnnotation values. Each layer is either
// eager (its spans are known) or pending (a Producer computes them on first
// read). Layers remember the order in which they were registered, independent
// of when they are materialized.
//
// Offsets are character offsets: indices into the text's runes, not its bytes.
package annotation
