// Package bitmapalg provides a Backend backed by roaring bitmaps
// (github.com/pilosa/pilosa/roaring): results are *roaring.Bitmap
// values, and union/intersection/difference delegate directly to the
// bitmap's own compressed set operations. This is the backend to reach
// for when the universe is large and sparse enough that a plain slice
// (backends/setalg) would waste memory — row positions in a column
// store, document ids in a search index, and similar compressed
// indices.
package bitmapalg
