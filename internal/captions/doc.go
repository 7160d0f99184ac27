// Package captions turns word-level transcript timing into one-word-at-a-time
// subtitle units and rasterizes them.
package captions
