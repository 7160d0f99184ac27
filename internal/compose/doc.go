// Package compose merges background, visual, ticker, and caption timing into
// the ordered layer document consumed by the external renderer.
package compose
