// Package preview rasterizes composition documents into PNG frames for
// inspection before the external renderer runs.
package preview
