// Package ticker renders the scrolling market-quote band: a pre-tiled strip
// image plus a constant-cost per-frame window with seamless wraparound.
package ticker
