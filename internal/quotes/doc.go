// Package quotes models the market-quote feed rendered by the bottom ticker.
package quotes
