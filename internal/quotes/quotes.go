package quotes

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrNoQuotes indicates the quote feed decoded cleanly but contained nothing
// to scroll.
var ErrNoQuotes = errors.New("quote feed contains no quotes")

// Quote is one instrument in the bottom ticker. Change and ChangePercent are
// signed; the renderer colors by sign.
type Quote struct {
	Symbol        string  `json:"symbol"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
}

// quotePayload accepts the two feed spellings: a bare array of quotes, or an
// object wrapping them under "quotes".
type quotePayload struct {
	Quotes []Quote `json:"quotes"`
}

// Parse decodes a quote feed.
func Parse(data []byte) ([]Quote, error) {
	var direct []Quote
	if err := json.Unmarshal(data, &direct); err == nil {
		if len(direct) == 0 {
			return nil, ErrNoQuotes
		}
		return direct, nil
	}

	var payload quotePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parse quote feed: %w", err)
	}
	if len(payload.Quotes) == 0 {
		return nil, ErrNoQuotes
	}
	return payload.Quotes, nil
}

// Load reads and parses a quote feed file.
func Load(path string) ([]Quote, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read quote feed: %w", err)
	}
	return Parse(data)
}

// PriceText formats a price for display.
func (q Quote) PriceText() string {
	return fmt.Sprintf("$%.2f", q.Price)
}

// ChangeText formats the percent change with an explicit sign. A zero change
// reads as positive.
func (q Quote) ChangeText() string {
	if q.ChangePercent < 0 {
		return fmt.Sprintf("%.2f%%", q.ChangePercent)
	}
	return fmt.Sprintf("+%.2f%%", q.ChangePercent)
}

// Up reports whether the quote renders in the gain color.
func (q Quote) Up() bool {
	return q.ChangePercent >= 0
}
