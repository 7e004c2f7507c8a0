package domain

type (
	// QuoteEntry is a serializable snapshot of a product placed into
	// the quote. It is a plain copy, never a live catalog reference,
	// and its JSON shape is the persisted and exported wire format.
	QuoteEntry struct {
		ID          int         `json:"id"`
		Title       string      `json:"title"`
		Price       float64     `json:"price"`
		Description string      `json:"description"`
		Category    string      `json:"category"`
		Image       string      `json:"image"`
		Rating      QuoteRating `json:"rating"`
	}

	QuoteRating struct {
		Rate  float64 `json:"rate"`
		Count int     `json:"count"`
	}
)

// QuoteSnapshot is the exported quote artifact. Field order and naming
// must stay stable for compatibility with previously exported files.
type QuoteSnapshot struct {
	Currency     string       `json:"currency"`
	Timestamp    string       `json:"timestamp"`
	Items        []QuoteEntry `json:"items"`
	ExchangeRate float64      `json:"exchangeRate"`
}

// SnapshotProduct copies a product into a quote entry.
func SnapshotProduct(p Product) QuoteEntry {
	return QuoteEntry{
		ID:          p.ID,
		Title:       p.Title,
		Price:       p.Price,
		Description: p.Description,
		Category:    p.Category,
		Image:       p.Image,
		Rating: QuoteRating{
			Rate:  p.Rating.Rate,
			Count: p.Rating.Count,
		},
	}
}
