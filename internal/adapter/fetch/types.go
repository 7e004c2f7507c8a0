package fetch

import "github.com/niksmo/storefront/internal/core/domain"

type (
	product struct {
		ID          int     `json:"id"`
		Title       string  `json:"title"`
		Price       float64 `json:"price"`
		Description string  `json:"description"`
		Category    string  `json:"category"`
		Image       string  `json:"image"`
		Rating      rating  `json:"rating"`
	}

	// A missing rating decodes to the zero value {0, 0}.
	rating struct {
		Rate  float64 `json:"rate"`
		Count int     `json:"count"`
	}
)

type ratesDocument struct {
	Rates map[string]float64 `json:"rates"`
}

func toDomain(ps []product) []domain.Product {
	domainPs := make([]domain.Product, 0, len(ps))
	for _, p := range ps {
		domainPs = append(domainPs, domain.Product{
			ID:          p.ID,
			Title:       p.Title,
			Price:       p.Price,
			Description: p.Description,
			Category:    p.Category,
			Image:       p.Image,
			Rating: domain.ProductRating{
				Rate:  p.Rating.Rate,
				Count: p.Rating.Count,
			},
		})
	}
	return domainPs
}
