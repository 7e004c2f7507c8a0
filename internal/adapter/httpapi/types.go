package httpapi

import (
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/service"
)

type (
	Product struct {
		ID           int     `json:"id"`
		Title        string  `json:"title"`
		Price        float64 `json:"price"`
		DisplayPrice string  `json:"display_price"`
		Description  string  `json:"description"`
		Category     string  `json:"category"`
		Image        string  `json:"image"`
		Rating       Rating  `json:"rating"`
	}

	Rating struct {
		Rate  float64 `json:"rate"`
		Count int     `json:"count"`
	}
)

type ProductsResponse struct {
	Products []Product `json:"products"`
	Currency string    `json:"currency"`
}

type CategoriesResponse struct {
	Categories []string       `json:"categories"`
	Counts     map[string]int `json:"counts"`
}

type QuoteResponse struct {
	Items        []domain.QuoteEntry `json:"items"`
	Count        int                 `json:"count"`
	Currency     string              `json:"currency"`
	Total        float64             `json:"total"`
	DisplayTotal string              `json:"display_total"`
	Persisted    bool                `json:"persisted"`
}

type ViewResponse struct {
	Products []Product          `json:"products"`
	Currency string             `json:"currency"`
	Rates    map[string]float64 `json:"rates"`
}

type (
	SearchRequest struct {
		Query string `json:"q"`
	}

	CategoryRequest struct {
		Category string `json:"category"`
	}

	SortRequest struct {
		Sort string `json:"sort"`
	}

	CurrencyRequest struct {
		Currency string `json:"currency"`
	}

	AddItemRequest struct {
		ID int `json:"id"`
	}
)

func toProductDTO(p domain.Product, currency string, rates domain.RateTable) Product {
	return Product{
		ID:           p.ID,
		Title:        p.Title,
		Price:        p.Price,
		DisplayPrice: service.ConvertFormat(p.Price, currency, rates),
		Description:  p.Description,
		Category:     p.Category,
		Image:        p.Image,
		Rating: Rating{
			Rate:  p.Rating.Rate,
			Count: p.Rating.Count,
		},
	}
}

func toProductDTOs(ps []domain.Product, currency string, rates domain.RateTable) []Product {
	dtos := make([]Product, 0, len(ps))
	for _, p := range ps {
		dtos = append(dtos, toProductDTO(p, currency, rates))
	}
	return dtos
}
