package domain

// State is the full interactive storefront state. It has value
// semantics, transitions go through [Reduce] and never mutate in place.
type State struct {
	Criteria FilterCriteria
	Sort     SortKey
	Currency string
}

// NewState returns the initial state: no criteria, base currency.
func NewState() State {
	return State{Currency: BaseCurrency}
}

// Event is a user intent applied to the state.
type Event interface {
	event()
}

type (
	SearchChanged struct {
		Text string
	}

	CategorySelected struct {
		Category string
	}

	SortChanged struct {
		Key SortKey
	}

	CurrencyChanged struct {
		Currency string
	}

	CriteriaCleared struct{}
)

func (SearchChanged) event()    {}
func (CategorySelected) event() {}
func (SortChanged) event()      {}
func (CurrencyChanged) event()  {}
func (CriteriaCleared) event()  {}

// Reduce applies an event to the state and returns the next state.
// It is a pure function. Malformed events degrade to a no-op:
// an unsupported currency leaves the current one in place.
func Reduce(s State, e Event) State {
	switch e := e.(type) {
	case SearchChanged:
		s.Criteria.Search = e.Text
	case CategorySelected:
		s.Criteria.Category = e.Category
	case SortChanged:
		s.Sort = e.Key
	case CurrencyChanged:
		if Supported(e.Currency) {
			s.Currency = e.Currency
		}
	case CriteriaCleared:
		s.Criteria = FilterCriteria{}
	}
	return s
}

// View is what the rendering collaborator consumes: the derived
// product sequence together with the active currency and rate table.
type View struct {
	Products []Product
	Currency string
	Rates    RateTable
}
