package history

// FilterInput sets the history screen filter.
type FilterInput struct {
	Filter string `json:"filter" validate:"required"`
}
