package model

// Category is a controlled-vocabulary entry referenced by documents.
// Names are unique across the registry.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
