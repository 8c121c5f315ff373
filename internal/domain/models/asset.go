package models

// Asset is one tradeable coin from the upstream catalog. Immutable; identity is ID.
type Asset struct {
	ID     string `json:"id"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}
