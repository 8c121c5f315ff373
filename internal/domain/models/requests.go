package models

// Requests for dashboard HTTP endpoints. Defined in domain for consistency and reuse.

type MarketRequest struct {
	Coin     string `query:"coin" json:"coin" validate:"required"`
	Currency string `query:"currency" json:"currency" default:"usd" validate:"oneof=usd eur jpy gbp cad"`
	Days     int    `query:"days" json:"days" default:"90" validate:"gte=1,lte=365"`
}

type IndicatorsRequest struct {
	Coin     string `query:"coin" json:"coin" validate:"required"`
	Currency string `query:"currency" json:"currency" default:"usd" validate:"oneof=usd eur jpy gbp cad"`
	Days     int    `query:"days" json:"days" default:"90" validate:"gte=1,lte=365"`
}

type CommentaryRequest struct {
	Coin     string `query:"coin" json:"coin" validate:"required"`
	Currency string `query:"currency" json:"currency" default:"usd" validate:"oneof=usd eur jpy gbp cad"`
	Days     int    `query:"days" json:"days" default:"90" validate:"gte=1,lte=365"`
}
