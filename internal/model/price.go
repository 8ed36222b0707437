package model

type GetAleoPriceRequest struct{}

type GetAleoPriceResponse struct {
	Price     float64      `json:"price"`
	Change24h float64      `json:"change_24h"`
	History   []PricePoint `json:"history"`
}

type PricePoint struct {
	Timestamp int64   `json:"timestamp"`
	Price     float64 `json:"price"`
}
