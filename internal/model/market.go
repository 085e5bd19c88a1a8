package model

import "time"

// PricePoint is a single sample of the intraday chart.
type PricePoint struct {
	Time  time.Time `json:"time"`
	Price float64   `json:"price"`
}

// StockQuote is what a price provider returns for one symbol.
type StockQuote struct {
	Symbol        string       `json:"symbol"`
	CurrentPrice  float64      `json:"currentPrice"`
	Change        float64      `json:"change"`
	ChangePercent float64      `json:"changePercent"`
	ChartData     []PricePoint `json:"chartData"`
	Source        string       `json:"source"`
	FetchedAt     time.Time    `json:"fetchedAt"`
}

// MarketSnapshot holds the raw inputs of one analysis.
type MarketSnapshot struct {
	Quote *StockQuote
	News  []Article
}

// PopularStock is an entry of the dashboard ticker tabs.
type PopularStock struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}
