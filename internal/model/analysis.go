package model

import "time"

// Analysis is the full result served to the dashboard for one symbol.
type Analysis struct {
	ID              string          `json:"id"`
	Symbol          string          `json:"symbol"`
	Quote           *StockQuote     `json:"stockData"`
	News            []Article       `json:"newsData"`
	Sentiment       SentimentResult `json:"sentiment"`
	Recommendation  Recommendation  `json:"recommendation"`
	SentimentAction Action          `json:"sentimentAction"`
	LastUpdated     time.Time       `json:"lastUpdated"`
}
