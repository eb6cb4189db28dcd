package dto

import "github.com/shopspring/decimal"

// WindowTotals are completed earnings per calendar window.
type WindowTotals struct {
	Today   decimal.Decimal `json:"today"`
	Week    decimal.Decimal `json:"week"`
	Month   decimal.Decimal `json:"month"`
	AllTime decimal.Decimal `json:"allTime"`
}

type SeriesPoint struct {
	Label string          `json:"label"`
	Date  string          `json:"date"`
	Total decimal.Decimal `json:"total"`
}

type RangeTotals struct {
	DateFrom string          `json:"dateFrom"`
	DateTo   string          `json:"dateTo"`
	Earnings decimal.Decimal `json:"earnings"`
	Orders   int64           `json:"orders"`
}

type StatusCounts struct {
	Total     int64 `json:"total"`
	Completed int64 `json:"completed"`
	Pending   int64 `json:"pending"`
	Cancelled int64 `json:"cancelled"`
	Refunded  int64 `json:"refunded"`
}

type Dashboard struct {
	Totals       WindowTotals               `json:"totals"`
	Series       []SeriesPoint              `json:"series"`
	MethodTotals map[string]decimal.Decimal `json:"methodTotals"`
	StatusCounts StatusCounts               `json:"statusCounts"`
}

type AnalyticsReq struct {
	Period   string `form:"period" binding:"omitempty,oneof=all custom"`
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
}

// StatusCountRow is one GROUP BY status row.
type StatusCountRow struct {
	Status string
	Cnt    int64
}

// MethodTotalRow is one GROUP BY payment_method row.
type MethodTotalRow struct {
	PaymentMethod string
	Total         decimal.Decimal
}
