package dto

import (
	"token-pulse-go/internal/models"
	"token-pulse-go/internal/view"
)

type Res struct {
	Success bool `json:"success"`
	Error   any  `json:"error"`
	Data    any  `json:"data"`
}

type ErrorType struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Intents

type SearchReq struct {
	Query string `json:"query" binding:"max=128"`
}

type SearchRes struct {
	Query string `json:"query"`
}

type SortReq struct {
	Field string `json:"field" binding:"required,oneof=price priceChange24h volume24h marketCap liquidity holders"`
}

type FilterReq struct {
	Dimension string `json:"dimension" binding:"required,oneof=marketCap volume holders"`
	Bucket    string `json:"bucket" binding:"required"`
}

type StartEngineReq struct {
	IntervalMs int `json:"intervalMs" binding:"omitempty,min=50,max=60000"`
}

type EngineRes struct {
	Running    bool  `json:"running"`
	IntervalMs int64 `json:"intervalMs,omitempty"`
}

type RegenerateReq struct {
	Count int `json:"count" binding:"omitempty,min=1,max=500"`
}

type RegenerateRes struct {
	Category models.Category `json:"category"`
	Tokens   []models.Token  `json:"tokens"`
}

type QueryStateRes struct {
	Category models.Category `json:"category"`
	State    view.QueryState `json:"state"`
}
