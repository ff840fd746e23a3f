package handler

import "github.com/storefront/backend/internal/interfaces/http/dto"

// APIResponse documents the envelope with a typed data field
// @Description Standard API response wrapper
type APIResponse[T any] struct {
	Success bool           `json:"success"`
	Message string         `json:"message,omitempty"`
	Data    T              `json:"data,omitempty"`
	Error   *dto.ErrorInfo `json:"error,omitempty"`
	Meta    *dto.Meta      `json:"meta,omitempty"`
}

// ErrorResponse documents an error envelope
// @Description Standard error response
type ErrorResponse struct {
	Success bool           `json:"success" example:"false"`
	Message string         `json:"message" example:"Invalid token"`
	Error   *dto.ErrorInfo `json:"error,omitempty"`
}

// OKData is returned by the auth probes and checkout
type OKData struct {
	OK bool `json:"ok" example:"true"`
}

// CountData carries a product count
type CountData struct {
	Total int64 `json:"total" example:"42"`
}

// ClientTokenData carries the payment gateway client token
type ClientTokenData struct {
	ClientToken string `json:"clientToken"`
}
