package handler

import "foodshare/internal/repository"

// DataResponse is the uniform success envelope for single payloads.
type DataResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// ListResponse is the success envelope for paginated collections.
type ListResponse struct {
	Success    bool                   `json:"success"`
	Count      int64                  `json:"count"`
	Pagination *repository.Pagination `json:"pagination,omitempty"`
	Data       interface{}            `json:"data"`
}

// CollectionResponse is the success envelope for unpaginated collections.
type CollectionResponse struct {
	Success bool        `json:"success"`
	Count   int         `json:"count"`
	Data    interface{} `json:"data"`
}

// TokenResponse is the success envelope carrying a session token.
type TokenResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}
