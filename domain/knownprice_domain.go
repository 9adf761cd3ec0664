package domain

import (
	"errors"
	"mime/multipart"
)

var (
	MessageSuccessUpsertPrice  = "known price saved successfully"
	MessageSuccessGetPrices    = "known prices retrieved successfully"
	MessageSuccessDeletePrice  = "known price deleted successfully"
	MessageSuccessParseReceipt = "receipt parsed successfully"

	MessageFailedUpsertPrice  = "failed to save known price"
	MessageFailedGetPrices    = "failed to retrieve known prices"
	MessageFailedDeletePrice  = "failed to delete known price"
	MessageFailedParseReceipt = "failed to parse receipt"

	ErrKnownPriceNotFound = errors.New("known price not found")
	ErrInvalidUnitPrice   = errors.New("unit price must be positive")
)

type (
	KnownPriceRequest struct {
		ItemName  string  `json:"item_name" validate:"required"`
		UnitPrice float64 `json:"unit_price" validate:"required,gt=0"`
		Unit      *string `json:"unit,omitempty"`
		StoreID   *uint   `json:"store_id,omitempty"`
	}

	KnownPriceResponse struct {
		ID          uint    `json:"id"`
		ItemName    string  `json:"item_name"`
		UnitPrice   float64 `json:"unit_price"`
		Unit        *string `json:"unit,omitempty"`
		StoreID     *uint   `json:"store_id,omitempty"`
		LastUpdated string  `json:"last_updated"`
	}

	UploadReceiptRequest struct {
		Images []*multipart.FileHeader `json:"images" form:"images" validate:"required,min=1"`
	}

	ReceiptItem struct {
		ItemName   string  `json:"item_name"`
		TotalPrice float64 `json:"total_price"`
		Quantity   int     `json:"quantity"`
		UnitPrice  float64 `json:"unit_price"`
	}

	ParseReceiptResponse struct {
		Items    []ReceiptItem `json:"items"`
		Upserted int           `json:"upserted"`
	}
)
