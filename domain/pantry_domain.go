package domain

import (
	"errors"
	"mime/multipart"
)

var (
	MessageSuccessAddPantryItem    = "pantry item added successfully"
	MessageSuccessUpdatePantryItem = "pantry item updated successfully"
	MessageSuccessDeletePantryItem = "pantry item deleted successfully"
	MessageSuccessGetPantryItems   = "pantry items retrieved successfully"
	MessageSuccessImportCSV        = "pantry csv imported successfully"

	MessageFailedAddPantryItem    = "failed to add pantry item"
	MessageFailedUpdatePantryItem = "failed to update pantry item"
	MessageFailedDeletePantryItem = "failed to delete pantry item"
	MessageFailedGetPantryItems   = "failed to retrieve pantry items"
	MessageFailedImportCSV        = "failed to import pantry csv"

	ErrPantryItemNotFound = errors.New("pantry item not found")
	ErrInvalidQuantity    = errors.New("quantity must not be negative")
	ErrEmptyCSV           = errors.New("csv file contains no rows")
)

type (
	PantryItemRequest struct {
		Name             string   `json:"name" validate:"required"`
		Barcode          *string  `json:"barcode,omitempty"`
		Category         *string  `json:"category,omitempty"`
		Location         *string  `json:"location,omitempty" validate:"omitempty,oneof=Pantry Fridge Freezer"`
		Brand            *string  `json:"brand,omitempty"`
		Quantity         float64  `json:"quantity" validate:"min=0"`
		Unit             *string  `json:"unit,omitempty"`
		StockedDate      *string  `json:"stocked_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
		BestBy           *string  `json:"best_by,omitempty" validate:"omitempty,datetime=2006-01-02"`
		PreferredStoreID *uint    `json:"preferred_store_id,omitempty"`
		ProductNotes     *string  `json:"product_notes,omitempty"`
		ItemNotes        *string  `json:"item_notes,omitempty"`
		EstimatedPrice   *float64 `json:"estimated_price,omitempty" validate:"omitempty,gt=0"`
	}

	PantryItemResponse struct {
		ID               uint     `json:"id"`
		Name             string   `json:"name"`
		Barcode          *string  `json:"barcode,omitempty"`
		Category         *string  `json:"category,omitempty"`
		Location         *string  `json:"location,omitempty"`
		Brand            *string  `json:"brand,omitempty"`
		Quantity         float64  `json:"quantity"`
		Unit             *string  `json:"unit,omitempty"`
		StockedDate      *string  `json:"stocked_date,omitempty"`
		BestBy           *string  `json:"best_by,omitempty"`
		PreferredStoreID *uint    `json:"preferred_store_id,omitempty"`
		PreferredStore   *string  `json:"preferred_store,omitempty"`
		ProductNotes     *string  `json:"product_notes,omitempty"`
		ItemNotes        *string  `json:"item_notes,omitempty"`
		EstimatedPrice   *float64 `json:"estimated_price,omitempty"`
	}

	ImportCSVRequest struct {
		File *multipart.FileHeader `json:"file" form:"file" validate:"required"`
	}

	ImportCSVResponse struct {
		Inserted int `json:"inserted"`
		Updated  int `json:"updated"`
	}

	DeleteManyRequest struct {
		IDs []uint `json:"ids" validate:"required,min=1"`
	}
)
