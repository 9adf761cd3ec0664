package domain

import "errors"

var (
	MessageSuccessAddStore    = "store added successfully"
	MessageSuccessUpdateStore = "store updated successfully"
	MessageSuccessDeleteStore = "store deleted successfully"
	MessageSuccessGetStores   = "stores retrieved successfully"

	MessageFailedAddStore    = "failed to add store"
	MessageFailedUpdateStore = "failed to update store"
	MessageFailedDeleteStore = "failed to delete store"
	MessageFailedGetStores   = "failed to retrieve stores"

	ErrStoreNotFound      = errors.New("store not found")
	ErrStoreAlreadyExists = errors.New("store already exists")
)

type (
	StoreRequest struct {
		Name     string  `json:"name" validate:"required"`
		Location *string `json:"location,omitempty"`
		Notes    *string `json:"notes,omitempty"`
	}

	StoreResponse struct {
		ID       uint    `json:"id"`
		Name     string  `json:"name"`
		Location *string `json:"location,omitempty"`
		Notes    *string `json:"notes,omitempty"`
	}
)
