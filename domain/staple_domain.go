package domain

import "errors"

var (
	MessageSuccessAddStaple    = "staple added successfully"
	MessageSuccessUpdateStaple = "staple updated successfully"
	MessageSuccessDeleteStaple = "staple deleted successfully"
	MessageSuccessGetStaples   = "staples retrieved successfully"
	MessageSuccessToggleStaple = "staple need-to-buy updated successfully"

	MessageFailedAddStaple    = "failed to add staple"
	MessageFailedUpdateStaple = "failed to update staple"
	MessageFailedDeleteStaple = "failed to delete staple"
	MessageFailedGetStaples   = "failed to retrieve staples"
	MessageFailedToggleStaple = "failed to update staple need-to-buy"

	ErrStapleNotFound      = errors.New("staple not found")
	ErrStapleAlreadyExists = errors.New("staple already exists")
)

type (
	StapleRequest struct {
		Name             string  `json:"name" validate:"required"`
		Category         *string `json:"category,omitempty"`
		PreferredStoreID *uint   `json:"preferred_store_id,omitempty"`
		NeedToBuy        bool    `json:"need_to_buy"`
	}

	StapleResponse struct {
		ID               uint    `json:"id"`
		Name             string  `json:"name"`
		Category         *string `json:"category,omitempty"`
		PreferredStoreID *uint   `json:"preferred_store_id,omitempty"`
		PreferredStore   *string `json:"preferred_store,omitempty"`
		NeedToBuy        bool    `json:"need_to_buy"`
	}

	SetNeedToBuyRequest struct {
		NeedToBuy bool `json:"need_to_buy"`
	}
)
