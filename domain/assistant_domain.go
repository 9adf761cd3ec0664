package domain

import "errors"

var (
	MessageSuccessSuggestWeek = "week suggestions generated successfully"
	MessageFailedSuggestWeek  = "failed to generate week suggestions"

	ErrAIKeyNotConfigured = errors.New("assistant api key not configured")
	ErrAICallFailed       = errors.New("assistant call failed")
	ErrAIResponseInvalid  = errors.New("assistant response could not be parsed")
	ErrFetchURLFailed     = errors.New("failed to fetch url")
)

type (
	// NormalizedIngredient is one normalizer result, positionally aligned
	// with the input ingredient list. All-nil fields mean the entry was
	// missing from the response and callers fall back to the raw fields.
	NormalizedIngredient struct {
		ShoppingName *string  `json:"shopping_name"`
		ShoppingQty  *float64 `json:"shopping_qty"`
		ShoppingUnit *string  `json:"shopping_unit"`
	}

	// ReceiptImage is a decoded upload handed to the assistant.
	ReceiptImage struct {
		MediaType string
		Data      []byte
	}
)
