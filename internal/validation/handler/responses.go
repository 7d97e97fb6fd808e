package handler

import (
	"panguard/internal/validation"
	"panguard/pkg/card"
)

// ValidateCardResponse is the HTTP response for one evaluated card. The
// submitted number is never echoed back; MaskedNumber is the only form of
// it that appears in a response.
type ValidateCardResponse struct {
	Scheme       string `json:"scheme"`
	Valid        bool   `json:"valid"`
	Reason       string `json:"reason"`
	Length       int    `json:"length,omitempty"`
	MaskedNumber string `json:"masked_number,omitempty"`
}

// FromCardResult converts a domain CardResult to an HTTP response.
func FromCardResult(result *validation.CardResult) *ValidateCardResponse {
	return &ValidateCardResponse{
		Scheme:       string(result.Scheme),
		Valid:        result.Valid,
		Reason:       string(result.Reason),
		Length:       result.Length,
		MaskedNumber: result.MaskedNumber,
	}
}

// ValidateBatchResponse is the HTTP response for POST /cards/validate/batch.
// Results appear in submission order.
type ValidateBatchResponse struct {
	Results      []ValidateCardResponse `json:"results"`
	Total        int                    `json:"total"`
	ValidCount   int                    `json:"valid_count"`
	InvalidCount int                    `json:"invalid_count"`
}

// FromBatchResult converts a domain BatchResult to an HTTP response.
func FromBatchResult(result *validation.BatchResult) *ValidateBatchResponse {
	results := make([]ValidateCardResponse, len(result.Results))
	for i := range result.Results {
		results[i] = *FromCardResult(&result.Results[i])
	}
	return &ValidateBatchResponse{
		Results:      results,
		Total:        len(results),
		ValidCount:   result.ValidCount,
		InvalidCount: result.InvalidCount,
	}
}

// SchemeResponse describes one supported card network.
type SchemeResponse struct {
	Code             string   `json:"code"`
	DisplayName      string   `json:"display_name"`
	Lengths          []int    `json:"lengths"`
	Prefixes         []string `json:"prefixes"`
	RequiresChecksum bool     `json:"requires_checksum"`
}

// ListSchemesResponse is the HTTP response for GET /schemes.
type ListSchemesResponse struct {
	Schemes []SchemeResponse `json:"schemes"`
	Count   int              `json:"count"`
}

// FromDefinition converts a registry definition to an HTTP response.
func FromDefinition(def card.Definition) *SchemeResponse {
	return &SchemeResponse{
		Code:             string(def.Scheme),
		DisplayName:      def.DisplayName,
		Lengths:          def.Lengths,
		Prefixes:         def.Prefixes,
		RequiresChecksum: def.RequiresChecksum,
	}
}

// FromDefinitions converts the registry catalog to an HTTP response.
func FromDefinitions(defs []card.Definition) *ListSchemesResponse {
	schemes := make([]SchemeResponse, len(defs))
	for i, def := range defs {
		schemes[i] = *FromDefinition(def)
	}
	return &ListSchemesResponse{
		Schemes: schemes,
		Count:   len(schemes),
	}
}
