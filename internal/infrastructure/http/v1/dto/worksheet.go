package dto

import (
	"dealerdesk/internal/domain/pricing"
	"dealerdesk/internal/domain/worksheet"
)

// OpenWorksheetRequest opens a worksheet session. RecordID seeds the
// worksheet from an existing document for editing.
type OpenWorksheetRequest struct {
	Kind     string `json:"kind" binding:"required,oneof=sale objective"`
	RecordID string `json:"recordId" binding:"omitempty,uuid"`
}

// MutationRequest is one field change applied to a worksheet.
type MutationRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`

	// Volume carries the numeric value for volume mutations.
	Volume int64 `json:"volume"`
}

// OptionResponse is one selectable entry in a cascading dropdown.
type OptionResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// OptionListsResponse carries the four dropdowns of the form.
type OptionListsResponse struct {
	Brands    []OptionResponse `json:"brands"`
	Models    []OptionResponse `json:"models"`
	Versions  []OptionResponse `json:"versions"`
	SaleTypes []OptionResponse `json:"saleTypes"`
}

// WorksheetResponse is the full form state returned after every operation.
type WorksheetResponse struct {
	ID         string `json:"id"`
	Kind       string `json:"kind"`
	RecordID   string `json:"recordId,omitempty"`
	TargetType string `json:"targetType"`
	BrandID    string `json:"brandId,omitempty"`
	ModelID    string `json:"modelId,omitempty"`
	VersionID  string `json:"versionId,omitempty"`
	SaleTypeID string `json:"saleTypeId,omitempty"`
	Volume     int64  `json:"volume"`

	Derived pricing.Display `json:"derived"`

	Options OptionListsResponse `json:"options"`
}

// FromWorksheet assembles the response from state and option lists.
func FromWorksheet(state *worksheet.State, opts worksheet.OptionLists) WorksheetResponse {
	return WorksheetResponse{
		ID:         state.ID,
		Kind:       string(state.Kind),
		RecordID:   state.RecordID,
		TargetType: string(state.Selection.Target),
		BrandID:    state.Selection.BrandID,
		ModelID:    state.Selection.ModelID,
		VersionID:  state.Selection.VersionID,
		SaleTypeID: state.SaleTypeID,
		Volume:     state.Volume,
		Derived:    state.Derived.Display(),
		Options:    fromOptionLists(opts),
	}
}

func fromOptionLists(opts worksheet.OptionLists) OptionListsResponse {
	return OptionListsResponse{
		Brands:    fromNodes(opts.Brands),
		Models:    fromNodes(opts.Models),
		Versions:  fromNodes(opts.Versions),
		SaleTypes: fromSaleTypes(opts.SaleTypes),
	}
}

func fromNodes(nodes []pricing.Node) []OptionResponse {
	out := make([]OptionResponse, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, OptionResponse{ID: n.ID, Name: n.Name})
	}
	return out
}

func fromSaleTypes(saleTypes []pricing.SaleType) []OptionResponse {
	out := make([]OptionResponse, 0, len(saleTypes))
	for _, st := range saleTypes {
		out = append(out, OptionResponse{ID: st.ID, Name: st.Name})
	}
	return out
}
