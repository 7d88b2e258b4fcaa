// Package worksheet implements the server-side entry form for sale records
// and sales objectives: a state machine over the target selection, volume and
// sale type, with derived pricing recomputed after every transition.
package worksheet

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"dealerdesk/internal/domain/pricing"
)

// Kind distinguishes what the worksheet will be saved as.
type Kind string

const (
	KindSale      Kind = "sale"
	KindObjective Kind = "objective"
)

// Valid reports whether k is a known worksheet kind.
func (k Kind) Valid() bool {
	return k == KindSale || k == KindObjective
}

// State is the serializable part of a worksheet session. Everything else
// (option caches, collaborators) is reattached by the manager per request.
type State struct {
	ID   string `json:"id"`
	Kind Kind   `json:"kind"`

	// RecordID is set when the worksheet edits an existing record.
	RecordID string `json:"recordId,omitempty"`

	Selection  pricing.Selection `json:"selection"`
	Volume     int64             `json:"volume"`
	SaleTypeID string            `json:"saleTypeId,omitempty"`

	Derived pricing.Derived `json:"derived"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Clone returns a copy so stores never hand out shared mutable state.
func (s *State) Clone() *State {
	cp := *s
	return &cp
}

// SaveSnapshot is the payload handed to persistence when a worksheet is
// saved. Pricing fields are snapshots taken at save time; the server does not
// recompute them afterwards.
type SaveSnapshot struct {
	Kind       Kind            `json:"kind"`
	Target     pricing.Target  `json:"target"`
	BrandID    string          `json:"brandId"`
	ModelID    string          `json:"modelId,omitempty"`
	VersionID  string          `json:"versionId,omitempty"`
	SaleTypeID string          `json:"saleTypeId"`
	Volume     int64           `json:"volume"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	Revenue    decimal.Decimal `json:"revenue"`
	MarginRate decimal.Decimal `json:"marginRate"`
	Margin     decimal.Decimal `json:"marginAmount"`
}

// RecordWriter is the persistence collaborator a worksheet saves through.
// internal/domain/sales provides implementations for sale records and
// objectives.
type RecordWriter interface {
	// Create persists a new record and returns its id.
	Create(ctx context.Context, snap SaveSnapshot) (string, error)

	// Update overwrites an existing record's target and snapshot values.
	Update(ctx context.Context, recordID string, snap SaveSnapshot) error

	// Load returns the stored snapshot used to seed an edit worksheet.
	Load(ctx context.Context, recordID string) (SaveSnapshot, error)
}
