package saletype

import (
	"dealerdesk/internal/domain"
)

// Repository defines the interface for SaleType persistence.
type Repository interface {
	domain.CatalogRepository[*SaleType]
}
