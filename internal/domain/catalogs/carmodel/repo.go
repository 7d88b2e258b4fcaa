package carmodel

import (
	"dealerdesk/internal/domain"
)

// Repository defines the interface for Model persistence.
type Repository interface {
	domain.CatalogRepository[*Model]
}
