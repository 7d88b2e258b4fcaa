package version

import (
	"dealerdesk/internal/domain"
)

// Repository defines the interface for Version persistence.
type Repository interface {
	domain.CatalogRepository[*Version]
}
