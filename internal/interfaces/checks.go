package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/libcatalog/internal/database/catalog"
	"github.com/mrlokans/libcatalog/internal/entities"
	"github.com/mrlokans/libcatalog/internal/services"
	"github.com/mrlokans/libcatalog/internal/tasks"
)

// =============================================================================
// Catalog Items
// =============================================================================

// Item variants
var _ entities.Item = (*entities.Book)(nil)
var _ entities.Item = (*entities.Audiobook)(nil)

// Rateable implementations
var _ entities.Rateable = (*entities.Book)(nil)
var _ entities.Rateable = (*entities.Audiobook)(nil)

// Lendable implementations (books only)
var _ entities.Lendable = (*entities.Book)(nil)

// =============================================================================
// Data Access Layer
// =============================================================================

// CatalogStore implementations
var _ services.CatalogReader = (*catalog.Repository)(nil)
var _ services.CatalogWriter = (*catalog.Repository)(nil)
var _ services.CatalogStore = (*catalog.Repository)(nil)

// =============================================================================
// Background Tasks
// =============================================================================

// CatalogExporter implementations
var _ tasks.CatalogExporter = (*services.Service)(nil)

// Enqueuer implementations
var _ tasks.Enqueuer = (*tasks.Client)(nil)
