// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Catalog Items
//
//   - Item: Sealed sum of *Book and *Audiobook (internal/entities/item.go)
//   - Rateable: Items that accept ratings (internal/entities/item.go)
//   - Lendable: Items that can be lent and returned (internal/entities/item.go)
//
// ## Data Access Interfaces
//
//   - CatalogReader: Read-only access to the catalog (internal/services/interfaces.go)
//   - CatalogWriter: Persist, update and delete items (internal/services/interfaces.go)
//   - CatalogStore: Both of the above, implemented by catalog.Repository
//
// ## Background Task Interfaces
//
//   - CatalogExporter: Source of CSV backups (internal/tasks/backup.go)
//   - Enqueuer: Submits tasks to the queue (internal/tasks/backup.go)
//
// # Adding a New Item Variant
//
// Item is sealed: only types in the entities package can implement it.
// To add a variant (e.g., Magazine):
//
//  1. Define the type in internal/entities/, embedding CatalogItem
//
//     type Magazine struct {
//         CatalogItem
//         Issue int
//     }
//
//     func (m *Magazine) Kind() Kind { return KindMagazine }
//
//  2. Add a specialization table and its row mapping in internal/database/catalog/
//
//  3. Extend the CSV codec in internal/catalogcsv/ with a new Tipo tag
//
//  4. Add compile-time checks to checks.go
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// This pattern is used throughout the codebase. See checks.go for examples.
package interfaces
