// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - ExtractionSource: Supplies the document and annotations (sample, file)
//   - DocumentSurface: Display region for the document view (HTML, terminal)
//   - OutlineSurface: Display region for the outline view (HTML, terminal)
//   - ConfigStore: Application configuration (TOML)
//
// Renderers fail with domain.ErrMissingSurface when a surface is nil,
// rather than rendering into nothing.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
