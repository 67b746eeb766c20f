// Package core defines the shared language of the LeapMeta system.
//
// This package contains:
//   - The metadata model (Table, Column) consumed by dialect drivers
//   - Query descriptions (QueryData, QueryOption) for paginated data previews
//   - The canonical column type enumeration (ColumnType)
//   - Data source connection settings (DataSourceConfig)
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
