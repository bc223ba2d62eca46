// Package account defines the account record shared by the view-model, the
// backends and the transports.
//
// It holds:
//   - Account: the record with its optional fields and nested LastModifiedBy
//   - Level: the categorical field used to split accounts into level tables
//   - Column: table column metadata consumed by the rendering layer
//   - Outcome: per-record bulk update results encoded with a leading marker
package account
