// Package models contains GORM persistence models that map to database tables.
// Domain entities stay free of ORM tags; each model carries ToDomain and
// FromDomain mappers used by the repositories.
//
// Structure:
//   - base.go: shared columns (BaseModel, AggregateModel)
//   - catalog.go: vendors and products
//   - identity.go: shopper profiles and delivery addresses
//   - order.go: orders and their flattened line items
//   - notification.go: in-app notifications
package models
