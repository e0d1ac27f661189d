// Package models contains GORM persistence models that map to database tables.
// They are separate from domain entities so the domain layer stays free of
// ORM concerns.
//
// Each model offers ToDomain and FromDomain mappers; repositories read and
// write models only.
//
// Structure:
// - base.go: BaseModel and AggregateModel
// - identity.go: accounts
// - profile.go: vendor and supplier profiles
// - catalog.go: products and supplier inventory
// - ledger.go: orders, shared orders and the order number counter
// - analytics.go: the per-supplier dashboard cache
package models
