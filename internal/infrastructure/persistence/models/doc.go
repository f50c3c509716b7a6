// Package models contains GORM-specific persistence models for aggregates
// whose shape does not map one-to-one onto a single table. The order
// aggregate is stored across three tables (orders, order_items,
// order_status_history) and needs explicit mappers; simpler aggregates are
// persisted directly by their repositories.
package models
