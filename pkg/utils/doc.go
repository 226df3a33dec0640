// Package utils provides small helpers shared across the adapters.
//
// BacktickIdentifier and BacktickQualifiedName quote ClickHouse identifiers
// for generated statements:
//
//	utils.BacktickQualifiedName("analytics", "events") // `analytics`.`events`
package utils
