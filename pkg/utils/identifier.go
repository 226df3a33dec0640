package utils

import "strings"

// BacktickIdentifier adds backticks around a single ClickHouse identifier,
// doubling any embedded backticks. Dots are not treated as separators; use
// BacktickQualifiedName for database.table names.
//
// Examples:
//   - "table" -> "`table`"
//   - "my table" -> "`my table`"
//   - "" -> ""
func BacktickIdentifier(name string) string {
	if name == "" {
		return ""
	}
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// BacktickQualifiedName formats a qualified name (database.name) with proper backticks.
// If database is empty, only the name is backticked.
//
// Examples:
//   - ("analytics", "events") -> "`analytics`.`events`"
//   - ("", "events") -> "`events`"
func BacktickQualifiedName(database, name string) string {
	if database != "" {
		return BacktickIdentifier(database) + "." + BacktickIdentifier(name)
	}
	return BacktickIdentifier(name)
}
