// Package sqlstore is a database/sql account backend. It registers the MySQL
// and SQLite drivers and uses only portable SQL with "?" placeholders so the
// same queries run on both.
package sqlstore
