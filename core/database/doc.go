// Package database handles the relational database connection.
//
// It wraps GORM to configure the connection holding access-control records
// (trusted upload sources and suppressed uploaders). MySQL is the production
// driver; an in-memory SQLite database backs tests.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
package database
