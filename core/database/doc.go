// Package database handles the connection to the quote record store and its
// schema inspection.
//
// It wraps GORM to configure MySQL connections from the application's
// configuration. The record store has lived through two schema generations
// (quote_items and the legacy quote_line_items); the inspector helpers let
// the export store probe which one a database holds instead of hardcoding
// an assumption.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    logg.Warn("Optional database connection failed", zap.Error(err))
//	}
//
//	exists, err := database.TableExists(db, "quote_items")
package database
