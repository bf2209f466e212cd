// Package database handles the optional relational database connection.
//
// It provides a wrapper around GORM to configure MySQL connections based on the
// application's configuration. The storage API works without a database; when
// one is enabled it backs the activity history feature.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    logg.Warn("Optional database connection failed", zap.Error(err))
//	}
package database
