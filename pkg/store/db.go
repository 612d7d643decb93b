/*****************************************************************************************************************/

//	@package	vobscore
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

// Package store implements the two persisted-state surfaces of spec §6.5:
// a gorm/sqlite-backed snapshot table for per-step intermediate star lists,
// and a local-catalog loader over line-per-star text files with mtime-driven
// reload (spec §6.2).
package store

/*****************************************************************************************************************/

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

/*****************************************************************************************************************/

// Open returns a gorm.DB backed by a sqlite file at path, with its schema
// migrated. path may be ":memory:" for an ephemeral, process-local store.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("store: open %q: %w", path, err)
	}

	if err := db.AutoMigrate(&snapshotRow{}); err != nil {
		return nil, fmt.Errorf("store: migrate: %w", err)
	}

	return db, nil
}
