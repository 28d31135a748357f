// Package repository holds the user credential store. Receipts are not
// persisted: the system returns structured data to the client and keeps no
// ledger.
package repository

import (
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gastozero/backend/internal/common"
)

// Open opens the sqlite database and migrates the schema.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, common.WrapError(err, "open database")
	}
	if err := db.AutoMigrate(&User{}); err != nil {
		return nil, common.WrapError(err, "migrate database")
	}
	return db, nil
}
