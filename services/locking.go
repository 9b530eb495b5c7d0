package services

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockForUpdate takes a row-level lock inside a transaction so concurrent
// offer submissions and accepts on the same job serialize. SQLite has a
// single writer and rejects FOR UPDATE syntax, so the clause is skipped
// there (tests run on in-memory SQLite).
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
