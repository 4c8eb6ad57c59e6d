package repositories

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockRow menambahkan FOR UPDATE/SHARE untuk dialect yang mendukungnya.
// sqlite men-serialisasi writer; sqlserver memakai hint tabel yang tidak
// dihasilkan oleh clause.Locking.
func lockRow(db *gorm.DB, strength string) *gorm.DB {
	switch db.Dialector.Name() {
	case "postgres", "mysql":
		return db.Clauses(clause.Locking{Strength: strength})
	}
	return db
}
