package database

import (
	"context"

	"gorm.io/gorm"
)

// Step is one write operation inside an atomic unit.
type Step func(tx *gorm.DB) error

// RunAtomic executes the steps in order inside a single transaction. The
// first failing step aborts the unit and rolls back every prior step; there
// are no partial retries, callers re-run the whole unit if desired.
func RunAtomic(ctx context.Context, db *gorm.DB, steps ...Step) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, step := range steps {
			if err := step(tx); err != nil {
				return err
			}
		}
		return nil
	})
}
