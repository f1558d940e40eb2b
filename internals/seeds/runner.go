package seeds

import (
	"context"
	"path/filepath"

	"go.uber.org/zap"
	"gorm.io/gorm"

	feeSeed "schoolku_backend/internals/seeds/fee_structures"
	studentSeed "schoolku_backend/internals/seeds/students"
	userSeed "schoolku_backend/internals/seeds/users"
)

// RunAllSeeds reads data_*.json from dir. Safe to run repeatedly.
func RunAllSeeds(ctx context.Context, db *gorm.DB, dir string, log *zap.Logger) error {
	log = log.Named("seed")

	//* Users
	if err := userSeed.SeedUsersFromJSON(ctx, db, filepath.Join(dir, "users", "data_users.json"), log); err != nil {
		return err
	}

	//* Fee structures
	if err := feeSeed.SeedFeeStructuresFromJSON(ctx, db, filepath.Join(dir, "fee_structures", "data_fee_structures.json"), log); err != nil {
		return err
	}

	//* Students
	return studentSeed.SeedStudentsFromJSON(ctx, db, filepath.Join(dir, "students", "data_students.json"), log)
}
