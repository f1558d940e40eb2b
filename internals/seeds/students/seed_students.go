package students

import (
	"context"
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/school/students/model"
)

type StudentSeed struct {
	Name          string  `json:"name"`
	AdmissionNo   string  `json:"admission_no"`
	ClassLabel    string  `json:"class_label"`
	Section       *string `json:"section"`
	GuardianName  *string `json:"guardian_name"`
	GuardianPhone *string `json:"guardian_phone"`
	GuardianEmail *string `json:"guardian_email"`
}

// SeedStudentsFromJSON: admission number yang sudah ada dilewati.
func SeedStudentsFromJSON(ctx context.Context, db *gorm.DB, filePath string, log *zap.Logger) error {
	log.Info("📥 reading seed file", zap.String("path", filePath))
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("read %s: %w", filePath, err)
	}
	var seeds []StudentSeed
	if err := sonic.Unmarshal(raw, &seeds); err != nil {
		return fmt.Errorf("decode %s: %w", filePath, err)
	}

	rows := make([]model.StudentModel, 0, len(seeds))
	for _, s := range seeds {
		lvl, _ := constants.ParseClassLevel(s.ClassLabel)
		rows = append(rows, model.StudentModel{
			StudentName:          s.Name,
			StudentAdmissionNo:   s.AdmissionNo,
			StudentClassLabel:    s.ClassLabel,
			StudentClassLevel:    lvl,
			StudentSection:       s.Section,
			StudentGuardianName:  s.GuardianName,
			StudentGuardianPhone: s.GuardianPhone,
			StudentGuardianEmail: s.GuardianEmail,
			StudentIsActive:      true,
		})
	}
	if len(rows) == 0 {
		return nil
	}
	res := db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(&rows, 100)
	if res.Error != nil {
		return res.Error
	}
	log.Info("✅ students seeded", zap.Int64("inserted", res.RowsAffected))
	return nil
}
