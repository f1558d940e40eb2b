package fee_structures

import (
	"context"
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/finance/fee_structures/model"
)

type FeeStructureSeed struct {
	ClassLevel  int16           `json:"class_level"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// SeedFeeStructuresFromJSON inserts one fee per class level; existing levels are skipped.
func SeedFeeStructuresFromJSON(ctx context.Context, db *gorm.DB, filePath string, log *zap.Logger) error {
	log.Info("📥 reading seed file", zap.String("path", filePath))
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("read %s: %w", filePath, err)
	}
	var seeds []FeeStructureSeed
	if err := sonic.Unmarshal(raw, &seeds); err != nil {
		return fmt.Errorf("decode %s: %w", filePath, err)
	}

	rows := make([]model.FeeStructureModel, 0, len(seeds))
	for _, s := range seeds {
		lvl := constants.ClassLevel(s.ClassLevel)
		if !lvl.Valid() || !s.Amount.IsPositive() {
			log.Warn("skip invalid fee seed", zap.Int16("class_level", s.ClassLevel))
			continue
		}
		desc := s.Description
		rows = append(rows, model.FeeStructureModel{
			FeeStructureClassLevel:  lvl,
			FeeStructureAmount:      s.Amount,
			FeeStructureDescription: &desc,
		})
	}
	if len(rows) == 0 {
		return nil
	}
	res := db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&rows)
	if res.Error != nil {
		return res.Error
	}
	log.Info("✅ fee structures seeded", zap.Int64("inserted", res.RowsAffected))
	return nil
}
