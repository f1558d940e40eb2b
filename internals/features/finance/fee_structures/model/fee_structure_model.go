// file: internals/features/finance/fee_structures/model/fee_structure_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"schoolku_backend/internals/constants"
)

/*
  fee_structures = tarif tahunan per class level
  - maksimal satu baris per level (unique index)
*/

type FeeStructureModel struct {
	FeeStructureID uuid.UUID `gorm:"column:fee_structure_id;type:uuid;default:gen_random_uuid();primaryKey" json:"fee_structure_id"`

	FeeStructureClassLevel  constants.ClassLevel `gorm:"column:fee_structure_class_level;type:smallint;not null;uniqueIndex:uq_fee_structures_class_level" json:"fee_structure_class_level"`
	FeeStructureAmount      decimal.Decimal      `gorm:"column:fee_structure_amount;type:numeric(14,2);not null" json:"fee_structure_amount"`
	FeeStructureDescription *string              `gorm:"column:fee_structure_description;type:text" json:"fee_structure_description,omitempty"`

	FeeStructureCreatedAt time.Time `gorm:"column:fee_structure_created_at;type:timestamptz;not null;autoCreateTime" json:"fee_structure_created_at"`
	FeeStructureUpdatedAt time.Time `gorm:"column:fee_structure_updated_at;type:timestamptz;not null;autoUpdateTime" json:"fee_structure_updated_at"`
}

func (FeeStructureModel) TableName() string { return "fee_structures" }
