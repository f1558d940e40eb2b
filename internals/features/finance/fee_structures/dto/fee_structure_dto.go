package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"schoolku_backend/internals/constants"
	model "schoolku_backend/internals/features/finance/fee_structures/model"
)

type CreateFeeStructureRequest struct {
	FeeStructureClassLevel  int16           `json:"fee_structure_class_level" validate:"required,min=1,max=12"`
	FeeStructureAmount      decimal.Decimal `json:"fee_structure_amount"`
	FeeStructureDescription *string         `json:"fee_structure_description" validate:"omitempty,max=500"`
}

func (r CreateFeeStructureRequest) ToModel() *model.FeeStructureModel {
	return &model.FeeStructureModel{
		FeeStructureClassLevel:  constants.ClassLevel(r.FeeStructureClassLevel),
		FeeStructureAmount:      r.FeeStructureAmount,
		FeeStructureDescription: trimPtr(r.FeeStructureDescription),
	}
}

type UpdateFeeStructureRequest struct {
	FeeStructureAmount      *decimal.Decimal `json:"fee_structure_amount"`
	FeeStructureDescription *string          `json:"fee_structure_description" validate:"omitempty,max=500"`
}

func (r *UpdateFeeStructureRequest) ApplyToModel(m *model.FeeStructureModel) {
	if r.FeeStructureAmount != nil {
		m.FeeStructureAmount = *r.FeeStructureAmount
	}
	if r.FeeStructureDescription != nil {
		m.FeeStructureDescription = trimPtr(r.FeeStructureDescription)
	}
}

type FeeStructureResponse struct {
	FeeStructureID          uuid.UUID       `json:"fee_structure_id"`
	FeeStructureClassLevel  int16           `json:"fee_structure_class_level"`
	FeeStructureClassKey    string          `json:"fee_structure_class_key"`
	FeeStructureAmount      decimal.Decimal `json:"fee_structure_amount"`
	FeeStructureDescription *string         `json:"fee_structure_description,omitempty"`
	FeeStructureCreatedAt   time.Time       `json:"fee_structure_created_at"`
	FeeStructureUpdatedAt   time.Time       `json:"fee_structure_updated_at"`
}

func FromModel(m *model.FeeStructureModel) FeeStructureResponse {
	return FeeStructureResponse{
		FeeStructureID:          m.FeeStructureID,
		FeeStructureClassLevel:  int16(m.FeeStructureClassLevel),
		FeeStructureClassKey:    m.FeeStructureClassLevel.Key(),
		FeeStructureAmount:      m.FeeStructureAmount,
		FeeStructureDescription: m.FeeStructureDescription,
		FeeStructureCreatedAt:   m.FeeStructureCreatedAt,
		FeeStructureUpdatedAt:   m.FeeStructureUpdatedAt,
	}
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
