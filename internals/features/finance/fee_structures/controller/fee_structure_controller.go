// file: internals/features/finance/fee_structures/controller/fee_structure_controller.go
package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dto "schoolku_backend/internals/features/finance/fee_structures/dto"
	model "schoolku_backend/internals/features/finance/fee_structures/model"
	helper "schoolku_backend/internals/helpers"
)

type FeeStructureController struct {
	DB *gorm.DB
}

func NewFeeStructureController(db *gorm.DB) *FeeStructureController {
	return &FeeStructureController{DB: db}
}

// POST /api/a/fee-structures
func (h *FeeStructureController) Create(c *fiber.Ctx) error {
	var req dto.CreateFeeStructureRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	if !req.FeeStructureAmount.IsPositive() {
		return helper.JsonValidationError(c, map[string][]string{"fee_structure_amount": {"must be greater than 0"}})
	}

	m := req.ToModel()
	if err := h.DB.WithContext(c.UserContext()).Create(m).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "fee structure for this class already exists")
		}
		return helper.WritePGError(c, err)
	}
	return helper.JsonCreated(c, "fee structure created", dto.FromModel(m))
}

// GET /api/a/fee-structures
func (h *FeeStructureController) List(c *fiber.Ctx) error {
	var rows []model.FeeStructureModel
	if err := h.DB.WithContext(c.UserContext()).
		Order("fee_structure_class_level ASC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to fetch fee structures")
	}
	out := make([]dto.FeeStructureResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.FromModel(&rows[i]))
	}
	return helper.JsonOK(c, "ok", out)
}

// GET /api/a/fee-structures/:id
func (h *FeeStructureController) GetByID(c *fiber.Ctx) error {
	m, err := h.find(c)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", dto.FromModel(m))
}

// PATCH /api/a/fee-structures/:id
func (h *FeeStructureController) Update(c *fiber.Ctx) error {
	m, err := h.find(c)
	if err != nil {
		return err
	}
	var req dto.UpdateFeeStructureRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	if req.FeeStructureAmount != nil && !req.FeeStructureAmount.IsPositive() {
		return helper.JsonValidationError(c, map[string][]string{"fee_structure_amount": {"must be greater than 0"}})
	}
	req.ApplyToModel(m)

	if err := h.DB.WithContext(c.UserContext()).Save(m).Error; err != nil {
		return helper.WritePGError(c, err)
	}
	return helper.JsonUpdated(c, "fee structure updated", dto.FromModel(m))
}

// DELETE /api/a/fee-structures/:id
func (h *FeeStructureController) Delete(c *fiber.Ctx) error {
	m, err := h.find(c)
	if err != nil {
		return err
	}
	if err := h.DB.WithContext(c.UserContext()).
		Delete(&model.FeeStructureModel{}, "fee_structure_id = ?", m.FeeStructureID).Error; err != nil {
		return helper.WritePGError(c, err)
	}
	return helper.JsonDeleted(c, "fee structure deleted", fiber.Map{"fee_structure_id": m.FeeStructureID})
}

func (h *FeeStructureController) find(c *fiber.Ctx) (*model.FeeStructureModel, error) {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return nil, err
	}
	var m model.FeeStructureModel
	if err := h.DB.WithContext(c.UserContext()).First(&m, "fee_structure_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "fee structure not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to fetch fee structure")
	}
	return &m, nil
}
