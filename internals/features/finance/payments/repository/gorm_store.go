// file: internals/features/finance/payments/repository/gorm_store.go
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"schoolku_backend/internals/constants"
	feeModel "schoolku_backend/internals/features/finance/fee_structures/model"
	model "schoolku_backend/internals/features/finance/payments/model"
	studentModel "schoolku_backend/internals/features/school/students/model"
	helper "schoolku_backend/internals/helpers"
)

type GormLedgerStore struct {
	db *gorm.DB
}

func NewGormLedgerStore(db *gorm.DB) *GormLedgerStore {
	return &GormLedgerStore{db: db}
}

var _ LedgerStore = (*GormLedgerStore)(nil)

/* ===================== students & fee structures ===================== */

func (s *GormLedgerStore) GetStudent(ctx context.Context, id uuid.UUID) (*studentModel.StudentModel, error) {
	var m studentModel.StudentModel
	if err := s.db.WithContext(ctx).First(&m, "student_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (s *GormLedgerStore) ListStudents(ctx context.Context, f StudentFilter) ([]studentModel.StudentModel, error) {
	q := s.db.WithContext(ctx).Model(&studentModel.StudentModel{})
	if f.ClassLevel != constants.ClassLevelUnassigned {
		q = q.Where("student_class_level = ?", f.ClassLevel)
	}
	if f.ActiveOnly {
		q = q.Where("student_is_active = TRUE")
	}
	var rows []studentModel.StudentModel
	err := q.Order("student_class_level ASC, student_name ASC, student_id ASC").Find(&rows).Error
	return rows, err
}

func (s *GormLedgerStore) GetFeeStructureByLevel(ctx context.Context, lvl constants.ClassLevel) (*feeModel.FeeStructureModel, error) {
	var m feeModel.FeeStructureModel
	if err := s.db.WithContext(ctx).First(&m, "fee_structure_class_level = ?", lvl).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFeeStructureNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (s *GormLedgerStore) ListFeeStructures(ctx context.Context) ([]feeModel.FeeStructureModel, error) {
	var rows []feeModel.FeeStructureModel
	err := s.db.WithContext(ctx).Order("fee_structure_class_level ASC").Find(&rows).Error
	return rows, err
}

/* ===================== ledger reads ===================== */

func (s *GormLedgerStore) ListSuccessfulOnlinePayments(ctx context.Context, studentID uuid.UUID) ([]model.OnlinePaymentModel, error) {
	var rows []model.OnlinePaymentModel
	err := s.db.WithContext(ctx).
		Where("online_payment_student_id = ? AND online_payment_status = ?", studentID, model.OnlinePaymentStatusSuccess).
		Order("online_payment_created_at ASC, online_payment_id ASC").
		Find(&rows).Error
	return rows, err
}

func (s *GormLedgerStore) ListOfflinePayments(ctx context.Context, studentID uuid.UUID) ([]model.OfflinePaymentModel, error) {
	var rows []model.OfflinePaymentModel
	err := s.db.WithContext(ctx).
		Where("offline_payment_student_id = ?", studentID).
		Order("offline_payment_paid_at ASC, offline_payment_id ASC").
		Find(&rows).Error
	return rows, err
}

func (s *GormLedgerStore) ListClaimedMonths(ctx context.Context, studentID uuid.UUID, months []string) ([]string, error) {
	out := []string{}
	if len(months) == 0 {
		return out, nil
	}
	err := s.db.WithContext(ctx).
		Model(&model.PaymentMonthClaimModel{}).
		Where("payment_month_claim_student_id = ? AND payment_month_claim_month_label IN ?", studentID, months).
		Order("payment_month_claim_month_label ASC").
		Pluck("payment_month_claim_month_label", &out).Error
	return out, err
}

/* ===================== online ===================== */

func (s *GormLedgerStore) CreateOnlinePayment(ctx context.Context, p *model.OnlinePaymentModel) error {
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return ErrDuplicateOrderID
		}
		return err
	}
	return nil
}

func (s *GormLedgerStore) GetOnlinePaymentByOrderID(ctx context.Context, orderID string) (*model.OnlinePaymentModel, error) {
	var m model.OnlinePaymentModel
	if err := s.db.WithContext(ctx).First(&m, "online_payment_order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (s *GormLedgerStore) UpdateOnlinePayment(ctx context.Context, p *model.OnlinePaymentModel) error {
	return s.db.WithContext(ctx).Save(p).Error
}

func (s *GormLedgerStore) SetOnlinePaymentCheckout(ctx context.Context, id uuid.UUID, token, redirectURL string) error {
	res := s.db.WithContext(ctx).
		Model(&model.OnlinePaymentModel{}).
		Where("online_payment_id = ?", id).
		Select("online_payment_snap_token", "online_payment_redirect_url", "online_payment_updated_at").
		Updates(map[string]any{
			"online_payment_snap_token":   token,
			"online_payment_redirect_url": redirectURL,
			"online_payment_updated_at":   time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

func (s *GormLedgerStore) ListOnlinePayments(ctx context.Context, f OnlinePaymentFilter) ([]model.OnlinePaymentModel, int64, error) {
	q := s.db.WithContext(ctx).Model(&model.OnlinePaymentModel{})
	if f.StudentID != nil {
		q = q.Where("online_payment_student_id = ?", *f.StudentID)
	}
	if f.Status != "" {
		q = q.Where("online_payment_status = ?", f.Status)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []model.OnlinePaymentModel
	if f.Limit > 0 {
		q = q.Offset(f.Offset).Limit(f.Limit)
	}
	err := q.Order("online_payment_created_at DESC").Find(&rows).Error
	return rows, total, err
}

func (s *GormLedgerStore) ListStaleOnlineOrders(ctx context.Context, createdBefore time.Time, limit int) ([]model.OnlinePaymentModel, error) {
	var rows []model.OnlinePaymentModel
	err := s.db.WithContext(ctx).
		Where("online_payment_status = ? AND online_payment_created_at < ?", model.OnlinePaymentStatusCreated, createdBefore).
		Order("online_payment_created_at ASC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

/* ===================== offline ===================== */

func (s *GormLedgerStore) CreateOfflinePayment(ctx context.Context, p *model.OfflinePaymentModel) error {
	return s.db.WithContext(ctx).Create(p).Error
}

func (s *GormLedgerStore) GetOfflinePayment(ctx context.Context, id uuid.UUID) (*model.OfflinePaymentModel, error) {
	var m model.OfflinePaymentModel
	if err := s.db.WithContext(ctx).First(&m, "offline_payment_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (s *GormLedgerStore) DeleteOfflinePayment(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&model.OfflinePaymentModel{}, "offline_payment_id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

func (s *GormLedgerStore) ListOfflinePaymentsPage(ctx context.Context, f OfflinePaymentFilter) ([]model.OfflinePaymentModel, int64, error) {
	q := s.db.WithContext(ctx).Model(&model.OfflinePaymentModel{})
	if f.StudentID != nil {
		q = q.Where("offline_payment_student_id = ?", *f.StudentID)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []model.OfflinePaymentModel
	if f.Limit > 0 {
		q = q.Offset(f.Offset).Limit(f.Limit)
	}
	err := q.Order("offline_payment_paid_at DESC").Find(&rows).Error
	return rows, total, err
}

/* ===================== claims ===================== */

func (s *GormLedgerStore) InsertClaims(ctx context.Context, claims []model.PaymentMonthClaimModel) error {
	if len(claims) == 0 {
		return nil
	}
	// Savepoint, so the enclosing transaction stays usable after a violation.
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&claims).Error
	})
	if err != nil {
		if helper.IsUniqueViolation(err) {
			return ErrMonthClaimed
		}
		return err
	}
	return nil
}

func (s *GormLedgerStore) ReleaseClaims(ctx context.Context, paymentID uuid.UUID) error {
	return s.db.WithContext(ctx).
		Where("payment_month_claim_payment_id = ?", paymentID).
		Delete(&model.PaymentMonthClaimModel{}).Error
}

/* ===================== gateway events ===================== */

func (s *GormLedgerStore) CreateGatewayEvent(ctx context.Context, ev *model.GatewayEventModel) error {
	return s.db.WithContext(ctx).Create(ev).Error
}

func (s *GormLedgerStore) UpdateGatewayEvent(ctx context.Context, ev *model.GatewayEventModel) error {
	return s.db.WithContext(ctx).Save(ev).Error
}

/* ===================== locking ===================== */

// WithStudentLock opens a transaction and takes SELECT ... FOR UPDATE on the
// student row. Concurrent writers for the same student queue on that lock.
func (s *GormLedgerStore) WithStudentLock(ctx context.Context, studentID uuid.UUID, fn func(tx LedgerStore) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var st studentModel.StudentModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("student_id").
			First(&st, "student_id = ?", studentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStudentNotFound
			}
			return err
		}
		return fn(&GormLedgerStore{db: tx})
	})
}
