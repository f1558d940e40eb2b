// file: internals/features/finance/payments/service/fee_report.go
package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"schoolku_backend/internals/constants"
	feeModel "schoolku_backend/internals/features/finance/fee_structures/model"
	"schoolku_backend/internals/features/finance/payments/repository"
	studentModel "schoolku_backend/internals/features/school/students/model"
)

type ReportFilter struct {
	ClassLevel constants.ClassLevel // 0 = every class
	ActiveOnly bool
}

// StudentFeeRow is one student's standing, with guardian contacts for follow-up.
type StudentFeeRow struct {
	StudentID          uuid.UUID `json:"student_id"`
	StudentName        string    `json:"student_name"`
	StudentAdmissionNo string    `json:"student_admission_no"`
	ClassKey           string    `json:"class_key"`
	ClassLabel         string    `json:"class_label"`
	Section            *string   `json:"section,omitempty"`

	GuardianName  *string `json:"guardian_name,omitempty"`
	GuardianPhone *string `json:"guardian_phone,omitempty"`
	GuardianEmail *string `json:"guardian_email,omitempty"`

	ClassFee           decimal.Decimal `json:"class_fee"`
	TotalPaid          decimal.Decimal `json:"total_paid"`
	Due                decimal.Decimal `json:"due"`
	HasPaidFull        bool            `json:"has_paid_full"`
	HasPaidHalf        bool            `json:"has_paid_half"`
	MonthlyInstallment decimal.Decimal `json:"monthly_installment"`
	PaidMonths         []string        `json:"paid_months"`
}

type StatusReport struct {
	Completed []StudentFeeRow `json:"completed"`
	Pending   []StudentFeeRow `json:"pending"`
	// Students without a fee structure for their class.
	Skipped int `json:"skipped"`
}

// StudentFeeStatus is the single-student view behind GET .../status.
type StudentFeeStatus struct {
	StudentFeeRow
	Ledger *Ledger `json:"ledger"`
}

func (s *FeeService) StudentStatus(ctx context.Context, studentID uuid.UUID) (*StudentFeeStatus, error) {
	st, err := s.store.GetStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	fs, err := s.store.GetFeeStructureByLevel(ctx, st.StudentClassLevel)
	if err != nil {
		return nil, err
	}
	ledger, err := s.MergeLedger(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return &StudentFeeStatus{StudentFeeRow: s.buildRow(st, fs.FeeStructureAmount, ledger), Ledger: ledger}, nil
}

// BuildStatusReport walks every student sequentially and splits them into
// completed (nothing due) and pending. Recomputed from scratch on every call.
func (s *FeeService) BuildStatusReport(ctx context.Context, f ReportFilter) (*StatusReport, error) {
	students, err := s.store.ListStudents(ctx, repository.StudentFilter{ClassLevel: f.ClassLevel, ActiveOnly: f.ActiveOnly})
	if err != nil {
		return nil, err
	}
	fees, err := s.store.ListFeeStructures(ctx)
	if err != nil {
		return nil, err
	}
	feeByLevel := indexFees(fees)

	report := &StatusReport{Completed: []StudentFeeRow{}, Pending: []StudentFeeRow{}}
	for i := range students {
		st := &students[i]
		fee, err := lookupFee(feeByLevel, st.StudentClassLevel)
		if errors.Is(err, ErrFeeStructureNotFound) {
			report.Skipped++
			continue
		}

		ledger, err := s.MergeLedger(ctx, st.StudentID)
		if err != nil {
			return nil, err
		}
		row := s.buildRow(st, fee, ledger)
		if row.Due.IsPositive() {
			report.Pending = append(report.Pending, row)
		} else {
			report.Completed = append(report.Completed, row)
		}
	}
	return report, nil
}

// DefaultersByClass groups pending students by class key ("class-10").
func (s *FeeService) DefaultersByClass(ctx context.Context, f ReportFilter) (map[string][]StudentFeeRow, error) {
	report, err := s.BuildStatusReport(ctx, f)
	if err != nil {
		return nil, err
	}
	out := map[string][]StudentFeeRow{}
	for _, row := range report.Pending {
		out[row.ClassKey] = append(out[row.ClassKey], row)
	}
	return out, nil
}

func (s *FeeService) buildRow(st *studentModel.StudentModel, fee decimal.Decimal, ledger *Ledger) StudentFeeRow {
	due := ComputeDue(fee, ledger.TotalPaid)
	return StudentFeeRow{
		StudentID:          st.StudentID,
		StudentName:        st.StudentName,
		StudentAdmissionNo: st.StudentAdmissionNo,
		ClassKey:           st.StudentClassLevel.Key(),
		ClassLabel:         st.StudentClassLabel,
		Section:            st.StudentSection,
		GuardianName:       st.StudentGuardianName,
		GuardianPhone:      st.StudentGuardianPhone,
		GuardianEmail:      st.StudentGuardianEmail,
		ClassFee:           due.ClassFee,
		TotalPaid:          due.TotalPaid,
		Due:                due.Due,
		HasPaidFull:        due.HasPaidFull,
		HasPaidHalf:        due.HasPaidHalf,
		MonthlyInstallment: MonthlyInstallment(fee, s.installmentMonths),
		PaidMonths:         ledger.PaidMonths,
	}
}

func indexFees(fees []feeModel.FeeStructureModel) map[constants.ClassLevel]decimal.Decimal {
	out := make(map[constants.ClassLevel]decimal.Decimal, len(fees))
	for _, fs := range fees {
		out[fs.FeeStructureClassLevel] = fs.FeeStructureAmount
	}
	return out
}

func lookupFee(fees map[constants.ClassLevel]decimal.Decimal, lvl constants.ClassLevel) (decimal.Decimal, error) {
	if !lvl.Valid() {
		return decimal.Zero, ErrFeeStructureNotFound
	}
	fee, ok := fees[lvl]
	if !ok {
		return decimal.Zero, ErrFeeStructureNotFound
	}
	return fee, nil
}
