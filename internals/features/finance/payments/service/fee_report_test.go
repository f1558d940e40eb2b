package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"schoolku_backend/internals/constants"
	studentModel "schoolku_backend/internals/features/school/students/model"
)

type reportFixture struct {
	*fixture
	paidUp, partial, unpaid, noFee, unassigned, inactive uuid.UUID
}

func newReportFixture(t *testing.T) *reportFixture {
	f := newFixture(t)
	f.fee(10, "12000")
	f.fee(7, "9000")

	paidUp := f.student("Ayu", 10)
	partial := f.student("Bayu", 10)
	unpaid := f.student("Candra", 7)
	noFee := f.student("Dewi", 3)
	unassigned := f.store.PutStudent(studentModel.StudentModel{
		StudentName:        "Eko",
		StudentAdmissionNo: "ADM-Eko",
		StudentClassLabel:  "Kelas Khusus",
		StudentClassLevel:  constants.ClassLevelUnassigned,
		StudentIsActive:    true,
	})
	inactive := f.store.PutStudent(studentModel.StudentModel{
		StudentName:        "Fani",
		StudentAdmissionNo: "ADM-Fani",
		StudentClassLabel:  "Class 7",
		StudentClassLevel:  7,
		StudentIsActive:    false,
	})

	f.payOffline(t, paidUp, "6000", "January")
	f.successOnline(t, paidUp, "6000", "February")
	f.payOffline(t, partial, "3000", "January")

	return &reportFixture{
		fixture:    f,
		paidUp:     paidUp,
		partial:    partial,
		unpaid:     unpaid,
		noFee:      noFee,
		unassigned: unassigned.StudentID,
		inactive:   inactive.StudentID,
	}
}

func ids(rows []StudentFeeRow) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.StudentID)
	}
	return out
}

func TestBuildStatusReport(t *testing.T) {
	f := newReportFixture(t)

	report, err := f.svc.BuildStatusReport(context.Background(), ReportFilter{ActiveOnly: true})
	require.NoError(t, err)

	assert.Equal(t, []uuid.UUID{f.paidUp}, ids(report.Completed))
	// class 7 before class 10
	assert.Equal(t, []uuid.UUID{f.unpaid, f.partial}, ids(report.Pending))
	assert.Equal(t, 2, report.Skipped)

	done := report.Completed[0]
	assert.True(t, done.HasPaidFull)
	assert.False(t, done.HasPaidHalf)
	assert.True(t, done.Due.IsZero())
	assert.Equal(t, []string{"February", "January"}, done.PaidMonths)
	assert.True(t, d("1000").Equal(done.MonthlyInstallment))
	assert.Equal(t, "class-10", done.ClassKey)

	partial := report.Pending[1]
	assert.True(t, d("9000").Equal(partial.Due))
	assert.False(t, partial.HasPaidHalf)

	all, err := f.svc.BuildStatusReport(context.Background(), ReportFilter{})
	require.NoError(t, err)
	assert.Contains(t, ids(all.Pending), f.inactive)
}

func TestBuildStatusReport_ClassFilter(t *testing.T) {
	f := newReportFixture(t)

	report, err := f.svc.BuildStatusReport(context.Background(), ReportFilter{ClassLevel: 10, ActiveOnly: true})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{f.paidUp}, ids(report.Completed))
	assert.Equal(t, []uuid.UUID{f.partial}, ids(report.Pending))
	assert.Zero(t, report.Skipped)
}

func TestDefaultersByClass(t *testing.T) {
	f := newReportFixture(t)

	groups, err := f.svc.DefaultersByClass(context.Background(), ReportFilter{ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, []uuid.UUID{f.partial}, ids(groups["class-10"]))
	assert.Equal(t, []uuid.UUID{f.unpaid}, ids(groups["class-7"]))
}

func TestStudentStatus(t *testing.T) {
	f := newReportFixture(t)
	ctx := context.Background()

	st, err := f.svc.StudentStatus(ctx, f.partial)
	require.NoError(t, err)
	assert.True(t, d("3000").Equal(st.TotalPaid))
	assert.Equal(t, []string{"January"}, st.Ledger.PaidMonths)

	_, err = f.svc.StudentStatus(ctx, f.noFee)
	assert.ErrorIs(t, err, ErrFeeStructureNotFound)
}

func TestDefaultersWorkbook(t *testing.T) {
	f := newReportFixture(t)
	groups, err := f.svc.DefaultersByClass(context.Background(), ReportFilter{ActiveOnly: true})
	require.NoError(t, err)

	buf, err := DefaultersWorkbook(groups)
	require.NoError(t, err)

	xl, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer xl.Close()

	rows, err := xl.GetRows("Defaulters")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Class", rows[0][0])
	assert.Equal(t, "class-7", rows[1][0])
	assert.Equal(t, "Candra", rows[1][2])
	assert.Equal(t, "class-10", rows[2][0])
	assert.Equal(t, "9000", rows[2][9])
}

func TestClassKeyLess(t *testing.T) {
	assert.True(t, classKeyLess("class-2", "class-10"))
	assert.False(t, classKeyLess("class-10", "class-2"))
	assert.True(t, classKeyLess("class-9", "class-11"))
	assert.True(t, classKeyLess("Class-3", "class-4"))
	assert.True(t, classKeyLess("", "class-1"))
}
