package service

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"schoolku_backend/internals/constants"
)

const defaultersSheet = "Defaulters"

var defaultersHeader = []any{
	"Class", "Admission No", "Student", "Section",
	"Guardian", "Guardian Phone", "Guardian Email",
	"Class Fee", "Total Paid", "Due", "Paid Months",
}

// DefaultersWorkbook renders the defaulters map as one sheet, classes in
// ascending order.
func DefaultersWorkbook(groups map[string][]StudentFeeRow) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), defaultersSheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(defaultersSheet, "A1", &defaultersHeader); err != nil {
		return nil, err
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		_ = f.SetRowStyle(defaultersSheet, 1, 1, style)
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return classKeyLess(keys[i], keys[j]) })

	rowNo := 2
	for _, k := range keys {
		for _, r := range groups[k] {
			row := []any{
				r.ClassKey, r.StudentAdmissionNo, r.StudentName, deref(r.Section),
				deref(r.GuardianName), deref(r.GuardianPhone), deref(r.GuardianEmail),
				r.ClassFee.InexactFloat64(), r.TotalPaid.InexactFloat64(), r.Due.InexactFloat64(),
				strings.Join(r.PaidMonths, ", "),
			}
			cell, _ := excelize.CoordinatesToCellName(1, rowNo)
			if err := f.SetSheetRow(defaultersSheet, cell, &row); err != nil {
				return nil, fmt.Errorf("write row %d: %w", rowNo, err)
			}
			rowNo++
		}
	}
	_ = f.SetColWidth(defaultersSheet, "A", "K", 16)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// "class-2" sorts before "class-10".
func classKeyLess(a, b string) bool {
	x, errA := constants.ParseClassKey(a)
	y, errB := constants.ParseClassKey(b)
	if errA == nil && errB == nil {
		return x < y
	}
	return a < b
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

