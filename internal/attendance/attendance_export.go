package attendance

import (
	"context"

	"go-hrms/internal/shared/contextutil"
	"go-hrms/internal/visibility"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const (
	ExportSheet       = "Attendance"
	ExportContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var exportHeader = []any{
	"Employee Code", "Employee Name", "Date", "Check In", "Check Out", "Total Hours", "Status",
}

func (s *service) ExportXLSX(ctx context.Context, scope visibility.Scope, q DateRangeQuery) ([]byte, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	from, to, err := parseBounds(q)
	if err != nil {
		return nil, err
	}

	var rows []AttendanceRecord
	if scope.HasProfile() {
		rows, err = s.repo.FindAll(ctx, Filter{Scope: scope, From: from, To: to})
		if err != nil {
			log.Error("attendance export query failed", zap.Error(err))
			return nil, err
		}
	}

	out, err := RenderXLSX(mapToListResponse(rows))
	if err != nil {
		log.Error("attendance export render failed", zap.Error(err))
		return nil, err
	}

	log.Info("attendance export generated",
		zap.String("scope", scope.String()),
		zap.Int("rows", len(rows)),
	)
	return out, nil
}

// RenderXLSX writes records into a single "Attendance" sheet.
func RenderXLSX(records []AttendanceResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ExportSheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(ExportSheet, "A1", &exportHeader); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(ExportSheet, "A1", "G1", bold); err != nil {
		return nil, err
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []any{
			r.EmployeeCode,
			r.EmployeeName,
			r.AttendanceDate,
			r.CheckIn,
			deref(r.CheckOut),
			deref(r.TotalHours),
			r.Status,
		}
		if err := f.SetSheetRow(ExportSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	if err := f.SetColWidth(ExportSheet, "A", "G", 20); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
