package payroll

import (
	"time"

	"go-hrms/internal/leave"
	"go-hrms/internal/shared/daterange"

	"github.com/shopspring/decimal"
)

var (
	basicRatio      = decimal.RequireFromString("0.50")
	hraRatio        = decimal.RequireFromString("0.50")
	pfRatio         = decimal.RequireFromString("0.12")
	professionalTax = decimal.NewFromInt(200)
)

// Breakdown keeps every figure unrounded; rounding happens once in toPayslip.
type Breakdown struct {
	MonthlyWage      decimal.Decimal
	Basic            decimal.Decimal
	HRA              decimal.Decimal
	SpecialAllowance decimal.Decimal
	PF               decimal.Decimal
	ProfessionalTax  decimal.Decimal
	DailyWage        decimal.Decimal
	LeaveDeduction   decimal.Decimal
	Gross            decimal.Decimal
	TotalDeductions  decimal.Decimal
	Net              decimal.Decimal
	DaysInMonth      int
	UnpaidLeaveDays  int
}

// Compute splits the monthly wage and applies the unpaid leave deduction.
// SpecialAllowance is the remainder so the three earnings always sum to W.
func Compute(wage decimal.Decimal, year int, month time.Month, unpaidDays int) Breakdown {
	days := daterange.DaysInMonth(year, month)

	b := Breakdown{
		MonthlyWage:     wage,
		ProfessionalTax: professionalTax,
		DaysInMonth:     days,
		UnpaidLeaveDays: unpaidDays,
	}
	b.Basic = wage.Mul(basicRatio)
	b.HRA = b.Basic.Mul(hraRatio)
	b.SpecialAllowance = wage.Sub(b.Basic).Sub(b.HRA)
	b.PF = b.Basic.Mul(pfRatio)

	b.DailyWage = wage.Div(decimal.NewFromInt(int64(days)))
	b.LeaveDeduction = b.DailyWage.Mul(decimal.NewFromInt(int64(unpaidDays)))

	b.Gross = wage.Sub(b.LeaveDeduction)
	b.TotalDeductions = b.PF.Add(b.ProfessionalTax).Add(b.LeaveDeduction)
	b.Net = b.Gross.Sub(b.PF).Sub(b.ProfessionalTax)
	return b
}

// UnpaidDays counts the days of leaves that fall inside month. Rows with a
// missing date are skipped.
func UnpaidDays(leaves []leave.LeaveRequest, month daterange.Range) int {
	total := 0
	for _, l := range leaves {
		if l.StartDate.IsZero() || l.EndDate.IsZero() {
			continue
		}
		clipped, ok := daterange.Range{
			Start: daterange.StartOfDay(l.StartDate),
			End:   daterange.StartOfDay(l.EndDate),
		}.Clip(month)
		if !ok {
			continue
		}
		total += clipped.Days()
	}
	return total
}

func whole(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}

func (b Breakdown) earnings() Earnings {
	return Earnings{
		Basic:            whole(b.Basic),
		HRA:              whole(b.HRA),
		SpecialAllowance: whole(b.SpecialAllowance),
		Total:            whole(b.MonthlyWage),
	}
}

func (b Breakdown) deductions() Deductions {
	return Deductions{
		PF:              whole(b.PF),
		ProfessionalTax: whole(b.ProfessionalTax),
		LeaveDeduction:  whole(b.LeaveDeduction),
		Total:           whole(b.TotalDeductions),
	}
}

func (b Breakdown) summary() Summary {
	return Summary{
		GrossEarning:   whole(b.Gross),
		TotalDeduction: whole(b.TotalDeductions),
		NetPayable:     whole(b.Net),
	}
}

func (b Breakdown) stats() Stats {
	return Stats{
		UnpaidLeaveDays:      b.UnpaidLeaveDays,
		TotalWorkingDays:     b.DaysInMonth,
		EffectiveWorkingDays: b.DaysInMonth - b.UnpaidLeaveDays,
		DailyWage:            b.DailyWage.Round(2).InexactFloat64(),
	}
}
