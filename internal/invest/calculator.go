package invest

import (
	"errors"
	"fmt"
	"math"

	"github.com/geohomepro/property-insight/internal/domain"
)

// ErrZeroDownPayment is returned when down_payment_pct is 0: cash-on-cash
// return and total return divide by the cash invested, and the calculator
// refuses to hand back Inf or NaN.
var ErrZeroDownPayment = errors.New("down payment amount is zero")

// appreciationHorizonYears is the fixed window for the future-value projection.
const appreciationHorizonYears = 10

// GrossYield returns annual rent over purchase price as a percentage.
// A non-positive price yields 0 rather than a division blow-up; the ranker
// calls this on arbitrary catalog records.
func GrossYield(price, monthlyRent float64) float64 {
	if price <= 0 {
		return 0
	}
	return monthlyRent * 12 / price * 100
}

// ComputeMetrics derives the full mortgage-based metric set for one property.
// Pure and deterministic; no field of the inputs is mutated.
func ComputeMetrics(p domain.PropertyRecord, params domain.InvestmentParameters) (domain.InvestmentMetrics, error) {
	if params.LoanTermYears <= 0 {
		return domain.InvestmentMetrics{}, &domain.ValidationError{
			Field: "loan_term_years",
			Value: fmt.Sprintf("%d", params.LoanTermYears),
			Msg:   "must be > 0",
		}
	}

	downPayment := p.Price * params.DownPaymentPct / 100
	loanAmount := p.Price - downPayment

	monthlyRate := params.InterestRatePct / 100 / 12
	numPayments := float64(params.LoanTermYears * 12)

	// The general amortization formula divides by (1+r)^n - 1, which is 0
	// when r = 0, so the zero-rate loan is a straight principal split.
	var monthlyPayment float64
	if monthlyRate == 0 {
		monthlyPayment = loanAmount / numPayments
	} else {
		growth := math.Pow(1+monthlyRate, numPayments)
		monthlyPayment = loanAmount * monthlyRate * growth / (growth - 1)
	}

	monthlyCashFlow := p.MonthlyRent - monthlyPayment - params.MonthlyExpenses
	annualCashFlow := monthlyCashFlow * 12

	grossYield := GrossYield(p.Price, p.MonthlyRent)

	var netYield float64
	if p.Price > 0 {
		netYield = annualCashFlow / p.Price * 100
	}

	futureValue := p.Price * math.Pow(1+params.ExpectedAppreciationPct/100, appreciationHorizonYears)

	if downPayment == 0 {
		return domain.InvestmentMetrics{}, fmt.Errorf(
			"compute metrics for %s: %w", p.ID, ErrZeroDownPayment)
	}

	cashOnCash := annualCashFlow / downPayment * 100
	totalReturn := (futureValue - p.Price + annualCashFlow*appreciationHorizonYears) / downPayment * 100

	return domain.InvestmentMetrics{
		DownPaymentAmount:   downPayment,
		LoanAmount:          loanAmount,
		MonthlyPayment:      monthlyPayment,
		MonthlyCashFlow:     monthlyCashFlow,
		AnnualCashFlow:      annualCashFlow,
		GrossYieldPct:       grossYield,
		NetYieldPct:         netYield,
		CashOnCashReturnPct: cashOnCash,
		FutureValue:         futureValue,
		TotalReturnPct:      totalReturn,
	}, nil
}
