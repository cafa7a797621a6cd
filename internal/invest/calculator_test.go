package invest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geohomepro/property-insight/internal/domain"
)

func TestComputeMetrics_ZeroInterestLoan(t *testing.T) {
	p := domain.PropertyRecord{ID: "p1", Price: 1_200_000, MonthlyRent: 3000}
	params := domain.InvestmentParameters{
		DownPaymentPct:  20,
		LoanTermYears:   30,
		InterestRatePct: 0,
		MonthlyExpenses: 0,
	}

	m, err := ComputeMetrics(p, params)
	require.NoError(t, err)

	assert.Equal(t, 240_000.0, m.DownPaymentAmount)
	assert.Equal(t, 960_000.0, m.LoanAmount)
	// With a 0% rate the payment is exactly loan / numPayments.
	assert.Equal(t, 960_000.0/360, m.MonthlyPayment)
	assert.InDelta(t, 333.33, m.MonthlyCashFlow, 0.01)
	assert.InDelta(t, 4000.0, m.AnnualCashFlow, 0.1)
	assert.InDelta(t, 3.0, m.GrossYieldPct, 1e-9)
}

func TestComputeMetrics_AmortizedPayment(t *testing.T) {
	p := domain.PropertyRecord{ID: "p1", Price: 125_000, MonthlyRent: 900}
	params := domain.InvestmentParameters{
		DownPaymentPct:  20,
		LoanTermYears:   30,
		InterestRatePct: 6,
		MonthlyExpenses: 100,
	}

	m, err := ComputeMetrics(p, params)
	require.NoError(t, err)

	assert.Equal(t, 25_000.0, m.DownPaymentAmount)
	assert.Equal(t, 100_000.0, m.LoanAmount)
	// Standard amortization for 100k at 6% over 360 payments.
	assert.InDelta(t, 599.55, m.MonthlyPayment, 0.01)
	assert.InDelta(t, 900-599.55-100, m.MonthlyCashFlow, 0.01)
}

func TestComputeMetrics_ZeroDownPayment(t *testing.T) {
	p := domain.PropertyRecord{ID: "p1", Price: 1_000_000, MonthlyRent: 3000}
	params := domain.InvestmentParameters{
		DownPaymentPct:  0,
		LoanTermYears:   30,
		InterestRatePct: 4,
	}

	_, err := ComputeMetrics(p, params)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrZeroDownPayment)
}

func TestComputeMetrics_FutureValueHorizon(t *testing.T) {
	p := domain.PropertyRecord{ID: "p1", Price: 1_000_000, MonthlyRent: 3000}
	params := domain.InvestmentParameters{
		DownPaymentPct:          20,
		LoanTermYears:           30,
		InterestRatePct:         4,
		ExpectedAppreciationPct: 5,
	}

	m, err := ComputeMetrics(p, params)
	require.NoError(t, err)
	// 1,000,000 * 1.05^10, the fixed ten-year window.
	assert.InDelta(t, 1_628_894.63, m.FutureValue, 0.01)
}

func TestComputeMetrics_InvalidLoanTerm(t *testing.T) {
	p := domain.PropertyRecord{ID: "p1", Price: 1_000_000}

	_, err := ComputeMetrics(p, domain.InvestmentParameters{DownPaymentPct: 20})
	require.Error(t, err)

	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestGrossYield(t *testing.T) {
	assert.InDelta(t, 3.0, GrossYield(1_200_000, 3000), 1e-9)
	assert.Equal(t, 0.0, GrossYield(0, 3000))
}
