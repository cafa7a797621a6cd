package domain

// PropertyType is the closed set of listing categories in the catalog.
type PropertyType string

const (
	PropertyTypeCondo       PropertyType = "Condo"
	PropertyTypeLandedHouse PropertyType = "LandedHouse"
	PropertyTypeApartment   PropertyType = "Apartment"
	PropertyTypeTownhouse   PropertyType = "Townhouse"
	PropertyTypeVilla       PropertyType = "Villa"
)

func (t PropertyType) Valid() bool {
	switch t {
	case PropertyTypeCondo, PropertyTypeLandedHouse, PropertyTypeApartment,
		PropertyTypeTownhouse, PropertyTypeVilla:
		return true
	}
	return false
}

// InvestmentGrade is an ordered categorical rating (A+ down to B-).
// It is display-only: the order exists for sorting in a UI, never arithmetic.
type InvestmentGrade string

const (
	GradeAPlus  InvestmentGrade = "A+"
	GradeA      InvestmentGrade = "A"
	GradeAMinus InvestmentGrade = "A-"
	GradeBPlus  InvestmentGrade = "B+"
	GradeB      InvestmentGrade = "B"
	GradeBMinus InvestmentGrade = "B-"
)

var gradeRank = map[InvestmentGrade]int{
	GradeAPlus: 0, GradeA: 1, GradeAMinus: 2,
	GradeBPlus: 3, GradeB: 4, GradeBMinus: 5,
}

// Rank returns the display order of the grade, best first. Unknown grades sort last.
func (g InvestmentGrade) Rank() int {
	if r, ok := gradeRank[g]; ok {
		return r
	}
	return len(gradeRank)
}

// Feature tags form a fixed vocabulary; anything else in a record is rejected.
const (
	FeaturePool       = "pool"
	FeatureGym        = "gym"
	FeatureParking    = "parking"
	FeatureSecurity   = "security"
	FeaturePlayground = "playground"
	FeatureGarden     = "garden"
)

var knownFeatures = map[string]struct{}{
	FeaturePool: {}, FeatureGym: {}, FeatureParking: {},
	FeatureSecurity: {}, FeaturePlayground: {}, FeatureGarden: {},
}

func KnownFeature(tag string) bool {
	_, ok := knownFeatures[tag]
	return ok
}

// PropertyRecord is one listing. Records are owned by the catalog source and
// are never mutated here; every computation derives ephemeral results only.
type PropertyRecord struct {
	ID             string       `json:"id"`
	Title          string       `json:"title"`
	Lat            float64      `json:"lat"`
	Lng            float64      `json:"lng"`
	Price          float64      `json:"price"`
	Size           float64      `json:"size"`
	LotSize        float64      `json:"lot_size"`
	YearBuilt      int          `json:"year_built"`
	PropertyType   PropertyType `json:"property_type"`
	SchoolDistrict string       `json:"school_district"`
	Features       []string     `json:"features"`
	WalkScore      int          `json:"walk_score"`
	MonthlyRent    float64      `json:"monthly_rent"`

	// Optional analytics fields.
	DaysOnMarket    int             `json:"days_on_market,omitempty"`
	PricePerSqft    float64         `json:"price_per_sqft,omitempty"`
	AppreciationPct float64         `json:"appreciation_pct,omitempty"`
	InvestmentGrade InvestmentGrade `json:"investment_grade,omitempty"`
}

func (p PropertyRecord) HasFeature(tag string) bool {
	for _, f := range p.Features {
		if f == tag {
			return true
		}
	}
	return false
}

// FilterCriteria is a snapshot of user-entered constraints. Numeric bounds
// arrive as strings from the UI: "" means unspecified (wildcard), anything
// else must parse or the whole evaluation is rejected with a ValidationError.
type FilterCriteria struct {
	MinPrice     string `json:"min_price"`
	MaxPrice     string `json:"max_price"`
	MinSize      string `json:"min_size"`
	MaxSize      string `json:"max_size"`
	MinLotSize   string `json:"min_lot_size"`
	MaxLotSize   string `json:"max_lot_size"`
	MinYearBuilt string `json:"min_year_built"`
	MaxYearBuilt string `json:"max_year_built"`

	PropertyType   string   `json:"property_type"`
	SchoolDistrict string   `json:"school_district"`
	Features       []string `json:"features"`

	// MinWalkScore defaults to 60 when the caller leaves it nil.
	MinWalkScore *int `json:"min_walk_score"`
}

// InvestmentParameters are mortgage assumptions. All values are caller-supplied;
// there are no defaults on this side.
type InvestmentParameters struct {
	DownPaymentPct          float64 `json:"down_payment_pct"`
	LoanTermYears           int     `json:"loan_term_years"`
	InterestRatePct         float64 `json:"interest_rate_pct"`
	MonthlyExpenses         float64 `json:"monthly_expenses"`
	ExpectedAppreciationPct float64 `json:"expected_appreciation_pct"`
}

// InvestmentMetrics is the derived cash-flow and return set for one property.
type InvestmentMetrics struct {
	DownPaymentAmount   float64 `json:"down_payment_amount"`
	LoanAmount          float64 `json:"loan_amount"`
	MonthlyPayment      float64 `json:"monthly_payment"`
	MonthlyCashFlow     float64 `json:"monthly_cash_flow"`
	AnnualCashFlow      float64 `json:"annual_cash_flow"`
	GrossYieldPct       float64 `json:"gross_yield_pct"`
	NetYieldPct         float64 `json:"net_yield_pct"`
	CashOnCashReturnPct float64 `json:"cash_on_cash_return_pct"`
	FutureValue         float64 `json:"future_value"`
	TotalReturnPct      float64 `json:"total_return_pct"`
}

// NeighborhoodProfile holds per-district quality-of-life sub-scores (0..100 each).
type NeighborhoodProfile struct {
	District       string  `json:"district"`
	SafetyScore    float64 `json:"safety_score"`
	SchoolScore    float64 `json:"school_score"`
	TransportScore float64 `json:"transport_score"`
	AmenitiesScore float64 `json:"amenities_score"`
	AveragePrice   float64 `json:"average_price"`
	PriceGrowthPct float64 `json:"price_growth_pct"`
}

// ScoredProperty pairs a record with its recommendation score (0..100).
type ScoredProperty struct {
	Property PropertyRecord `json:"property"`
	Score    int            `json:"score"`
}
