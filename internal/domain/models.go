// Package domain holds the core types of the alternative credit scoring BFF:
// the application step machine, the raw form state collected from the
// frontend, the canonical request accepted by the scoring service, and the
// score results kept in session state.
package domain

// ============================================================
// Application steps
// ============================================================

// Step is one page of the guarded application workflow.
type Step string

const (
	StepLanding       Step = "landing"
	StepAuth          Step = "auth"
	StepProfileSelect Step = "profile-select"
	StepForm          Step = "form"
	StepDashboard     Step = "dashboard"
	StepSettings      Step = "settings"
)

// Protected reports whether the step requires a logged-in session.
func (s Step) Protected() bool {
	switch s {
	case StepProfileSelect, StepForm, StepDashboard, StepSettings:
		return true
	}
	return false
}

// Valid reports whether s is a known step.
func (s Step) Valid() bool {
	switch s {
	case StepLanding, StepAuth, StepProfileSelect, StepForm, StepDashboard, StepSettings:
		return true
	}
	return false
}

// ============================================================
// Borrower profiles
// ============================================================

// ProfileType is the borrower category on the scoring wire contract.
type ProfileType string

const (
	ProfileSalaried   ProfileType = "salaried"
	ProfileStudent    ProfileType = "student"
	ProfileGig        ProfileType = "gig"
	ProfileShopkeeper ProfileType = "shopkeeper"
	ProfileRural      ProfileType = "rural"
)

// ProfileFromForm maps the value of the profile selector (a frontend
// identifier such as "gig-worker") to the wire enum. Anything unknown,
// including the empty string, selects the salaried default.
func ProfileFromForm(v string) ProfileType {
	switch v {
	case "student":
		return ProfileStudent
	case "gig-worker", "gig":
		return ProfileGig
	case "shopkeeper":
		return ProfileShopkeeper
	case "rural":
		return ProfileRural
	default:
		return ProfileSalaried
	}
}

// ============================================================
// Raw form state
// ============================================================

// FormData is the raw per-profile form state. Every field is a string
// because every field is sourced from a text input; parsing and clamping
// happen in the normalizer, at submission time.
type FormData struct {
	// Identity (never sent to scoring)
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	City     string `json:"city"`

	// Shared financial fields
	MonthlyIncome   string `json:"monthlyIncome"`
	IncomeStability string `json:"incomeStability"`
	SavingsBalance  string `json:"savingsBalance"`
	MonthsActive    string `json:"monthsActive"`

	// Student
	GPA            string `json:"gpa"`
	AttendanceRate string `json:"attendanceRate"`
	CollegeName    string `json:"collegeName"`

	// Gig worker
	PlatformRating string `json:"platformRating"`
	AvgWeeklyHours string `json:"avgWeeklyHours"`
	PlatformName   string `json:"platformName"`

	// Shopkeeper
	BusinessYears   string `json:"businessYears"`
	AvgDailyRevenue string `json:"avgDailyRevenue"`
	ShopType        string `json:"shopType"`

	// Rural
	LandSize         string `json:"landSize"`
	SubsidyAmount    string `json:"subsidyAmount"`
	SeasonalityIndex string `json:"seasonalityIndex"`
	CropType         string `json:"cropType"`
}

// Apply merges field writes into the form. Unknown field names are ignored
// so a newer frontend cannot break an older BFF.
func (f *FormData) Apply(fields map[string]string) {
	for name, value := range fields {
		switch name {
		case "fullName":
			f.FullName = value
		case "phone":
			f.Phone = value
		case "city":
			f.City = value
		case "monthlyIncome":
			f.MonthlyIncome = value
		case "incomeStability":
			f.IncomeStability = value
		case "savingsBalance":
			f.SavingsBalance = value
		case "monthsActive":
			f.MonthsActive = value
		case "gpa":
			f.GPA = value
		case "attendanceRate":
			f.AttendanceRate = value
		case "collegeName":
			f.CollegeName = value
		case "platformRating":
			f.PlatformRating = value
		case "avgWeeklyHours":
			f.AvgWeeklyHours = value
		case "platformName":
			f.PlatformName = value
		case "businessYears":
			f.BusinessYears = value
		case "avgDailyRevenue":
			f.AvgDailyRevenue = value
		case "shopType":
			f.ShopType = value
		case "landSize":
			f.LandSize = value
		case "subsidyAmount":
			f.SubsidyAmount = value
		case "seasonalityIndex":
			f.SeasonalityIndex = value
		case "cropType":
			f.CropType = value
		}
	}
}

// ============================================================
// Scoring wire contract
// ============================================================

// ScoreRequest is the canonical payload the scoring service accepts.
// Shared fields are always present. Profile-conditional fields are pointers
// with omitempty: exactly the group matching ProfileType is populated; all
// other groups are absent from the JSON (absent, not zero, not null).
// Salaried populates none of the four groups.
type ScoreRequest struct {
	ProfileType ProfileType `json:"profile_type"`

	MonthlyIncome  float64 `json:"monthly_income"`
	IncomeVariance float64 `json:"income_variance"`
	SavingsBalance float64 `json:"savings_balance"`
	MonthsActive   float64 `json:"months_active"`

	// Aggregate placeholders, always zero until transaction-derived
	// signals are collected.
	TotalCredits      float64 `json:"total_credits"`
	TotalDebits       float64 `json:"total_debits"`
	TotalTransactions float64 `json:"total_transactions"`
	AvgCreditAmount   float64 `json:"avg_credit_amount"`
	AvgDebitAmount    float64 `json:"avg_debit_amount"`
	RecurringRatio    float64 `json:"recurring_ratio"`

	// Student
	GPA            *float64 `json:"gpa,omitempty"`
	AttendanceRate *float64 `json:"attendance_rate,omitempty"`

	// Gig worker
	PlatformRating *float64 `json:"platform_rating,omitempty"`
	AvgWeeklyHours *float64 `json:"avg_weekly_hours,omitempty"`

	// Shopkeeper
	BusinessYears   *float64 `json:"business_years,omitempty"`
	AvgDailyRevenue *float64 `json:"avg_daily_revenue,omitempty"`

	// Rural
	LandSizeAcres    *float64 `json:"land_size_acres,omitempty"`
	SubsidyAmount    *float64 `json:"subsidy_amount,omitempty"`
	SeasonalityIndex *float64 `json:"seasonality_index,omitempty"`
}

// Factor is one explanatory item attached to a score.
type Factor struct {
	Feature   string  `json:"feature"`
	Impact    float64 `json:"impact"`
	Direction string  `json:"direction,omitempty"`
}

// ScoreResult is the scoring service response.
type ScoreResult struct {
	AlternativeCreditScore float64  `json:"alternative_credit_score"`
	RiskBand               string   `json:"risk_band"`
	TopFactors             []Factor `json:"top_factors"`
}

// ScoreHistoryEntry is one past scoring outcome. History is newest-first
// and append-only; entries are never mutated or removed.
type ScoreHistoryEntry struct {
	Date     string  `json:"date"`
	Score    float64 `json:"score"`
	RiskBand string  `json:"riskBand"`
}

// ============================================================
// Users
// ============================================================

// User is a registered borrower. Passwords are opaque strings held in
// process memory only; hashing and real credential storage are outside
// this system's scope, which is why users live behind port.UserStore.
type User struct {
	Email       string `json:"email"`
	Password    string `json:"-"`
	DisplayName string `json:"displayName"`
}
