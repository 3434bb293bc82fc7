// Package normalize maps raw per-profile form state into the canonical
// request the scoring service accepts. It is pure: no I/O, no side effects,
// and it never fails — malformed fields degrade to a fallback value instead
// of aborting the whole submission. Rejecting a bad payload is the scoring
// service's job.
package normalize

import (
	"math"
	"strconv"
	"strings"

	"github.com/DharmikCH/altscore-bfa-go/internal/domain"
)

// ParseNumber parses a text-input value as a float. An empty, unparsable or
// non-finite value yields fallback.
func ParseNumber(raw string, fallback float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}

// Clamp bounds v into [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

// floor0 clamps monetary and count fields at zero; they have no upper bound.
func floor0(v float64) float64 {
	return math.Max(0, v)
}

// Normalize maps the form plus the selected borrower profile into a
// ScoreRequest. fallback substitutes for any field that fails numeric
// parsing (callers pass 0 unless they have a reason not to).
//
// Exactly the conditional field group matching the profile is populated;
// salaried populates none. The six aggregate fields are reserved for
// transaction-derived signals and are always zero.
func Normalize(form domain.FormData, profile domain.ProfileType, fallback float64) domain.ScoreRequest {
	req := domain.ScoreRequest{
		ProfileType:    profile,
		MonthlyIncome:  floor0(ParseNumber(form.MonthlyIncome, fallback)),
		IncomeVariance: incomeVariance(ParseNumber(form.IncomeStability, fallback)),
		SavingsBalance: floor0(ParseNumber(form.SavingsBalance, fallback)),
		MonthsActive:   floor0(ParseNumber(form.MonthsActive, fallback)),
	}

	switch profile {
	case domain.ProfileStudent:
		req.GPA = ptr(Clamp(ParseNumber(form.GPA, fallback)/10*4, 0, 4))
		req.AttendanceRate = ptr(Clamp(ParseNumber(form.AttendanceRate, fallback)/100, 0, 1))
	case domain.ProfileGig:
		req.PlatformRating = ptr(Clamp(ParseNumber(form.PlatformRating, fallback), 0, 5))
		req.AvgWeeklyHours = ptr(floor0(ParseNumber(form.AvgWeeklyHours, fallback)))
	case domain.ProfileShopkeeper:
		req.BusinessYears = ptr(floor0(ParseNumber(form.BusinessYears, fallback)))
		req.AvgDailyRevenue = ptr(floor0(ParseNumber(form.AvgDailyRevenue, fallback)))
	case domain.ProfileRural:
		req.LandSizeAcres = ptr(floor0(ParseNumber(form.LandSize, fallback)))
		req.SubsidyAmount = ptr(floor0(ParseNumber(form.SubsidyAmount, fallback)))
		req.SeasonalityIndex = ptr(Clamp(ParseNumber(form.SeasonalityIndex, fallback), 0, 1))
	}

	return req
}

// incomeVariance inverts the self-reported 0-1 stability confidence into a
// variance signal. Stability is floored at 0.01 so a zero (or garbage) input
// cannot blow up the division; a fully stable 1.0 maps to variance 0.
func incomeVariance(stability float64) float64 {
	return math.Max(0, 1/Clamp(stability, 0.01, 1)-1)
}

func ptr(v float64) *float64 {
	return &v
}
