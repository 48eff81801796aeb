package main

import (
	"math"
	"strings"
	"time"
)

// activityMultipliers maps activity level strings to their TDEE multiplier.
// This is the single source of truth for valid activity levels — also used for
// input validation in updateProfile.
var activityMultipliers = map[string]float64{
	"sedentary":    1.2,
	"light":        1.375,
	"moderate":     1.55,
	"active":       1.725,
	"extra_active": 1.9,
}

// calculateAge computes whole years elapsed from a YYYY-MM-DD date of birth to
// today. Returns nil (not an error) when the date doesn't parse — a malformed
// birth date degrades the metabolic result, it doesn't fail the request.
// A birth date in the future clamps to 0 rather than going negative.
func calculateAge(dateOfBirth string) *int {
	return calculateAgeAt(dateOfBirth, time.Now())
}

// calculateAgeAt is calculateAge with an explicit "today", so the calendar
// logic is testable without depending on the wall clock.
func calculateAgeAt(dateOfBirth string, today time.Time) *int {
	dob, err := time.Parse("2006-01-02", dateOfBirth)
	if err != nil {
		return nil
	}

	age := today.Year() - dob.Year()
	// Not had the birthday yet this year: month/day of today precedes month/day
	// of birth.
	if today.Month() < dob.Month() ||
		(today.Month() == dob.Month() && today.Day() < dob.Day()) {
		age--
	}
	if age < 0 {
		age = 0
	}
	return &age
}

// calculateBMR implements the Mifflin-St Jeor equation:
//
//	male:   10*kg + 6.25*cm − 5*age + 5
//	female: 10*kg + 6.25*cm − 5*age − 161
//
// The equation is only defined for "male" and "female"; any other gender value
// returns nil rather than silently averaging the two constants. Non-positive
// weight or height, or a negative age, also return nil.
func calculateBMR(weightKG, heightCM float64, age int, gender string) *float64 {
	if weightKG <= 0 || heightCM <= 0 || age < 0 {
		return nil
	}

	base := 10*weightKG + 6.25*heightCM - 5*float64(age)
	switch gender {
	case "male":
		base += 5
	case "female":
		base -= 161
	default:
		return nil
	}
	return &base
}

// calculateTDEE multiplies BMR by the activity multiplier for the given level.
// Returns nil when bmr is nil or the level matches none of the known tags
// exactly (no fuzzy matching).
func calculateTDEE(bmr *float64, activityLevel string) *float64 {
	if bmr == nil {
		return nil
	}
	mult, ok := activityMultipliers[activityLevel]
	if !ok {
		return nil
	}
	tdee := *bmr * mult
	return &tdee
}

// calculateMetabolicData derives age, BMR, and TDEE from a profile snapshot.
// The contract is best-effort: any missing or invalid input yields nil for the
// fields that depend on it, never an error. BMR and TDEE are rounded to the
// nearest whole calorie.
func calculateMetabolicData(p *userProfile) metabolicResult {
	var result metabolicResult

	if p.DateOfBirth != nil {
		result.Age = calculateAge(p.DateOfBirth.Time.Format("2006-01-02"))
	}

	// BMR/TDEE need age, weight, and height all present and positive.
	if result.Age == nil || p.WeightKG == nil || p.HeightCM == nil ||
		*p.WeightKG <= 0 || *p.HeightCM <= 0 {
		return result
	}

	gender := ""
	if p.Gender != nil {
		gender = strings.ToLower(*p.Gender)
	}
	bmr := calculateBMR(*p.WeightKG, *p.HeightCM, *result.Age, gender)
	if bmr == nil {
		return result
	}
	roundedBMR := int(math.Round(*bmr))
	result.BMR = &roundedBMR

	// Activity tags match exactly (updateProfile normalizes them on write);
	// only gender is folded here.
	activityLevel := ""
	if p.ActivityLevel != nil {
		activityLevel = *p.ActivityLevel
	}
	// TDEE derives from the rounded BMR so the reported numbers stay
	// internally consistent (reported_tdee == round(reported_bmr * mult)).
	bmrForTDEE := float64(roundedBMR)
	if tdee := calculateTDEE(&bmrForTDEE, activityLevel); tdee != nil {
		roundedTDEE := int(math.Round(*tdee))
		result.TDEE = &roundedTDEE
	}

	return result
}
