package main

import (
	"testing"
	"time"
)

// makeProfile constructs a fully-populated userProfile for metabolic tests.
// Individual tests nil out or override fields to exercise degradation paths.
func makeProfile(dob string, weightKG, heightCM float64, gender, activityLevel string) *userProfile {
	t, _ := time.Parse("2006-01-02", dob)
	d := DateOnly{t}
	return &userProfile{
		UserID:        1,
		DateOfBirth:   &d,
		WeightKG:      &weightKG,
		HeightCM:      &heightCM,
		Gender:        &gender,
		ActivityLevel: &activityLevel,
	}
}

/* ─── calculateAge tests ─────────────────────────────────────────────── */

// TestCalculateAgeAt verifies calendar-aware year subtraction: the year
// difference drops by one until the birthday has passed in the current year.
func TestCalculateAgeAt(t *testing.T) {
	tests := []struct {
		name  string
		dob   string
		today string
		want  int
	}{
		{"day before anniversary", "1990-01-15", "2024-01-14", 33},
		{"on anniversary", "1990-01-15", "2024-01-15", 34},
		{"day after anniversary", "1990-01-15", "2024-01-16", 34},
		{"month before anniversary", "1990-06-01", "2024-05-31", 33},
		{"end of year", "1990-12-31", "2024-12-31", 34},
		{"same date", "2024-03-10", "2024-03-10", 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			today, _ := time.Parse("2006-01-02", tc.today)
			got := calculateAgeAt(tc.dob, today)
			if got == nil {
				t.Fatalf("calculateAgeAt(%q, %q) = nil, want %d", tc.dob, tc.today, tc.want)
			}
			if *got != tc.want {
				t.Errorf("calculateAgeAt(%q, %q) = %d, want %d", tc.dob, tc.today, *got, tc.want)
			}
		})
	}
}

// TestCalculateAge_Unparseable verifies that bad dates return nil, not an error.
func TestCalculateAge_Unparseable(t *testing.T) {
	for _, dob := range []string{"", "not-a-date", "15-01-1990", "1990/01/15"} {
		if got := calculateAge(dob); got != nil {
			t.Errorf("calculateAge(%q) = %d, want nil", dob, *got)
		}
	}
}

// TestCalculateAge_FutureDOB verifies that a birth date in the future clamps
// to zero instead of going negative.
func TestCalculateAge_FutureDOB(t *testing.T) {
	today, _ := time.Parse("2006-01-02", "2024-01-01")
	got := calculateAgeAt("2030-06-15", today)
	if got == nil {
		t.Fatal("calculateAgeAt for future DOB = nil, want 0")
	}
	if *got != 0 {
		t.Errorf("calculateAgeAt for future DOB = %d, want 0", *got)
	}
}

/* ─── calculateBMR tests ─────────────────────────────────────────────── */

// TestCalculateBMR_Male verifies the male Mifflin-St Jeor constant:
// 10*70 + 6.25*175 - 5*30 + 5 = 1742.75.
func TestCalculateBMR_Male(t *testing.T) {
	got := calculateBMR(70, 175, 30, "male")
	if got == nil {
		t.Fatal("calculateBMR = nil, want 1742.75")
	}
	if *got != 1742.75 {
		t.Errorf("male BMR = %v, want 1742.75", *got)
	}
}

// TestCalculateBMR_Female verifies the female constant:
// 10*70 + 6.25*175 - 5*30 - 161 = 1482.75.
func TestCalculateBMR_Female(t *testing.T) {
	got := calculateBMR(70, 175, 30, "female")
	if got == nil {
		t.Fatal("calculateBMR = nil, want 1482.75")
	}
	if *got != 1482.75 {
		t.Errorf("female BMR = %v, want 1482.75", *got)
	}
}

// TestCalculateBMR_UnknownGender verifies there is no silent fallback average
// for genders the equation doesn't define.
func TestCalculateBMR_UnknownGender(t *testing.T) {
	for _, gender := range []string{"other", "nonbinary", "", "MALE "} {
		if got := calculateBMR(70, 175, 30, gender); got != nil {
			t.Errorf("calculateBMR(gender=%q) = %v, want nil", gender, *got)
		}
	}
}

// TestCalculateBMR_InvalidInputs verifies precondition guards.
func TestCalculateBMR_InvalidInputs(t *testing.T) {
	tests := []struct {
		name           string
		weight, height float64
		age            int
	}{
		{"zero weight", 0, 175, 30},
		{"negative weight", -70, 175, 30},
		{"zero height", 70, 0, 30},
		{"negative height", 70, -175, 30},
		{"negative age", 70, 175, -1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := calculateBMR(tc.weight, tc.height, tc.age, "male"); got != nil {
				t.Errorf("calculateBMR = %v, want nil", *got)
			}
		})
	}
}

/* ─── calculateTDEE tests ────────────────────────────────────────────── */

// TestCalculateTDEE_Multipliers verifies each activity level against its
// fixed multiplier.
func TestCalculateTDEE_Multipliers(t *testing.T) {
	bmr := 1500.0
	tests := []struct {
		level string
		want  float64
	}{
		{"sedentary", 1800},
		{"light", 2062.5},
		{"moderate", 2325},
		{"active", 2587.5},
		{"extra_active", 2850},
	}
	for _, tc := range tests {
		t.Run(tc.level, func(t *testing.T) {
			got := calculateTDEE(&bmr, tc.level)
			if got == nil {
				t.Fatalf("calculateTDEE(%q) = nil, want %v", tc.level, tc.want)
			}
			if *got != tc.want {
				t.Errorf("calculateTDEE(%q) = %v, want %v", tc.level, *got, tc.want)
			}
		})
	}
}

// TestCalculateTDEE_UnknownLevel verifies there is no fuzzy matching.
func TestCalculateTDEE_UnknownLevel(t *testing.T) {
	bmr := 1743.0
	for _, level := range []string{"crazy_active", "Moderate", "very_active", ""} {
		if got := calculateTDEE(&bmr, level); got != nil {
			t.Errorf("calculateTDEE(level=%q) = %v, want nil", level, *got)
		}
	}
}

// TestCalculateTDEE_NilBMR verifies that a nil BMR cascades to a nil TDEE.
func TestCalculateTDEE_NilBMR(t *testing.T) {
	if got := calculateTDEE(nil, "moderate"); got != nil {
		t.Errorf("calculateTDEE(nil) = %v, want nil", *got)
	}
}

/* ─── calculateMetabolicData tests ───────────────────────────────────── */

// TestCalculateMetabolicData_Complete verifies the full pipeline with a
// complete profile: rounded BMR, and TDEE derived from the rounded BMR.
// Expected values are recomputed from today's age so the test doesn't rot
// as the fixture profile gets older.
func TestCalculateMetabolicData_Complete(t *testing.T) {
	p := makeProfile("1990-01-15", 70, 175, "male", "moderate")
	got := calculateMetabolicData(p)

	wantAge := calculateAge("1990-01-15")
	if wantAge == nil {
		t.Fatal("expected age to compute")
	}
	if got.Age == nil || *got.Age != *wantAge {
		t.Fatalf("Age = %v, want %d", got.Age, *wantAge)
	}

	// Recompute expected values for whatever age today produces.
	wantBMR := 10*70.0 + 6.25*175 - 5*float64(*wantAge) + 5
	if got.BMR == nil || *got.BMR != roundToInt(wantBMR) {
		t.Fatalf("BMR = %v, want %d", got.BMR, roundToInt(wantBMR))
	}
	wantTDEE := roundToInt(float64(roundToInt(wantBMR)) * 1.55)
	if got.TDEE == nil || *got.TDEE != wantTDEE {
		t.Fatalf("TDEE = %v, want %d", got.TDEE, wantTDEE)
	}
}

// TestCalculateMetabolicData_KnownNumbers pins the reference numbers: a
// 30-year-old male at 70kg/175cm with moderate activity yields BMR 1743 and
// TDEE 2702. The age can't be forced through the wall clock, so this drives
// the component functions directly with age=30.
func TestCalculateMetabolicData_KnownNumbers(t *testing.T) {
	bmr := calculateBMR(70, 175, 30, "male")
	if bmr == nil {
		t.Fatal("BMR = nil")
	}
	roundedBMR := roundToInt(*bmr)
	if roundedBMR != 1743 {
		t.Fatalf("rounded BMR = %d, want 1743", roundedBMR)
	}

	bmrF := float64(roundedBMR)
	tdee := calculateTDEE(&bmrF, "moderate")
	if tdee == nil {
		t.Fatal("TDEE = nil")
	}
	if roundToInt(*tdee) != 2702 {
		t.Errorf("rounded TDEE = %d, want 2702", roundToInt(*tdee))
	}
}

// TestCalculateMetabolicData_GenderCaseInsensitive verifies the orchestrator
// lower-cases gender before matching.
func TestCalculateMetabolicData_GenderCaseInsensitive(t *testing.T) {
	p := makeProfile("1990-01-15", 70, 175, "Male", "moderate")
	got := calculateMetabolicData(p)
	if got.BMR == nil {
		t.Error("BMR = nil for gender \"Male\", want computed value")
	}
}

// TestCalculateMetabolicData_Degradation verifies the best-effort contract:
// each missing or invalid input nils exactly the fields depending on it.
func TestCalculateMetabolicData_Degradation(t *testing.T) {
	tests := []struct {
		name             string
		mutFn            func(p *userProfile)
		wantAge, wantBMR bool
		wantTDEE         bool
	}{
		{"nil DOB", func(p *userProfile) { p.DateOfBirth = nil }, false, false, false},
		{"nil weight", func(p *userProfile) { p.WeightKG = nil }, true, false, false},
		{"nil height", func(p *userProfile) { p.HeightCM = nil }, true, false, false},
		{"zero weight", func(p *userProfile) { z := 0.0; p.WeightKG = &z }, true, false, false},
		{"negative height", func(p *userProfile) { n := -170.0; p.HeightCM = &n }, true, false, false},
		{"unknown gender", func(p *userProfile) { g := "other"; p.Gender = &g }, true, false, false},
		{"nil gender", func(p *userProfile) { p.Gender = nil }, true, false, false},
		{"unknown activity", func(p *userProfile) { a := "crazy_active"; p.ActivityLevel = &a }, true, true, false},
		{"mixed-case activity", func(p *userProfile) { a := "Moderate"; p.ActivityLevel = &a }, true, true, false},
		{"nil activity", func(p *userProfile) { p.ActivityLevel = nil }, true, true, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := makeProfile("1990-01-15", 70, 175, "male", "moderate")
			tc.mutFn(p)
			got := calculateMetabolicData(p)
			if (got.Age != nil) != tc.wantAge {
				t.Errorf("Age present = %v, want %v", got.Age != nil, tc.wantAge)
			}
			if (got.BMR != nil) != tc.wantBMR {
				t.Errorf("BMR present = %v, want %v", got.BMR != nil, tc.wantBMR)
			}
			if (got.TDEE != nil) != tc.wantTDEE {
				t.Errorf("TDEE present = %v, want %v", got.TDEE != nil, tc.wantTDEE)
			}
		})
	}
}

// roundToInt is the test-local mirror of the rounding the orchestrator applies.
func roundToInt(v float64) int {
	if v < 0 {
		return int(v - 0.5)
	}
	return int(v + 0.5)
}
