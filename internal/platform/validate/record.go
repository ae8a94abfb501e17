package validate

import (
	"strconv"
	"strings"
)

// RequiredRecordFields are the fields every stroke-risk record must carry,
// in the order they are checked. The first missing field is the one
// reported.
var RequiredRecordFields = []string{
	"gender",
	"age",
	"hypertension",
	"ever_married",
	"work_type",
	"Residence_type",
	"avg_glucose_level",
	"bmi",
	"smoking_status",
}

// AcceptedGenders is the closed category set for the gender field.
var AcceptedGenders = []string{"Male", "Female", "Other"}

// PatientData validates a stroke-risk record field map: all required
// fields present, numeric fields parseable and in range, gender in the
// accepted category set, hypertension a binary literal.
func PatientData(fields map[string]any) Result {
	for _, f := range RequiredRecordFields {
		if _, present := fields[f]; !present {
			return fail(f, "Missing required field: "+f)
		}
	}

	age, numeric := toNumber(fields["age"])
	if !numeric {
		return fail("age", "Age must be a valid number")
	}
	if age < 0 || age > 120 {
		return fail("age", "Age must be between 0 and 120")
	}

	glucose, numeric := toNumber(fields["avg_glucose_level"])
	if !numeric {
		return fail("avg_glucose_level", "Glucose level must be a valid number")
	}
	if glucose < 0 || glucose > 500 {
		return fail("avg_glucose_level", "Glucose level must be between 0 and 500")
	}

	bmi, numeric := toNumber(fields["bmi"])
	if !numeric {
		return fail("bmi", "BMI must be a valid number")
	}
	if bmi < 0 || bmi > 100 {
		return fail("bmi", "BMI must be between 0 and 100")
	}

	gender, err := Value(fields["gender"])
	if err != nil || !acceptedGender(gender) {
		return fail("gender", "Gender must be one of Male, Female, Other")
	}

	if !BinaryFlag(fields["hypertension"]) {
		return fail("hypertension", "Hypertension must be 0 or 1")
	}

	return pass()
}

func acceptedGender(gender string) bool {
	for _, g := range AcceptedGenders {
		if gender == g {
			return true
		}
	}
	return false
}

// BinaryFlag reports whether v is one of the accepted binary literal
// forms: the strings "0" and "1" or the numbers 0 and 1 (JSON decoding
// delivers numbers as float64).
func BinaryFlag(v any) bool {
	switch n := v.(type) {
	case string:
		return n == "0" || n == "1"
	case int:
		return n == 0 || n == 1
	case int64:
		return n == 0 || n == 1
	case float64:
		return n == 0 || n == 1
	}
	return false
}

// toNumber coerces a field value to float64. Strings are parsed after
// trimming; anything non-numeric reports false.
func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}
