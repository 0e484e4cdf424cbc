package aggregate

import "math"

// BMI categories.
const (
	BMIUnderweight = "Underweight"
	BMIHealthy     = "Healthy"
	BMIOverweight  = "Overweight"
	BMIObese       = "Obese"
)

type BMIResult struct {
	Value    float64 `json:"value"`
	Category string  `json:"category"`
}

// BMI computes the body mass index rounded to one decimal. It returns false
// when height or weight is not positive.
func BMI(heightCm, weightKg float64) (BMIResult, bool) {
	if heightCm <= 0 || weightKg <= 0 {
		return BMIResult{}, false
	}

	h := heightCm / 100
	v := math.Round(weightKg/(h*h)*10) / 10

	var cat string
	switch {
	case v < 18.5:
		cat = BMIUnderweight
	case v < 25:
		cat = BMIHealthy
	case v < 30:
		cat = BMIOverweight
	default:
		cat = BMIObese
	}

	return BMIResult{Value: v, Category: cat}, true
}
