package utils

import "math"

func RoundWithOneDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*10) / 10
}

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

// Clamp restringe o valor ao intervalo [min, max]
func Clamp(f, min, max float64) float64 {
	if f < min {
		return min
	}
	if f > max {
		return max
	}
	return f
}
