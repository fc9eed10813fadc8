package irt

import "math/rand"

// MissingResponse marks an item an examinee did not answer.
const MissingResponse = -1

// Simulate draws one response per examinee and item. Row i of the result holds
// the categories chosen by the examinee with ability abilities[i].
func Simulate(items []ItemResponseModel, abilities []float64, rng *rand.Rand) [][]int {
	responses := make([][]int, len(abilities))
	for i, theta := range abilities {
		row := make([]int, len(items))
		for j, item := range items {
			row[j] = drawCategory(item, theta, rng.Float64())
		}
		responses[i] = row
	}
	return responses
}

// drawCategory inverts the cumulative category distribution at u.
func drawCategory(item ItemResponseModel, theta, u float64) int {
	last := item.NumCategories() - 1
	var cum float64
	for c := 0; c < last; c++ {
		cum += item.Probability(theta, c)
		if u < cum {
			return c
		}
	}
	return last
}
