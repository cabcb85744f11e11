package model

import "math"

// probabilities evaluates the logit layer on a scaled feature vector and
// softmaxes into a class distribution.
func (c ClassifierParams) probabilities(scaled []float64) [NumClasses]float64 {
	var logits [NumClasses]float64
	for k := 0; k < NumClasses; k++ {
		z := c.Intercepts[k]
		for j, x := range scaled {
			z += c.Weights[k][j] * x
		}
		logits[k] = z
	}

	// Shift by the max logit to keep exp in range.
	maxLogit := logits[0]
	for _, z := range logits[1:] {
		if z > maxLogit {
			maxLogit = z
		}
	}

	var probs [NumClasses]float64
	var sum float64
	for k, z := range logits {
		p := math.Exp(z - maxLogit)
		probs[k] = p
		sum += p
	}
	for k := range probs {
		probs[k] /= sum
	}

	return probs
}
