package neuralnet

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// BinaryCrossEntropy is the loss of a sigmoid binary classifier.
type BinaryCrossEntropy struct{}

// Compute returns the mean cross-entropy over all examples.
func (bce *BinaryCrossEntropy) Compute(output []float64, target []float64) float64 {
	var loss float64
	for i := range output {
		p := math.Min(math.Max(output[i], 1e-15), 1-1e-15)
		loss -= target[i]*math.Log(p) + (1-target[i])*math.Log(1-p)
	}
	return loss / float64(len(output))
}

// Accuracy returns the share of outputs that round to their target.
func (bce *BinaryCrossEntropy) Accuracy(output []float64, target []float64) float64 {
	correct := 0
	for i := range output {
		if math.RoundToEven(output[i]) == target[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(output))
}

// CheckLoss returns loss and accuracy of an (n x 1) output column.
func (bce *BinaryCrossEntropy) CheckLoss(output, target mat.Matrix) (float64, float64) {
	a := mat.Col(nil, 0, output)
	y := mat.Col(nil, 0, target)
	return bce.Compute(a, y), bce.Accuracy(a, y)
}

// Gradient returns the derivative of the loss wrt the sigmoid pre-activation: (output - target).
func (bce *BinaryCrossEntropy) Gradient(output, target mat.Matrix) *mat.Dense {
	var grad mat.Dense
	grad.Sub(output, target)
	return &grad
}
