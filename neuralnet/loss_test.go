package neuralnet

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestBinaryCrossEntropyCompute(t *testing.T) {
	bce := &BinaryCrossEntropy{}
	output := []float64{0.5, 0.9}
	target := []float64{1.0, 0.0}
	loss := bce.Compute(output, target)
	want := (-math.Log(0.5) - math.Log(0.1)) / 2
	if !floatEquals(loss, want, 1e-9) {
		t.Errorf("BinaryCrossEntropy.Compute = %v; want approx %v", loss, want)
	}
}

func TestBinaryCrossEntropyCheckLoss(t *testing.T) {
	bce := &BinaryCrossEntropy{}
	output := mat.NewDense(4, 1, []float64{0.2, 0.8, 0.6, 0.4})
	target := mat.NewDense(4, 1, []float64{0, 1, 0, 0})
	_, acc := bce.CheckLoss(output, target)
	if acc != 0.75 {
		t.Errorf("accuracy = %v; want 0.75", acc)
	}
}

func TestBinaryCrossEntropyGradient(t *testing.T) {
	bce := &BinaryCrossEntropy{}
	output := mat.NewDense(2, 1, []float64{0.5, 0.5})
	target := mat.NewDense(2, 1, []float64{1.0, 0.0})
	grad := bce.Gradient(output, target)
	want := []float64{-0.5, 0.5}
	for i := range want {
		if grad.At(i, 0) != want[i] {
			t.Errorf("BinaryCrossEntropy.Gradient[%d] = %v; want %v", i, grad.At(i, 0), want[i])
		}
	}
}

func TestBinaryCrossEntropyAccuracyHalfRoundsToZero(t *testing.T) {
	bce := &BinaryCrossEntropy{}
	if acc := bce.Accuracy([]float64{0.5, 0.5}, []float64{0, 1}); acc != 0.5 {
		t.Errorf("accuracy = %v; want 0.5 (0.5 counts as 0)", acc)
	}
}
