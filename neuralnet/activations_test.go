package neuralnet

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// Helper function for comparing floats with a tolerance
func floatEquals(a, b, tolerance float64) bool {
	return math.Abs(a-b) < tolerance
}

func TestSigmoidActivate(t *testing.T) {
	s := Sigmoid{}
	if got := s.Activate(0); !floatEquals(got, 0.5, 1e-9) {
		t.Errorf("Sigmoid.Activate(0) = %v; want 0.5", got)
	}
	if got := s.Derivative(0.5); !floatEquals(got, 0.25, 1e-9) {
		t.Errorf("Sigmoid.Derivative(0.5) = %v; want 0.25", got)
	}
}

func TestTanhDerivativeTakesActivatedValue(t *testing.T) {
	th := Tanh{}
	for _, x := range []float64{-2, -0.3, 0, 0.7, 1.5} {
		y := th.Activate(x)
		h := 1e-6
		want := (math.Tanh(x+h) - math.Tanh(x-h)) / (2 * h)
		if got := th.Derivative(y); !floatEquals(got, want, 1e-6) {
			t.Errorf("Tanh.Derivative(tanh(%v)) = %v; want %v", x, got, want)
		}
	}
}

func TestActivateMatrix(t *testing.T) {
	m := mat.NewDense(2, 2, []float64{0, 1, -1, 2})
	out := activate(Tanh{}, m)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if got, want := out.At(i, j), math.Tanh(m.At(i, j)); got != want {
				t.Errorf("activate[%d][%d] = %v; want %v", i, j, got, want)
			}
		}
	}
	if m.At(1, 1) != 2 {
		t.Error("activate modified its input")
	}
}
