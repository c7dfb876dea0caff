package neuralnet

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

func testInput() *mat.Dense {
	return mat.NewDense(3, 2, []float64{1, 0, 0, 1, 1, 1})
}

func testHidden() *mat.Dense {
	return mat.NewDense(3, 3, []float64{0.1, -0.4, 0.2, 0.5, 0.3, -0.7, -0.2, 0.6, 0.05})
}

func testTarget() *mat.Dense {
	return mat.NewDense(3, 1, []float64{1, 0, 1})
}

func TestBackwardOnOwnOutputHasZeroOutputGrad(t *testing.T) {
	ts := NewTimestep(true, true)
	ts.Forward(testInput(), testWeights(), testHidden())
	target := mat.DenseCopyOf(ts.Output())
	ts.Backward(target, testHidden(), mat.NewDense(3, 3, nil))

	r, _ := ts.OutputGrad().Dims()
	for i := 0; i < r; i++ {
		if got := ts.OutputGrad().At(i, 0); got != 0 {
			t.Errorf("outputGrad[%d] = %v; want 0", i, got)
		}
	}
}

func TestFirstForwardMatchesZeroPredecessor(t *testing.T) {
	w := testWeights()
	first := NewTimestep(false, true)
	first.Forward(testInput(), w, nil)

	interior := NewTimestep(true, true)
	interior.Forward(testInput(), w, mat.NewDense(3, 3, nil))

	if !mat.EqualApprox(first.Hidden(), interior.Hidden(), 1e-15) {
		t.Errorf("hidden differs:\n%v\n%v", mat.Formatted(first.Hidden()), mat.Formatted(interior.Hidden()))
	}
	if !mat.EqualApprox(first.Output(), interior.Output(), 1e-15) {
		t.Errorf("output differs:\n%v\n%v", mat.Formatted(first.Output()), mat.Formatted(interior.Output()))
	}
}

func TestFirstBackwardHasNoRecurrentGradient(t *testing.T) {
	first := NewTimestep(false, true)
	first.Forward(testInput(), testWeights(), nil)
	first.Backward(testTarget(), nil, testHidden())

	if !mat.Equal(first.Gradients().Rec, mat.NewDense(3, 3, nil)) {
		t.Errorf("first step recurrent gradient = %v; want zero", mat.Formatted(first.Gradients().Rec))
	}
}

func TestLastBackwardMatchesZeroSuccessor(t *testing.T) {
	w := testWeights()
	last := NewTimestep(true, false)
	last.Forward(testInput(), w, testHidden())
	last.Backward(testTarget(), testHidden(), nil)

	interior := NewTimestep(true, true)
	interior.Forward(testInput(), w, testHidden())
	interior.Backward(testTarget(), testHidden(), mat.NewDense(3, 3, nil))

	tests := []struct {
		name      string
		got, want *mat.Dense
	}{
		{"hiddenGrad", last.HiddenGrad(), interior.HiddenGrad()},
		{"In", last.Gradients().In, interior.Gradients().In},
		{"Rec", last.Gradients().Rec, interior.Gradients().Rec},
		{"Out", last.Gradients().Out, interior.Gradients().Out},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !mat.EqualApprox(tt.got, tt.want, 1e-15) {
				t.Errorf("got\n%v\nwant\n%v", mat.Formatted(tt.got), mat.Formatted(tt.want))
			}
		})
	}
}

func TestInteriorNeedsPredecessorState(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Forward without previous hidden state did not panic")
		}
	}()
	NewTimestep(true, true).Forward(testInput(), testWeights(), nil)
}
