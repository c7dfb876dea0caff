package neuralnet

import (
	"gonum.org/v1/gonum/mat"
)

// Timestep is one unrolled step of the recurrent network. The first step of
// a sequence has no predecessor, so it neither reads a previous hidden state
// nor produces a recurrent gradient. The last step has no successor, so no
// future hidden gradient flows into it.
type Timestep struct {
	hasPredecessor bool
	hasSuccessor   bool

	// borrowed for the duration of one forward/backward pass
	w *Weights

	input     *mat.Dense
	preHidden *mat.Dense
	hidden    *mat.Dense
	preOutput *mat.Dense
	output    *mat.Dense

	outputGrad *mat.Dense
	hiddenGrad *mat.Dense
	grads      Gradients
}

func NewTimestep(hasPredecessor, hasSuccessor bool) *Timestep {
	return &Timestep{hasPredecessor: hasPredecessor, hasSuccessor: hasSuccessor}
}

// Forward computes
//
//	preHidden = input·In + prevHidden·Rec
//	hidden    = tanh(preHidden)
//	output    = sigmoid(hidden·Out)
//
// prevHidden is ignored when the step has no predecessor.
func (ts *Timestep) Forward(input *mat.Dense, w *Weights, prevHidden mat.Matrix) {
	ts.w = w
	ts.input = input

	var pre mat.Dense
	pre.Mul(input, w.In)
	if ts.hasPredecessor {
		if prevHidden == nil {
			panic("neuralnet: timestep with a predecessor needs its hidden state")
		}
		var rec mat.Dense
		rec.Mul(prevHidden, w.Rec)
		pre.Add(&pre, &rec)
	}
	ts.preHidden = &pre
	ts.hidden = activate(Tanh{}, ts.preHidden)

	var z mat.Dense
	z.Mul(ts.hidden, w.Out)
	ts.preOutput = &z
	ts.output = activate(Sigmoid{}, ts.preOutput)
}

// Backward computes the local gradients after Forward on the same batch.
// nextHiddenGrad is the HiddenGrad of the following step and is ignored when
// the step has no successor; prevHidden is ignored when it has no predecessor.
func (ts *Timestep) Backward(target, prevHidden, nextHiddenGrad mat.Matrix) {
	if ts.output == nil {
		panic("neuralnet: Backward called before Forward")
	}
	loss := BinaryCrossEntropy{}
	ts.outputGrad = loss.Gradient(ts.output, target)

	var dh mat.Dense
	dh.Mul(ts.outputGrad, ts.w.Out.T())
	if ts.hasSuccessor {
		if nextHiddenGrad == nil {
			panic("neuralnet: timestep with a successor needs its hidden gradient")
		}
		var future mat.Dense
		future.Mul(nextHiddenGrad, ts.w.Rec.T())
		dh.Add(&dh, &future)
	}
	dh.MulElem(&dh, derive(Tanh{}, ts.hidden))
	ts.hiddenGrad = &dh

	var gOut, gIn mat.Dense
	gOut.Mul(ts.hidden.T(), ts.outputGrad)
	gIn.Mul(ts.input.T(), ts.hiddenGrad)

	var gRec *mat.Dense
	if ts.hasPredecessor {
		if prevHidden == nil {
			panic("neuralnet: timestep with a predecessor needs its hidden state")
		}
		gRec = &mat.Dense{}
		gRec.Mul(prevHidden.T(), ts.hiddenGrad)
	} else {
		r, c := ts.w.Rec.Dims()
		gRec = mat.NewDense(r, c, nil)
	}
	ts.grads = Gradients{In: &gIn, Rec: gRec, Out: &gOut}
}

func (ts *Timestep) Hidden() *mat.Dense     { return ts.hidden }
func (ts *Timestep) Output() *mat.Dense     { return ts.output }
func (ts *Timestep) OutputGrad() *mat.Dense { return ts.outputGrad }
func (ts *Timestep) HiddenGrad() *mat.Dense { return ts.hiddenGrad }
func (ts *Timestep) Gradients() Gradients   { return ts.grads }
