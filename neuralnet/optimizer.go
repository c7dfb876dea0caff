package neuralnet

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Weights are the matrices shared by every timestep.
type Weights struct {
	In  *mat.Dense // input -> hidden
	Rec *mat.Dense // hidden -> hidden
	Out *mat.Dense // hidden -> output
}

// Gradients mirror Weights.
type Gradients struct {
	In  *mat.Dense
	Rec *mat.Dense
	Out *mat.Dense
}

// Add accumulates other into g, allocating on first use.
func (g *Gradients) Add(other Gradients) {
	g.In = addInto(g.In, other.In)
	g.Rec = addInto(g.Rec, other.Rec)
	g.Out = addInto(g.Out, other.Out)
}

func addInto(dst, src *mat.Dense) *mat.Dense {
	if dst == nil {
		return mat.DenseCopyOf(src)
	}
	dst.Add(dst, src)
	return dst
}

// Optimizer defines interface to apply summed gradients to the shared weights.
type Optimizer interface {
	Apply(params *Params, w *Weights, g *Gradients, batchSize int) error
}

// SGD implements plain gradient descent.
type SGD struct{}

// Apply subtracts lr * g / batchSize from every weight matrix.
func (o *SGD) Apply(params *Params, w *Weights, g *Gradients, batchSize int) error {
	if batchSize <= 0 {
		return errors.New("invalid batch size")
	}
	if g.In == nil || g.Rec == nil || g.Out == nil {
		return errors.New("incomplete gradients")
	}
	scale := params.Lr / float64(batchSize)
	step(w.In, g.In, scale)
	step(w.Rec, g.Rec, scale)
	step(w.Out, g.Out, scale)
	return nil
}

func step(w, g *mat.Dense, scale float64) {
	var delta mat.Dense
	delta.Scale(scale, g)
	w.Sub(w, &delta)
}
