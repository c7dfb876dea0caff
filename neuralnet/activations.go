package neuralnet

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// ActivationFunction is an element-wise nonlinearity. Derivative takes the
// activated value y = Activate(x), not x.
type ActivationFunction interface {
	Activate(x float64) float64
	Derivative(y float64) float64
}

type Sigmoid struct{}

func (s Sigmoid) Activate(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

func (s Sigmoid) Derivative(y float64) float64 {
	return y * (1 - y)
}

type Tanh struct{}

func (t Tanh) Activate(x float64) float64 {
	return math.Tanh(x)
}

func (t Tanh) Derivative(y float64) float64 {
	return 1 - y*y
}

func activate(f ActivationFunction, m mat.Matrix) *mat.Dense {
	var out mat.Dense
	out.Apply(func(_, _ int, v float64) float64 { return f.Activate(v) }, m)
	return &out
}

// derive maps already activated values to the activation's derivative.
func derive(f ActivationFunction, m mat.Matrix) *mat.Dense {
	var out mat.Dense
	out.Apply(func(_, _ int, v float64) float64 { return f.Derivative(v) }, m)
	return &out
}
