package dataset

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gorgonia.org/tensor"
)

const (
	// Steps is the number of timesteps per sequence (bits per number).
	Steps = 4
	// Bits is the number of input bits per timestep (one per operand).
	Bits = 2
)

// Batch holds inputs of shape (n, Steps, Bits) and targets of shape (n, Steps).
// Bits are stored least-significant first.
type Batch struct {
	X *tensor.Dense
	Y *tensor.Dense
}

func NewBatch(n int, xs []float64, ys []float64) Batch {
	if len(xs) != n*Steps*Bits || len(ys) != n*Steps {
		panic(fmt.Sprintf("dataset: batch of %d needs %d inputs and %d targets, got %d and %d",
			n, n*Steps*Bits, n*Steps, len(xs), len(ys)))
	}
	x := tensor.New(tensor.Of(tensor.Float64), tensor.WithShape(n, Steps, Bits), tensor.WithBacking(xs))
	y := tensor.New(tensor.Of(tensor.Float64), tensor.WithShape(n, Steps), tensor.WithBacking(ys))
	return Batch{X: x, Y: y}
}

func (b Batch) Len() int {
	if b.X == nil {
		return 0
	}
	return b.X.Shape()[0]
}

func (b Batch) xs() []float64 { return b.X.Data().([]float64) }
func (b Batch) ys() []float64 { return b.Y.Data().([]float64) }

// Step returns the inputs X[:, t] as an (n x Bits) matrix and the targets
// Y[:, t] as an (n x 1) matrix.
func (b Batch) Step(t int) (*mat.Dense, *mat.Dense) {
	n := b.Len()
	xs, ys := b.xs(), b.ys()
	x := mat.NewDense(n, Bits, nil)
	y := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		for k := 0; k < Bits; k++ {
			x.Set(i, k, xs[(i*Steps+t)*Bits+k])
		}
		y.Set(i, 0, ys[i*Steps+t])
	}
	return x, y
}

// Targets returns Y as an (n x Steps) matrix.
func (b Batch) Targets() *mat.Dense {
	data := make([]float64, len(b.ys()))
	copy(data, b.ys())
	return mat.NewDense(b.Len(), Steps, data)
}

// Operands returns the bits of both operands of example i in storage order.
func (b Batch) Operands(i int) ([]int, []int) {
	xs := b.xs()
	x1 := make([]int, Steps)
	x2 := make([]int, Steps)
	for t := 0; t < Steps; t++ {
		x1[t] = int(xs[(i*Steps+t)*Bits])
		x2[t] = int(xs[(i*Steps+t)*Bits+1])
	}
	return x1, x2
}

// Target returns the target bits of example i in storage order.
func (b Batch) Target(i int) []int {
	ys := b.ys()
	out := make([]int, Steps)
	for t := 0; t < Steps; t++ {
		out[t] = int(ys[i*Steps+t])
	}
	return out
}

// subset copies the examples at idx into a new batch.
func (b Batch) subset(idx []int) Batch {
	xs, ys := b.xs(), b.ys()
	nx := make([]float64, 0, len(idx)*Steps*Bits)
	ny := make([]float64, 0, len(idx)*Steps)
	for _, i := range idx {
		nx = append(nx, xs[i*Steps*Bits:(i+1)*Steps*Bits]...)
		ny = append(ny, ys[i*Steps:(i+1)*Steps]...)
	}
	return NewBatch(len(idx), nx, ny)
}

func (b Batch) slice(from, to int) Batch {
	idx := make([]int, 0, to-from)
	for i := from; i < to; i++ {
		idx = append(idx, i)
	}
	return b.subset(idx)
}

// Reverse returns a reversed copy of a, turning LSB-first storage order
// into the usual most-significant-first reading order.
func Reverse(a []int) []int {
	out := make([]int, len(a))
	for i, v := range a {
		out[len(a)-1-i] = v
	}
	return out
}
