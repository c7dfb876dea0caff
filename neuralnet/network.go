package neuralnet

import (
	"fmt"
	"io"
	"math"
	"math/rand"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"binrnn/dataset"
)

// DataProvider is the source of training, validation and test batches.
type DataProvider interface {
	Shuffle()
	NumTrain() int
	GetBatchTrainSamples(batchSize, index int) dataset.Batch
	GetValidationSet() dataset.Batch
	GetTestSet() dataset.Batch
}

// Network is a recurrent net unrolled over a fixed number of timesteps that
// all share one set of weights.
type Network struct {
	Params Params

	weights    *Weights
	biasHidden *mat.VecDense
	biasOutput *mat.VecDense

	steps     []*Timestep
	loss      BinaryCrossEntropy
	optimizer Optimizer
	rng       *rand.Rand
	logger    *logrus.Logger
}

func NewNetwork(params Params, logger *logrus.Logger) *Network {
	if params.Steps < 1 {
		panic("neuralnet: network needs at least one timestep")
	}
	if logger == nil {
		logger = logrus.New()
	}
	seed := params.Seed
	if seed == 0 {
		seed = Seed(params.Input, params.Hidden, params.Output)
	}

	nn := &Network{
		Params:    params,
		optimizer: &SGD{},
		rng:       rand.New(rand.NewSource(seed)),
		logger:    logger,
	}
	nn.steps = make([]*Timestep, params.Steps)
	for i := range nn.steps {
		nn.steps[i] = NewTimestep(i > 0, i < params.Steps-1)
	}
	nn.initialize(params.Input, params.Hidden, params.Output)
	return nn
}

// initialize draws every weight uniformly from [-1, 1).
func (nn *Network) initialize(numInput, numHidden, numOutput int) {
	nn.weights = &Weights{
		In:  nn.uniform(numInput, numHidden),
		Rec: nn.uniform(numHidden, numHidden),
		Out: nn.uniform(numHidden, numOutput),
	}
	nn.biasHidden = mat.NewVecDense(numHidden, nil)
	nn.biasOutput = mat.NewVecDense(numOutput, nil)
}

func (nn *Network) uniform(r, c int) *mat.Dense {
	data := make([]float64, r*c)
	for i := range data {
		data[i] = nn.rng.Float64()*2 - 1
	}
	return mat.NewDense(r, c, data)
}

func (nn *Network) Weights() *Weights {
	return nn.weights
}

func (nn *Network) Timesteps() []*Timestep {
	return nn.steps
}

// Forward feeds the batch through the timesteps in temporal order.
func (nn *Network) Forward(batch dataset.Batch) {
	var prev mat.Matrix
	for t, ts := range nn.steps {
		x, _ := batch.Step(t)
		ts.Forward(x, nn.weights, prev)
		prev = ts.Hidden()
	}
}

// Backward runs the timesteps in reverse order, each one consuming the hidden
// gradient its successor just produced.
func (nn *Network) Backward(batch dataset.Batch) {
	var next mat.Matrix
	for t := len(nn.steps) - 1; t >= 0; t-- {
		_, y := batch.Step(t)
		var prev mat.Matrix
		if t > 0 {
			prev = nn.steps[t-1].Hidden()
		}
		nn.steps[t].Backward(y, prev, next)
		next = nn.steps[t].HiddenGrad()
	}
}

// Gradients sums the per-step gradients of the last Backward call.
func (nn *Network) Gradients() Gradients {
	var sum Gradients
	for _, ts := range nn.steps {
		sum.Add(ts.Gradients())
	}
	return sum
}

// Step runs forward and backward on one batch and applies a single update.
func (nn *Network) Step(batch dataset.Batch) error {
	nn.Forward(batch)
	nn.Backward(batch)
	grads := nn.Gradients()
	return nn.optimizer.Apply(&nn.Params, nn.weights, &grads, batch.Len())
}

// Evaluate returns the mean per-step loss, the share of examples whose bits
// are all predicted correctly, and the rounded (n x steps) predictions.
// Outputs of exactly 0.5 round to 0. An empty batch yields zero loss and
// accuracy and no predictions.
func (nn *Network) Evaluate(batch dataset.Batch) (float64, float64, *mat.Dense) {
	n := batch.Len()
	steps := len(nn.steps)
	if n == 0 {
		return 0, 0, nil
	}
	nn.Forward(batch)

	result := mat.NewDense(n, steps, nil)
	var loss float64
	for t, ts := range nn.steps {
		_, y := batch.Step(t)
		l, _ := nn.loss.CheckLoss(ts.Output(), y)
		loss += l
		for i := 0; i < n; i++ {
			result.Set(i, t, math.RoundToEven(ts.Output().At(i, 0)))
		}
	}
	loss /= float64(steps)

	targets := batch.Targets()
	correct := 0
	for i := 0; i < n; i++ {
		if floats.Equal(result.RawRowView(i), targets.RawRowView(i)) {
			correct++
		}
	}
	return loss, float64(correct) / float64(n), result
}

// Train runs SGD until the validation accuracy reaches 1 or MaxEpoch epochs
// have passed. It returns the number of epochs run.
func (nn *Network) Train(dp DataProvider) (int, error) {
	batchSize := nn.Params.BatchSize
	epoch := 0
	for epoch < nn.Params.MaxEpoch {
		dp.Shuffle()
		batches := (dp.NumTrain() + batchSize - 1) / batchSize
		for i := 0; i < batches; i++ {
			if err := nn.Step(dp.GetBatchTrainSamples(batchSize, i)); err != nil {
				return epoch, errors.Wrapf(err, "epoch %d, batch %d", epoch, i)
			}
		}

		loss, acc, _ := nn.Evaluate(dp.GetValidationSet())
		nn.logger.WithField("epoch", epoch).Infof("loss=%.6f, acc=%.6f", loss, acc)
		epoch++
		if acc == 1.0 {
			break
		}
	}
	nn.logger.Debugf("weights after %d epochs:\n%v", epoch, nn)
	return epoch, nil
}

// Test logs the test-set loss and accuracy and writes ten random examples to w,
// most significant bit first.
func (nn *Network) Test(dp DataProvider, w io.Writer) (float64, float64) {
	nn.logger.Info("testing...")
	batch := dp.GetTestSet()
	loss, acc, result := nn.Evaluate(batch)
	nn.logger.WithFields(logrus.Fields{
		"examples": batch.Len(),
	}).Infof("loss=%.6f, acc=%.6f", loss, acc)

	if batch.Len() == 0 {
		return loss, acc
	}
	for i := 0; i < 10; i++ {
		idx := nn.rng.Intn(batch.Len())
		x1, x2 := batch.Operands(idx)
		pred := make([]int, len(nn.steps))
		for t := range pred {
			pred[t] = int(result.At(idx, t))
		}
		fmt.Fprintln(w, "  x1:", dataset.Reverse(x1))
		fmt.Fprintln(w, "- x2:", dataset.Reverse(x2))
		fmt.Fprintln(w, "------------------")
		fmt.Fprintln(w, "true:", dataset.Reverse(batch.Target(idx)))
		fmt.Fprintln(w, "pred:", dataset.Reverse(pred))
		fmt.Fprintln(w, "====================")
	}
	return loss, acc
}

func (nn *Network) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("In:\n%v\n", mat.Formatted(nn.weights.In)))
	sb.WriteString(fmt.Sprintf("Rec:\n%v\n", mat.Formatted(nn.weights.Rec)))
	sb.WriteString(fmt.Sprintf("Out:\n%v\n", mat.Formatted(nn.weights.Out)))
	return sb.String()
}
