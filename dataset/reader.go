package dataset

import (
	"math/rand"

	"github.com/pkg/errors"
)

// Reader serves shuffled training batches plus validation and test sets.
type Reader struct {
	trainFile string
	testFile  string
	rng       *rand.Rand

	train      Batch
	validation Batch
	test       Batch
}

// NewReader returns a Reader that loads its data from the two files on ReadData.
func NewReader(trainFile, testFile string, rng *rand.Rand) *Reader {
	return &Reader{trainFile: trainFile, testFile: testFile, rng: rng}
}

// NewReaderFromBatches returns a Reader over batches already in memory.
func NewReaderFromBatches(train, test Batch, rng *rand.Rand) *Reader {
	return &Reader{train: train, validation: train, test: test, rng: rng}
}

func (r *Reader) ReadData() error {
	train, err := Load(r.trainFile)
	if err != nil {
		return errors.Wrap(err, "loading training set")
	}
	test, err := Load(r.testFile)
	if err != nil {
		return errors.Wrap(err, "loading test set")
	}
	r.train, r.validation, r.test = train, train, test
	return nil
}

func (r *Reader) NumTrain() int {
	return r.train.Len()
}

// Shuffle reorders the training examples, keeping inputs and targets paired.
func (r *Reader) Shuffle() {
	idx := r.rng.Perm(r.train.Len())
	r.train = r.train.subset(idx)
}

// GenerateValidationSet moves the trailing fraction of the training set into
// the validation set. A fraction of 0 validates on the whole training set.
func (r *Reader) GenerateValidationSet(fraction float64) error {
	if fraction < 0 || fraction >= 1 {
		return errors.Errorf("validation fraction %v is outside [0, 1)", fraction)
	}
	if fraction == 0 {
		r.validation = r.train
		return nil
	}
	n := r.train.Len()
	k := int(float64(n) * fraction)
	if k == 0 || k == n {
		return errors.Errorf("validation fraction %v of %d examples leaves an empty set", fraction, n)
	}
	r.validation = r.train.slice(n-k, n)
	r.train = r.train.slice(0, n-k)
	return nil
}

// GetBatchTrainSamples returns the index-th batch of batchSize training examples.
// The last batch may be short.
func (r *Reader) GetBatchTrainSamples(batchSize, index int) Batch {
	from := batchSize * index
	to := from + batchSize
	if to > r.train.Len() {
		to = r.train.Len()
	}
	return r.train.slice(from, to)
}

func (r *Reader) GetValidationSet() Batch {
	return r.validation
}

func (r *Reader) GetTestSet() Batch {
	return r.test
}
