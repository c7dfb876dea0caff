package main

import (
	"math/rand"
	"os"

	"github.com/sirupsen/logrus"

	"binrnn/dataset"
	"binrnn/neuralnet"
)

const (
	trainFile = "data/minus_train.bin"
	testFile  = "data/minus_test.bin"
)

func loadData(rng *rand.Rand) (*dataset.Reader, error) {
	var dr *dataset.Reader
	if _, err := os.Stat(trainFile); os.IsNotExist(err) {
		all := dataset.Generate()
		dr = dataset.NewReaderFromBatches(all, all, rng)
	} else {
		dr = dataset.NewReader(trainFile, testFile, rng)
		if err := dr.ReadData(); err != nil {
			return nil, err
		}
	}
	dr.Shuffle()
	if err := dr.GenerateValidationSet(0); err != nil {
		return nil, err
	}
	return dr, nil
}

func main() {
	logger := logrus.New()
	params := neuralnet.NewParams()

	dr, err := loadData(rand.New(rand.NewSource(neuralnet.Seed(params.Input, params.Hidden, params.Output))))
	if err != nil {
		logger.WithError(err).Error("Error loading data")
		return
	}

	nn := neuralnet.NewNetwork(params, logger)
	if _, err := nn.Train(dr); err != nil {
		logger.WithError(err).Error("Training failed")
		return
	}
	nn.Test(dr, os.Stdout)
}
