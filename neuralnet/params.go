package neuralnet

// Params holds the network shape and training hyperparameters.
type Params struct {
	Input     int
	Hidden    int
	Output    int
	Steps     int
	Lr        float64
	MaxEpoch  int
	BatchSize int
	// Seed for weight init and sampling. Zero derives it from the layer sizes.
	Seed int64
}

// NewParams returns the defaults used to learn 4-bit subtraction.
func NewParams() Params {
	return Params{
		Input:     2,
		Hidden:    3,
		Output:    1,
		Steps:     4,
		Lr:        0.1,
		MaxEpoch:  100,
		BatchSize: 1,
	}
}

func Seed(inputSize int, hidden int, outputSize int) int64 {
	return int64(inputSize + hidden + outputSize)
}
