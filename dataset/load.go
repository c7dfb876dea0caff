package dataset

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

const (
	// Row is the on-disk size of one example: minuend, subtrahend, difference.
	Row = 3
	// MaxValue is the largest number that fits into Steps bits.
	MaxValue = 1<<Steps - 1
)

// Encode returns the LSB-first input bits of a and b, interleaved per
// timestep, and the bits of a-b.
func Encode(a, b int) ([]float64, []float64) {
	x := make([]float64, Steps*Bits)
	y := make([]float64, Steps)
	d := a - b
	for t := 0; t < Steps; t++ {
		x[t*Bits] = float64(a >> t & 1)
		x[t*Bits+1] = float64(b >> t & 1)
		y[t] = float64(d >> t & 1)
	}
	return x, y
}

// Generate returns every subtraction a-b with 0 <= b <= a <= MaxValue.
func Generate() Batch {
	var xs, ys []float64
	n := 0
	for a := 0; a <= MaxValue; a++ {
		for b := 0; b <= a; b++ {
			x, y := Encode(a, b)
			xs = append(xs, x...)
			ys = append(ys, y...)
			n++
		}
	}
	return NewBatch(n, xs, ys)
}

// Load reads a file of fixed-size rows. Each row holds the minuend, the
// subtrahend and the expected difference as single bytes.
func Load(filePath string) (Batch, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return Batch{}, errors.Wrapf(err, "opening %s", filePath)
	}
	defer file.Close()

	var xs, ys []float64
	n := 0
	row := make([]byte, Row)
	for {
		_, err := io.ReadFull(file, row)
		if err == io.EOF {
			break
		}
		if err != nil {
			return Batch{}, errors.Wrapf(err, "reading row %d of %s", n, filePath)
		}
		a, b, d := int(row[0]), int(row[1]), int(row[2])
		if a > MaxValue || b > MaxValue || d > MaxValue {
			return Batch{}, errors.Errorf("row %d of %s: values %d, %d, %d do not fit %d bits", n, filePath, a, b, d, Steps)
		}
		x, _ := Encode(a, b)
		xs = append(xs, x...)
		for t := 0; t < Steps; t++ {
			ys = append(ys, float64(d>>t&1))
		}
		n++
	}
	if n == 0 {
		return Batch{}, errors.Errorf("%s holds no examples", filePath)
	}
	return NewBatch(n, xs, ys), nil
}
