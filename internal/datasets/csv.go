package datasets

import (
	"fmt"

	"github.com/gocarina/gocsv"

	"github.com/JaimeStill/iris/internal/samples"
)

// ImportBatchSize is the number of rows stored per transaction during import.
const ImportBatchSize = 50

// row is one line of a dataset CSV file.
type row struct {
	SepalLength float64 `csv:"sepal_length"`
	SepalWidth  float64 `csv:"sepal_width"`
	PetalLength float64 `csv:"petal_length"`
	PetalWidth  float64 `csv:"petal_width"`
	Species     string  `csv:"species"`
}

// decodeRows parses CSV data into sample create commands of the given kind.
// The species column is dropped for unknown samples.
func decodeRows(data []byte, purpose samples.Kind) ([]samples.CreateCommand, error) {
	var rows []*row
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidFile)
	}

	cmds := make([]samples.CreateCommand, 0, len(rows))
	for i, r := range rows {
		cmd := samples.CreateCommand{
			Kind:   purpose,
			Sample: samples.NewSample(r.SepalLength, r.SepalWidth, r.PetalLength, r.PetalWidth),
		}
		if purpose.Known() {
			cmd.Species = r.Species
		}

		if err := cmd.Validate(); err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrInvalidFile, i+1, err)
		}

		cmds = append(cmds, cmd)
	}

	return cmds, nil
}

func batches[T any](items []T, size int) [][]T {
	var out [][]T
	for size < len(items) {
		items, out = items[size:], append(out, items[:size])
	}
	if len(items) > 0 {
		out = append(out, items)
	}
	return out
}
