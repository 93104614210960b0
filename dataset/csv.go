package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/tabeval/tabeval/pkg/errors"
)

// defaultMissingTokens are the cell values treated as missing.
var defaultMissingTokens = []string{"", "NA", "N/A", "?", "null"}

// CSVSource loads a Dataset from a headed CSV file. Every non-label column
// must be numeric or one of the configured missing tokens; the label column
// must be 0/1 and may not be missing.
type CSVSource struct {
	path          string
	labelColumn   string
	missingTokens map[string]struct{}
}

// CSVOption configures a CSVSource.
type CSVOption func(*CSVSource)

// WithMissingTokens replaces the default set of cell values treated as
// missing ("", "NA", "N/A", "?", "null").
func WithMissingTokens(tokens ...string) CSVOption {
	return func(s *CSVSource) {
		s.missingTokens = make(map[string]struct{}, len(tokens))
		for _, tok := range tokens {
			s.missingTokens[tok] = struct{}{}
		}
	}
}

// NewCSVSource creates a CSV-backed dataset source.
func NewCSVSource(path, labelColumn string, opts ...CSVOption) *CSVSource {
	s := &CSVSource{
		path:          path,
		labelColumn:   labelColumn,
		missingTokens: make(map[string]struct{}, len(defaultMissingTokens)),
	}
	for _, tok := range defaultMissingTokens {
		s.missingTokens[tok] = struct{}{}
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadRows implements Source.
func (s *CSVSource) LoadRows() (*Dataset, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, errors.Wrapf(err, "CSVSource: open %s", s.path)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "CSVSource: parse %s", s.path)
	}
	if len(records) < 2 {
		return nil, errors.Wrap(errors.ErrEmptyData, "CSVSource: need a header and at least one row")
	}

	header := records[0]
	labelIdx := -1
	featureNames := make([]string, 0, len(header)-1)
	for j, name := range header {
		if name == s.labelColumn {
			labelIdx = j
			continue
		}
		featureNames = append(featureNames, name)
	}
	if labelIdx < 0 {
		return nil, errors.NewValueError("CSVSource", fmt.Sprintf("label column '%s' not found in header", s.labelColumn))
	}
	if len(featureNames) == 0 {
		return nil, errors.NewValueError("CSVSource", "no feature columns besides the label")
	}

	nRows := len(records) - 1
	data := mat.NewDense(nRows, len(featureNames), nil)
	labels := make([]float64, nRows)

	for i, record := range records[1:] {
		if len(record) != len(header) {
			return nil, errors.NewValueError("CSVSource",
				fmt.Sprintf("row %d has %d fields, header has %d", i+2, len(record), len(header)))
		}
		k := 0
		for j, cell := range record {
			if j == labelIdx {
				y, err := strconv.ParseFloat(cell, 64)
				if err != nil || (y != 0 && y != 1) {
					return nil, errors.NewValueError("CSVSource",
						fmt.Sprintf("row %d: label '%s' is not 0 or 1", i+2, cell))
				}
				labels[i] = y
				continue
			}
			if _, missing := s.missingTokens[cell]; missing {
				data.Set(i, k, Missing())
				k++
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, errors.NewValueError("CSVSource",
					fmt.Sprintf("row %d, column '%s': cannot parse '%s' as a number", i+2, header[j], cell))
			}
			data.Set(i, k, v)
			k++
		}
	}

	frame, err := NewFrame(featureNames, data)
	if err != nil {
		return nil, err
	}
	return New(frame, labels)
}
