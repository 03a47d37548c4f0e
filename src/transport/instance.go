package transport

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const maxLineBytes = 1 << 30

// instanceReader reads the whitespace separated instance format:
//
//	S D
//	supply_1 ... supply_S
//	demand_1 ... demand_D
//	c_11 ... c_1D
//	...
//	c_S1 ... c_SD
//
// Blank lines and lines starting with '#' are ignored.
type instanceReader struct {
	scanner *bufio.Scanner
	lineNo  int

	numSources      int
	numDestinations int
	supply          []float64
	demand          []float64
	costs           [][]float64
}

func errorCoalesce(steps ...func() error) error {
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

func (r *instanceReader) nextFields() ([]string, error) {
	for r.scanner.Scan() {
		r.lineNo++
		line := strings.TrimSpace(r.scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return strings.Fields(line), nil
	}
	if err := r.scanner.Err(); err != nil {
		return nil, err
	}
	return nil, io.ErrUnexpectedEOF
}

func (r *instanceReader) parseFloats(what string, want int) ([]float64, error) {
	fields, err := r.nextFields()
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", what)
	}
	if len(fields) != want {
		return nil, errors.Wrapf(ErrShapeMismatch, "line %d: %s has %d values, want %d", r.lineNo, what, len(fields), want)
	}
	values := make([]float64, want)
	for i, tok := range fields {
		values[i], err = strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d: parsing %s", r.lineNo, what)
		}
	}
	return values, nil
}

func (r *instanceReader) parseFirstLine() error {
	fields, err := r.nextFields()
	if err != nil {
		return errors.Wrap(err, "reading dimensions")
	}
	if len(fields) != 2 {
		return errors.Errorf("line %d: want \"sources destinations\", got %q", r.lineNo, strings.Join(fields, " "))
	}
	if r.numSources, err = strconv.Atoi(fields[0]); err != nil {
		return errors.Wrapf(err, "line %d: parsing number of sources", r.lineNo)
	}
	if r.numDestinations, err = strconv.Atoi(fields[1]); err != nil {
		return errors.Wrapf(err, "line %d: parsing number of destinations", r.lineNo)
	}
	if r.numSources < 1 || r.numDestinations < 1 {
		return errors.Wrapf(ErrEmptyProblem, "line %d", r.lineNo)
	}
	return nil
}

func (r *instanceReader) parseSupply() (err error) {
	r.supply, err = r.parseFloats("supply", r.numSources)
	return
}

func (r *instanceReader) parseDemand() (err error) {
	r.demand, err = r.parseFloats("demand", r.numDestinations)
	return
}

func (r *instanceReader) parseCosts() error {
	r.costs = make([][]float64, r.numSources)
	for i := range r.costs {
		row, err := r.parseFloats(fmt.Sprintf("cost row %d", i), r.numDestinations)
		if err != nil {
			return err
		}
		r.costs[i] = row
	}
	if fields, err := r.nextFields(); err == nil {
		return errors.Errorf("line %d: unexpected trailing data %q", r.lineNo, strings.Join(fields, " "))
	} else if err != io.ErrUnexpectedEOF {
		return err
	}
	return nil
}

func ParseProblem(in io.Reader) (*Problem, error) {
	r := &instanceReader{scanner: bufio.NewScanner(in)}
	// A cost row is a single line, so lines grow with the number of destinations.
	r.scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	err := errorCoalesce(
		r.parseFirstLine,
		r.parseSupply,
		r.parseDemand,
		r.parseCosts,
	)
	if err != nil {
		return nil, err
	}
	return NewProblem(r.costs, r.supply, r.demand)
}

func LoadProblem(filename string) (*Problem, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ParseProblem(file)
}

// WriteInstance writes p in the format read by ParseProblem.
func (p *Problem) WriteInstance(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d %d\n", p.NumSources, p.NumDestinations)
	writeRow(bw, p.Supply.RawVector().Data)
	writeRow(bw, p.Demand.RawVector().Data)
	for i := range p.NumSources {
		writeRow(bw, p.Costs.RawRowView(i))
	}
	return bw.Flush()
}

func writeRow(w io.Writer, row []float64) {
	for j, v := range row {
		if j > 0 {
			io.WriteString(w, " ")
		}
		io.WriteString(w, strconv.FormatFloat(v, 'g', -1, 64))
	}
	io.WriteString(w, "\n")
}
