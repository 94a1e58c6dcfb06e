package reaction

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// LoadEnergies reads a reaction energy vector from disk.
func LoadEnergies(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open energies file: %w", err)
	}
	defer f.Close()

	deltaEs, err := ParseEnergies(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return deltaEs, nil
}

// ParseEnergies reads reaction energies in eV separated by whitespace,
// commas or newlines. Text after '#' is ignored.
func ParseEnergies(r io.Reader) ([]float64, error) {
	var out []float64

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.FieldsFunc(text, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t' || r == '[' || r == ']'
		})
		for _, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, &ParseError{Line: line, Msg: fmt.Sprintf("invalid energy %q", f)}
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, &ParseError{Line: line, Msg: fmt.Sprintf("energy %q is not finite", f)}
			}
			out = append(out, v)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read energies: %w", err)
	}
	return out, nil
}
