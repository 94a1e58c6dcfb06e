package reaction

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"unicode"

	"orr-overpotential/internal/overpotential"
)

// Electron is the species token for a transferred electron.
const Electron = "e-"

// Term is one species with its stoichiometric coefficient.
type Term struct {
	Species     string
	Coefficient float64
}

// Reaction is one line of a reaction file.
type Reaction struct {
	Line      int
	Text      string
	Reactants []Term
	Products  []Term
}

// Electrons returns electrons consumed minus electrons released.
func (r Reaction) Electrons() float64 {
	return coefficientOf(r.Reactants, Electron) - coefficientOf(r.Products, Electron)
}

// Network is the ordered list of reactions read from a reaction file.
type Network struct {
	Reactions []Reaction
}

// ParseError locates a syntax error in a reaction file.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// Steps converts the network to engine steps, in file order.
func (n Network) Steps() []overpotential.ElementaryStep {
	steps := make([]overpotential.ElementaryStep, len(n.Reactions))
	for i, r := range n.Reactions {
		steps[i] = overpotential.ElementaryStep{
			Index:     i,
			Electrons: int(r.Electrons()),
			Label:     r.Text,
		}
	}
	return steps
}

// LoadFile reads a reaction file from disk.
func LoadFile(path string) (Network, error) {
	f, err := os.Open(path)
	if err != nil {
		return Network{}, fmt.Errorf("open reaction file: %w", err)
	}
	defer f.Close()

	n, err := Parse(f)
	if err != nil {
		return Network{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return n, nil
}

// Parse reads one reaction per line in the form "A + 2B + e- -> C + D".
// Text after '#' is ignored, as are blank lines.
func Parse(r io.Reader) (Network, error) {
	var n Network

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		rxn, err := parseReaction(line, text)
		if err != nil {
			return Network{}, err
		}
		n.Reactions = append(n.Reactions, rxn)
	}
	if err := sc.Err(); err != nil {
		return Network{}, fmt.Errorf("read reactions: %w", err)
	}
	if len(n.Reactions) == 0 {
		return Network{}, overpotential.ErrEmptyPathway
	}
	return n, nil
}

func parseReaction(line int, text string) (Reaction, error) {
	sides := strings.Split(text, "->")
	if len(sides) != 2 {
		return Reaction{}, &ParseError{Line: line, Msg: fmt.Sprintf("expected exactly one '->' in %q", text)}
	}

	reactants, err := parseSide(line, sides[0])
	if err != nil {
		return Reaction{}, err
	}
	products, err := parseSide(line, sides[1])
	if err != nil {
		return Reaction{}, err
	}

	rxn := Reaction{Line: line, Text: text, Reactants: reactants, Products: products}
	if e := rxn.Electrons(); e != math.Trunc(e) {
		return Reaction{}, &ParseError{Line: line, Msg: fmt.Sprintf("non-integral electron count %g", e)}
	}
	return rxn, nil
}

func parseSide(line int, side string) ([]Term, error) {
	side = strings.TrimSpace(side)
	if side == "" {
		return nil, &ParseError{Line: line, Msg: "empty side of reaction"}
	}

	var terms []Term
	for _, raw := range splitTerms(side) {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return nil, &ParseError{Line: line, Msg: fmt.Sprintf("empty term in %q", side)}
		}
		t, err := parseTerm(raw)
		if err != nil {
			return nil, &ParseError{Line: line, Msg: err.Error()}
		}
		terms = append(terms, t)
	}
	return terms, nil
}

// splitTerms splits on " + " separators, leaving charges such as "H+" intact.
func splitTerms(side string) []string {
	fields := strings.Fields(side)
	var terms []string
	var cur []string
	for _, f := range fields {
		if f == "+" {
			terms = append(terms, strings.Join(cur, " "))
			cur = nil
			continue
		}
		cur = append(cur, f)
	}
	return append(terms, strings.Join(cur, " "))
}

func parseTerm(raw string) (Term, error) {
	coefText, species := leadingNumber(raw)
	species = strings.TrimSpace(species)
	if species == "" {
		return Term{}, fmt.Errorf("missing species in term %q", raw)
	}
	if strings.ContainsFunc(species, unicode.IsSpace) {
		return Term{}, fmt.Errorf("species %q contains whitespace", species)
	}

	coef := 1.0
	if coefText != "" {
		v, err := strconv.ParseFloat(coefText, 64)
		if err != nil || v <= 0 {
			return Term{}, fmt.Errorf("invalid coefficient %q", coefText)
		}
		coef = v
	}
	return Term{Species: species, Coefficient: coef}, nil
}

// leadingNumber splits "2H2O" or "0.5 O2" into coefficient and species.
func leadingNumber(raw string) (string, string) {
	end := 0
	for end < len(raw) && (raw[end] == '.' || (raw[end] >= '0' && raw[end] <= '9')) {
		end++
	}
	return raw[:end], raw[end:]
}

func coefficientOf(terms []Term, species string) float64 {
	sum := 0.0
	for _, t := range terms {
		if t.Species == species {
			sum += t.Coefficient
		}
	}
	return sum
}
