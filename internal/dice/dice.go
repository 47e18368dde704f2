// Package dice reads damage formulas into terms for deterministic sort
// values and rolls them through diceroll for previews.
package dice

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ddbrown30/item-browser/internal/apperr"
	"github.com/vcrini/diceroll"
)

// TermKind classifies a formula term.
type TermKind int

const (
	TermDie     TermKind = iota // NdF with optional modifiers
	TermNumber                  // numeric literal
	TermOther                   // attribute reference, parenthetical, function
	TermProduct                 // * or / chain of dice and numbers; Value is its maximum
)

// Term is one additive piece of a formula.
type Term struct {
	Kind   TermKind
	Sign   int // +1 or -1, from the preceding operator
	Number int // dice count for TermDie
	Faces  int // die size for TermDie
	Value  float64
	Text   string
}

var (
	dieTerm     = regexp.MustCompile(`^(?i)(\d*)d(\d+)([a-z0-9=<>]*)$`)
	facelessDie = regexp.MustCompile(`^(?i)\d*d$`)
)

// Parse splits a formula into signed additive terms. A top-level * or /
// chain is one term: numbers-only chains fold into a TermNumber, chains of
// dice and numbers become a TermProduct, anything else a TermOther. Empty
// terms, dangling operators and unbalanced parentheses are rejected.
func Parse(formula string) ([]Term, error) {
	src := strings.TrimSpace(formula)
	if src == "" {
		return nil, invalid(formula, "empty formula")
	}
	sign := 1
	switch src[0] {
	case '-':
		sign = -1
		src = strings.TrimSpace(src[1:])
	case '+':
		src = strings.TrimSpace(src[1:])
	}

	var terms []Term
	depth, start := 0, 0
	for i := 0; i < len(src); i++ {
		c := src[i]
		switch {
		case c == '(':
			depth++
		case c == ')':
			depth--
			if depth < 0 {
				return nil, invalid(formula, "unbalanced parentheses")
			}
		case depth == 0 && (c == '+' || c == '-'):
			t, err := termAt(formula, src[start:i], sign)
			if err != nil {
				return nil, err
			}
			terms = append(terms, t)
			sign = 1
			if c == '-' {
				sign = -1
			}
			start = i + 1
		}
	}
	if depth != 0 {
		return nil, invalid(formula, "unbalanced parentheses")
	}
	t, err := termAt(formula, src[start:], sign)
	if err != nil {
		return nil, err
	}
	return append(terms, t), nil
}

func termAt(formula, text string, sign int) (Term, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Term{}, invalid(formula, "missing term")
	}
	t, err := parseChain(text)
	if err != nil {
		return Term{}, invalid(formula, err.Error())
	}
	t.Sign = sign
	return t, nil
}

// parseChain reads one additive term, which may be a * or / chain.
func parseChain(text string) (Term, error) {
	var factors []string
	var ops []byte
	depth, start := 0, 0
	for i := 0; i < len(text); i++ {
		switch c := text[i]; {
		case c == '(':
			depth++
		case c == ')':
			depth--
		case depth == 0 && (c == '*' || c == '/'):
			factors = append(factors, strings.TrimSpace(text[start:i]))
			ops = append(ops, c)
			start = i + 1
		}
	}
	factors = append(factors, strings.TrimSpace(text[start:]))
	if len(factors) == 1 {
		return parseTerm(text)
	}

	value, numeric := 0.0, true
	for i, f := range factors {
		if f == "" {
			return Term{}, fmt.Errorf("missing factor in %q", text)
		}
		t, err := parseTerm(f)
		if err != nil {
			return Term{}, err
		}
		var v float64
		switch t.Kind {
		case TermNumber:
			v = t.Value
		case TermDie:
			v = float64(t.Number * t.Faces)
			numeric = false
		default:
			return Term{Kind: TermOther, Text: text}, nil
		}
		switch {
		case i == 0:
			value = v
		case ops[i-1] == '*':
			value *= v
		case v == 0:
			return Term{}, fmt.Errorf("division by zero in %q", text)
		default:
			value /= v
		}
	}
	if numeric {
		return Term{Kind: TermNumber, Value: value, Text: text}, nil
	}
	return Term{Kind: TermProduct, Value: value, Text: text}, nil
}

func parseTerm(text string) (Term, error) {
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return Term{Kind: TermNumber, Value: f, Text: text}, nil
	}
	if facelessDie.MatchString(text) {
		return Term{}, fmt.Errorf("die %q has no faces", text)
	}
	if m := dieTerm.FindStringSubmatch(text); m != nil {
		number := 1
		if m[1] != "" {
			number, _ = strconv.Atoi(m[1])
		}
		faces, _ := strconv.Atoi(m[2])
		if faces == 0 {
			return Term{}, fmt.Errorf("die %q has zero faces", text)
		}
		return Term{Kind: TermDie, Number: number, Faces: faces, Text: text}, nil
	}
	return Term{Kind: TermOther, Text: text}, nil
}

func invalid(formula, reason string) error {
	return apperr.WithMetadata(apperr.CodeFormulaInvalid,
		fmt.Sprintf("formula %q: %s", formula, reason),
		map[string]string{"Formula": formula})
}

// Max returns the highest total the formula can produce. Terms that are
// not dice or numbers contribute nothing.
func Max(formula string) (float64, error) {
	terms, err := Parse(formula)
	if err != nil {
		return 0, err
	}
	total := 0.0
	for _, t := range terms {
		switch t.Kind {
		case TermDie:
			total += float64(t.Sign * t.Number * t.Faces)
		case TermNumber, TermProduct:
			total += float64(t.Sign) * t.Value
		}
	}
	return total, nil
}

// Simplify combines numeric terms into one trailing modifier:
// "1d8+1+2" becomes "1d8 + 3". Other terms keep their position. A formula
// with a * or / chain that does not fold to a number is returned as written.
func Simplify(formula string) (string, error) {
	terms, err := Parse(formula)
	if err != nil {
		return "", err
	}
	for _, t := range terms {
		if t.Kind != TermNumber && strings.ContainsAny(t.Text, "*/") {
			return strings.TrimSpace(formula), nil
		}
	}
	var b strings.Builder
	constant := 0.0
	hasConstant := false
	for _, t := range terms {
		if t.Kind == TermNumber {
			constant += float64(t.Sign) * t.Value
			hasConstant = true
			continue
		}
		writeSigned(&b, t.Sign, t.Text)
	}
	if hasConstant && (constant != 0 || b.Len() == 0) {
		sign := 1
		if constant < 0 {
			sign, constant = -1, -constant
		}
		writeSigned(&b, sign, strconv.FormatFloat(constant, 'f', -1, 64))
	}
	return b.String(), nil
}

func writeSigned(b *strings.Builder, sign int, text string) {
	switch {
	case b.Len() == 0 && sign < 0:
		b.WriteString("-")
	case b.Len() > 0 && sign < 0:
		b.WriteString(" - ")
	case b.Len() > 0:
		b.WriteString(" + ")
	}
	b.WriteString(text)
}

// Roll is the outcome of rolling a formula.
type Roll struct {
	Formula   string
	Total     int
	Breakdown string
}

// Rollable reports whether every term of the formula can be rolled without
// outside data such as attribute references. Formulas with * or / chains
// are not rolled.
func Rollable(formula string) bool {
	terms, err := Parse(formula)
	if err != nil {
		return false
	}
	for _, t := range terms {
		if t.Kind == TermOther || strings.ContainsAny(t.Text, "*/") {
			return false
		}
	}
	return true
}

// RollFormula rolls the formula with diceroll. Formulas that reference
// outside data cannot be rolled.
func RollFormula(formula string) (Roll, error) {
	if !Rollable(formula) {
		return Roll{}, invalid(formula, "formula references values that cannot be rolled")
	}
	expr := strings.ReplaceAll(formula, " ", "")
	total, breakdown, err := diceroll.RollExpression(expr)
	if err != nil {
		return Roll{}, apperr.Wrap(apperr.CodeFormulaInvalid, "roll "+formula, err)
	}
	return Roll{Formula: formula, Total: total, Breakdown: breakdown}, nil
}
