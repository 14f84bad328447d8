package filter

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/vegasq/flatcat/tabulate"
)

// ErrUnknownColumn is returned by Apply when an expression names a column
// the table does not have.
var ErrUnknownColumn = errors.New("unknown column")

// numberPattern is the JSON number grammar. Cells outside it, such as Inf,
// 0x10 or 1_000, are text even where strconv would accept them.
var numberPattern = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

// compare compares one cell with a literal using the given operator
func compare(cell string, operator TokenType, lit Literal) bool {
	switch lit.Type {
	case TokenNull:
		return compareEquality(cell == "null", operator)
	case TokenBool:
		return compareEquality(cell == strings.ToLower(lit.Text), operator)
	case TokenNumber:
		if !numberPattern.MatchString(cell) {
			return false
		}
		num, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return false
		}
		return compareNumbers(num, operator, lit.Num)
	default:
		return compareStrings(cell, operator, lit.Text)
	}
}

func compareEquality(equal bool, operator TokenType) bool {
	switch operator {
	case TokenEqual:
		return equal
	case TokenNotEqual:
		return !equal
	default:
		return false
	}
}

// compareNumbers compares two numbers
func compareNumbers(left float64, operator TokenType, right float64) bool {
	switch operator {
	case TokenEqual:
		return left == right
	case TokenNotEqual:
		return left != right
	case TokenLess:
		return left < right
	case TokenGreater:
		return left > right
	case TokenLessEqual:
		return left <= right
	case TokenGreaterEqual:
		return left >= right
	default:
		return false
	}
}

// compareStrings compares two strings (case-sensitive)
func compareStrings(left string, operator TokenType, right string) bool {
	switch operator {
	case TokenEqual:
		return left == right
	case TokenNotEqual:
		return left != right
	case TokenLess:
		return left < right
	case TokenGreater:
		return left > right
	case TokenLessEqual:
		return left <= right
	case TokenGreaterEqual:
		return left >= right
	default:
		return false
	}
}

// Apply keeps the rows of t that match filter. A nil filter keeps every
// row.
func Apply(t *tabulate.Table, filter Expression) error {
	if filter == nil {
		return nil
	}

	known := make(map[string]bool, len(t.Header))
	for _, col := range t.Header {
		known[col] = true
	}
	for _, col := range Columns(filter) {
		if !known[col] {
			return fmt.Errorf("%w %q (available columns: %s)", ErrUnknownColumn, col, strings.Join(t.Header, ", "))
		}
	}

	filtered := t.Rows[:0]
	row := make(Row, len(t.Header))
	for _, cells := range t.Rows {
		for i, col := range t.Header {
			row[col] = cells[i]
		}
		if filter.Evaluate(row) {
			filtered = append(filtered, cells)
		}
	}
	t.Rows = filtered
	return nil
}
