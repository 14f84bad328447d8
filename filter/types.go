// Package filter provides WHERE-style row filtering for flattened tables.
//
// An expression compares columns with literals and combines comparisons
// with AND, OR and parentheses. Cells are text: a comparison against a
// number literal is numeric when the cell parses as a number, and never
// matches otherwise.
//
// Example usage:
//
//	expr, err := Parse("amount > 1000 and vaccine_type = 'FluVax'")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = Apply(table, expr)
package filter

// TokenType represents the type of a token
type TokenType int

const (
	// Keywords
	TokenAnd TokenType = iota
	TokenOr

	// Operators
	TokenEqual        // =
	TokenNotEqual     // !=
	TokenLess         // <
	TokenGreater      // >
	TokenLessEqual    // <=
	TokenGreaterEqual // >=

	// Grouping
	TokenLParen
	TokenRParen

	// Literals
	TokenString
	TokenNumber
	TokenIdent
	TokenBool
	TokenNull

	// Special
	TokenEOF
	TokenError
)

var tokenNames = map[TokenType]string{
	TokenAnd:          "AND",
	TokenOr:           "OR",
	TokenEqual:        "=",
	TokenNotEqual:     "!=",
	TokenLess:         "<",
	TokenGreater:      ">",
	TokenLessEqual:    "<=",
	TokenGreaterEqual: ">=",
	TokenLParen:       "(",
	TokenRParen:       ")",
	TokenString:       "string",
	TokenNumber:       "number",
	TokenIdent:        "column",
	TokenBool:         "bool",
	TokenNull:         "null",
	TokenEOF:          "end of expression",
	TokenError:        "invalid character",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "unknown"
}

// Token represents a lexical token
type Token struct {
	Type  TokenType
	Value string
}

// Row maps column names to cell text.
type Row map[string]string

// Expression represents a boolean expression over one row
type Expression interface {
	Evaluate(row Row) bool
}

// BinaryExpr represents a binary expression (AND/OR)
type BinaryExpr struct {
	Left     Expression
	Operator TokenType // TokenAnd or TokenOr
	Right    Expression
}

// Literal is the right-hand side of a comparison.
type Literal struct {
	Type TokenType // TokenString, TokenNumber, TokenBool or TokenNull
	Text string
	Num  float64 // set for TokenNumber
}

// ComparisonExpr represents a comparison expression
type ComparisonExpr struct {
	Column   string
	Operator TokenType
	Value    Literal
}

// Evaluate evaluates a binary expression
func (b *BinaryExpr) Evaluate(row Row) bool {
	switch b.Operator {
	case TokenAnd:
		return b.Left.Evaluate(row) && b.Right.Evaluate(row)
	case TokenOr:
		return b.Left.Evaluate(row) || b.Right.Evaluate(row)
	default:
		return false
	}
}

// Evaluate evaluates a comparison expression. A column missing from row
// never matches.
func (c *ComparisonExpr) Evaluate(row Row) bool {
	cell, exists := row[c.Column]
	if !exists {
		return false
	}
	return compare(cell, c.Operator, c.Value)
}

// Columns returns the column names expr refers to, in order of appearance.
func Columns(expr Expression) []string {
	var cols []string
	seen := make(map[string]bool)
	var walk func(Expression)
	walk = func(e Expression) {
		switch e := e.(type) {
		case *BinaryExpr:
			walk(e.Left)
			walk(e.Right)
		case *ComparisonExpr:
			if !seen[e.Column] {
				seen[e.Column] = true
				cols = append(cols, e.Column)
			}
		}
	}
	walk(expr)
	return cols
}
