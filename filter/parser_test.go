package filter

import (
	"errors"
	"strings"
	"testing"
)

func TestParse_Comparison(t *testing.T) {
	expr, err := Parse("amount > 1000")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	cmp, ok := expr.(*ComparisonExpr)
	if !ok {
		t.Fatalf("expected *ComparisonExpr, got %T", expr)
	}
	if cmp.Column != "amount" || cmp.Operator != TokenGreater {
		t.Errorf("unexpected comparison %+v", cmp)
	}
	if cmp.Value.Type != TokenNumber || cmp.Value.Num != 1000 {
		t.Errorf("unexpected literal %+v", cmp.Value)
	}
}

func TestParse_Precedence(t *testing.T) {
	// AND binds tighter than OR.
	expr, err := Parse("a = 1 or b = 2 and c = 3")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	or, ok := expr.(*BinaryExpr)
	if !ok || or.Operator != TokenOr {
		t.Fatalf("expected OR at the root, got %+v", expr)
	}
	and, ok := or.Right.(*BinaryExpr)
	if !ok || and.Operator != TokenAnd {
		t.Fatalf("expected AND on the right, got %+v", or.Right)
	}
}

func TestParse_Parentheses(t *testing.T) {
	expr, err := Parse("(a = 1 or b = 2) and c = 3")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	and, ok := expr.(*BinaryExpr)
	if !ok || and.Operator != TokenAnd {
		t.Fatalf("expected AND at the root, got %+v", expr)
	}
	if or, ok := and.Left.(*BinaryExpr); !ok || or.Operator != TokenOr {
		t.Errorf("expected OR on the left, got %+v", and.Left)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"missing operator", "amount 5"},
		{"missing value", "amount >"},
		{"value first", "5 = amount"},
		{"trailing tokens", "a = 1 b"},
		{"unbalanced paren", "(a = 1"},
		{"bad number", "a = 1.2.3"},
		{"ordered null", "a < null"},
		{"ordered bool", "a >= true"},
		{"unterminated string", "a = 'x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			if err == nil {
				t.Fatalf("Parse(%q) expected error", tt.input)
			}
			if !errors.Is(err, ErrSyntax) {
				t.Errorf("expected ErrSyntax, got %v", err)
			}
		})
	}
}

func TestParse_Limits(t *testing.T) {
	long := strings.Repeat("a", MaxExpressionLength+1)
	if _, err := Parse(long); !errors.Is(err, ErrExpressionTooLong) {
		t.Errorf("expected ErrExpressionTooLong, got %v", err)
	}

	deep := strings.Repeat("(", MaxExpressionDepth+1) + "a = 1" + strings.Repeat(")", MaxExpressionDepth+1)
	if _, err := Parse(deep); !errors.Is(err, ErrExpressionTooDeep) {
		t.Errorf("expected ErrExpressionTooDeep, got %v", err)
	}

	many := strings.Repeat("a = 1 and ", 300) + "a = 1"
	if _, err := Parse(many); !errors.Is(err, ErrTooManyTokens) {
		t.Errorf("expected ErrTooManyTokens, got %v", err)
	}
}

func TestColumns(t *testing.T) {
	expr, err := Parse("b = 1 and (a = 2 or b = 3)")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	got := Columns(expr)
	if len(got) != 2 || got[0] != "b" || got[1] != "a" {
		t.Errorf("Columns() = %v, want [b a]", got)
	}
}
