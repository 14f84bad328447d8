package filter

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrSyntax is wrapped by every parse failure.
var ErrSyntax = errors.New("invalid filter expression")

// Parser parses filter expressions into an AST
type Parser struct {
	tokens []Token
	pos    int
	depth  *depthCounter
}

// NewParser creates a new parser
func NewParser(tokens []Token) *Parser {
	return &Parser{
		tokens: tokens,
		depth:  newDepthCounter(),
	}
}

// current returns the current token
func (p *Parser) current() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenEOF, Value: ""}
	}
	return p.tokens[p.pos]
}

// advance moves to the next token
func (p *Parser) advance() {
	p.pos++
}

func (p *Parser) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrSyntax, fmt.Sprintf(format, args...))
}

// Parse parses a filter expression such as
//
//	amount >= 1000 and (region = 'North' or region = 'South')
func Parse(expr string) (Expression, error) {
	if err := ValidateExpression(expr); err != nil {
		return nil, err
	}

	tokens := Tokenize(expr)
	if err := ValidateTokens(tokens); err != nil {
		return nil, err
	}

	p := NewParser(tokens)
	e, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if tok := p.current(); tok.Type != TokenEOF {
		return nil, p.errorf("unexpected %v %q", tok.Type, tok.Value)
	}
	return e, nil
}

// parseOr parses OR expressions (lowest precedence)
func (p *Parser) parseOr() (Expression, error) {
	if err := p.depth.enter(); err != nil {
		return nil, err
	}
	defer p.depth.exit()

	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	for p.current().Type == TokenOr {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{
			Left:     left,
			Operator: TokenOr,
			Right:    right,
		}
	}

	return left, nil
}

// parseAnd parses AND expressions (higher precedence than OR)
func (p *Parser) parseAnd() (Expression, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for p.current().Type == TokenAnd {
		p.advance()
		right, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{
			Left:     left,
			Operator: TokenAnd,
			Right:    right,
		}
	}

	return left, nil
}

// parsePrimary parses a parenthesised expression or a comparison
func (p *Parser) parsePrimary() (Expression, error) {
	if p.current().Type != TokenLParen {
		return p.parseComparison()
	}
	p.advance()

	expr, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.current().Type != TokenRParen {
		return nil, p.errorf("expected ), got %v", p.current().Type)
	}
	p.advance()
	return expr, nil
}

// parseComparison parses comparison expressions
func (p *Parser) parseComparison() (Expression, error) {
	if p.current().Type != TokenIdent {
		return nil, p.errorf("expected column name, got %v", p.current().Type)
	}
	column := p.current().Value
	if err := ValidateColumnName(column); err != nil {
		return nil, err
	}
	p.advance()

	operator := p.current().Type
	switch operator {
	case TokenEqual, TokenNotEqual, TokenLess, TokenGreater, TokenLessEqual, TokenGreaterEqual:
		p.advance()
	default:
		return nil, p.errorf("expected comparison operator after %s, got %v", column, operator)
	}

	tok := p.current()
	lit := Literal{Type: tok.Type, Text: tok.Value}
	switch tok.Type {
	case TokenString:
	case TokenNumber:
		num, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			return nil, p.errorf("invalid number: %s", tok.Value)
		}
		lit.Num = num
	case TokenBool, TokenNull:
		switch operator {
		case TokenEqual, TokenNotEqual:
		default:
			return nil, p.errorf("%s can only be compared with = or !=", tok.Value)
		}
	default:
		return nil, p.errorf("expected value (string, number, bool or null), got %v", tok.Type)
	}
	p.advance()

	return &ComparisonExpr{
		Column:   column,
		Operator: operator,
		Value:    lit,
	}, nil
}
