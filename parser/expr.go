package parser

import (
	"strconv"

	"github.com/merx-lang/merx/diag"
	"github.com/merx-lang/merx/lexer"
)

// parseExpr is a precedence-climbing expression parser implementing
// spec.md §4.1.2's 8-level table, adapted from go-mix's
// UnaryFuncs/BinaryFuncs precedence-table idiom (parser/parser.go,
// parser/parser_precedence.go) but retuned from go-mix's language
// down to merx's eight levels. minBP is the minimum binding power an
// infix operator must have to be consumed at this recursion depth;
// every merx binary operator is left-associative, so a consumed
// operator parses its right operand with its own binding power plus
// one (bp+1).
func (p *Parser) parseExpr(minBP int) (Expr, error) {
	lhs, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		if p.cur.Type == lexer.AS {
			if asBindingPower < minBP {
				break
			}
			pos := p.pos()
			p.advance()
			target, err := p.parseCastTarget()
			if err != nil {
				return nil, err
			}
			lhs = &CastExpr{exprBase{pos}, lhs, target}
			continue
		}
		bp, op, ok := infixBindingPower(p.cur.Type)
		if !ok || bp < minBP {
			break
		}
		pos := p.pos()
		p.advance()
		rhs, err := p.parseExpr(bp + 1)
		if err != nil {
			return nil, err
		}
		lhs = &BinaryExpr{exprBase{pos}, op, lhs, rhs}
	}
	return lhs, nil
}

// Binding powers, low to high, mirroring spec.md §4.1.2's Prec column
// in reverse (Prec 8 "||" binds loosest, Prec 1 unary binds tightest).
const (
	bpOr = 1 + iota
	bpAnd
	bpEq
	bpRel
	bpAdd
	bpMul
)

const asBindingPower = bpMul + 1 // "as" binds tighter than * / % but looser than unary.

func infixBindingPower(t lexer.TokenType) (int, BinaryOp, bool) {
	switch t {
	case lexer.OROR:
		return bpOr, OpOr, true
	case lexer.ANDAND:
		return bpAnd, OpAnd, true
	case lexer.EQ:
		return bpEq, OpEq, true
	case lexer.NE:
		return bpEq, OpNe, true
	case lexer.LT:
		return bpRel, OpLt, true
	case lexer.LE:
		return bpRel, OpLe, true
	case lexer.GT:
		return bpRel, OpGt, true
	case lexer.GE:
		return bpRel, OpGe, true
	case lexer.PLUS:
		return bpAdd, OpAdd, true
	case lexer.MINUS:
		return bpAdd, OpSub, true
	case lexer.STAR:
		return bpMul, OpMul, true
	case lexer.SLASH:
		return bpMul, OpDiv, true
	case lexer.PERCENT:
		return bpMul, OpMod, true
	default:
		return 0, "", false
	}
}

// parseUnary handles the two right-associative prefix operators, the
// tightest-binding level in the table, before falling through to a
// primary expression.
func (p *Parser) parseUnary() (Expr, error) {
	switch p.cur.Type {
	case lexer.MINUS:
		pos := p.pos()
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{exprBase{pos}, OpNeg, operand}, nil
	case lexer.BANG:
		pos := p.pos()
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{exprBase{pos}, OpNot, operand}, nil
	default:
		return p.parsePrimary()
	}
}

func (p *Parser) parsePrimary() (Expr, error) {
	pos := p.pos()
	switch p.cur.Type {
	case lexer.INT:
		lit := p.cur.Literal
		p.advance()
		n, err := strconv.ParseInt(lit, 10, 64)
		if err != nil {
			return nil, diag.NewSyntaxError(pos, diag.UnexpectedToken, "integer literal %q out of range", lit)
		}
		return &IntLit{exprBase{pos}, n}, nil
	case lexer.STRING:
		lit := p.cur.Literal
		p.advance()
		return &StrLit{exprBase{pos}, lit}, nil
	case lexer.TRUE:
		p.advance()
		return &BoolLit{exprBase{pos}, true}, nil
	case lexer.FALSE:
		p.advance()
		return &BoolLit{exprBase{pos}, false}, nil
	case lexer.INPUT:
		p.advance()
		return &InputExpr{exprBase{pos}}, nil
	case lexer.IDENT:
		name := p.cur.Literal
		if lexer.ReservedWords[name] {
			return nil, p.errf(diag.ReservedIdentifier, "%q cannot be used as a variable name", name)
		}
		p.advance()
		return &VarExpr{exprBase{pos}, name}, nil
	case lexer.LPAREN:
		p.advance()
		inner, err := p.parseExpr(1)
		if err != nil {
			return nil, err
		}
		if p.cur.Type != lexer.RPAREN {
			return nil, p.errf(diag.MismatchedBrackets, "expected ')', found %q", p.cur.Literal)
		}
		p.advance()
		return inner, nil
	default:
		return nil, p.errf(diag.UnexpectedToken, "expected an expression, found %q", p.cur.Literal)
	}
}

func (p *Parser) parseCastTarget() (CastTarget, error) {
	switch p.cur.Type {
	case lexer.INT_TYPE:
		p.advance()
		return CastInt, nil
	case lexer.STR_TYPE:
		p.advance()
		return CastStr, nil
	default:
		return "", p.errf(diag.UnexpectedToken, "expected 'int' or 'str' after 'as', found %q", p.cur.Literal)
	}
}
