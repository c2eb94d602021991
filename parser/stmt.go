package parser

import (
	"github.com/merx-lang/merx/diag"
	"github.com/merx-lang/merx/lexer"
)

// parseStmtList parses a ';'-separated statement list up to but not
// including stop, per spec.md §4.1.1's node-body grammar. An empty
// body (stop appears immediately) is legal: a Process node may do
// nothing but pass through to its successor.
func (p *Parser) parseStmtList(stop lexer.TokenType) ([]Stmt, error) {
	if p.cur.Type == stop {
		return nil, nil
	}
	var stmts []Stmt
	for {
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
		if p.cur.Type == lexer.SEMI {
			p.advance()
			if p.cur.Type == stop {
				break
			}
			continue
		}
		break
	}
	return stmts, nil
}

// parseStmt parses one of the four statement forms: println/print/error
// applied to an expression, or a variable assignment.
func (p *Parser) parseStmt() (Stmt, error) {
	pos := p.pos()
	switch p.cur.Type {
	case lexer.PRINTLN:
		p.advance()
		e, err := p.parseExpr(1)
		if err != nil {
			return nil, err
		}
		return &PrintlnStmt{stmtBase{pos}, e}, nil
	case lexer.PRINT:
		p.advance()
		e, err := p.parseExpr(1)
		if err != nil {
			return nil, err
		}
		return &PrintStmt{stmtBase{pos}, e}, nil
	case lexer.ERROR:
		p.advance()
		e, err := p.parseExpr(1)
		if err != nil {
			return nil, err
		}
		return &ErrorStmt{stmtBase{pos}, e}, nil
	case lexer.IDENT:
		name := p.cur.Literal
		if lexer.ReservedWords[name] {
			return nil, p.errf(diag.ReservedIdentifier, "%q cannot be used as a variable name", name)
		}
		p.advance()
		if p.cur.Type != lexer.ASSIGN {
			return nil, p.errf(diag.UnexpectedToken, "expected '=' in assignment, found %q", p.cur.Literal)
		}
		p.advance()
		e, err := p.parseExpr(1)
		if err != nil {
			return nil, err
		}
		return &AssignStmt{stmtBase{pos}, name, e}, nil
	default:
		return nil, p.errf(diag.UnexpectedToken, "expected a statement, found %q", p.cur.Literal)
	}
}
