package parser

import (
	"strings"

	"github.com/merx-lang/merx/diag"
	"github.com/merx-lang/merx/lexer"
)

// Parser drives a two-token-lookahead scan over one physical line at a
// time, the same CurrToken/NextToken lookahead discipline as go-mix's
// own parser.Parser (parser/parser.go), adapted to merx's line-oriented
// top-level grammar: a fresh Lexer is seeded per line, while node/edge
// declarations accumulate across the whole file.
type Parser struct {
	lex  *lexer.Lexer
	cur  lexer.Token
	peek lexer.Token

	errs *diag.ErrorList

	sawHeader bool
	direction Direction
	nodes     []*NodeDecl
	edges     []*EdgeDecl
}

// Parse lexes and parses an entire merx source file into a Flowchart
// AST. It halts and returns the first error encountered (spec.md
// §4.1.3: "no partial recovery is required").
func Parse(source string) (*Flowchart, error) {
	p := &Parser{errs: &diag.ErrorList{}}
	for lineNo, text := range splitLines(source) {
		if err := p.parseLine(text, lineNo+1); err != nil {
			return nil, err
		}
	}
	if !p.sawHeader {
		return nil, diag.NewSyntaxError(diag.Pos{Line: 1, Col: 1}, diag.MissingFlowchartHead,
			"source does not start with a 'flowchart DIR' header")
	}
	return &Flowchart{Direction: p.direction, Nodes: p.nodes, Edges: p.edges}, nil
}

// ParseExpr parses a single merx expression (spec.md §4.1.2's grammar
// only, no node/edge syntax), for use by tooling that evaluates bare
// expressions line by line, such as the REPL scratchpad.
func ParseExpr(source string) (Expr, error) {
	p := &Parser{errs: &diag.ErrorList{}}
	p.startLexer(source, 1)
	e, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if p.cur.Type != lexer.EOF {
		return nil, p.errf(diag.UnexpectedToken, "unexpected trailing token %q", p.cur.Literal)
	}
	return e, nil
}

// ParseStmt parses a single merx statement (println/print/error/assign,
// spec.md §4.1.1), for tooling that wants to exercise a statement's
// side effect line by line, such as the REPL scratchpad.
func ParseStmt(source string) (Stmt, error) {
	p := &Parser{errs: &diag.ErrorList{}}
	p.startLexer(source, 1)
	s, err := p.parseStmt()
	if err != nil {
		return nil, err
	}
	if p.cur.Type != lexer.EOF {
		return nil, p.errf(diag.UnexpectedToken, "unexpected trailing token %q", p.cur.Literal)
	}
	return s, nil
}

// splitLines splits source on \n, stripping a trailing \r from each
// line so both LF and CRLF line endings are accepted (spec.md §6).
func splitLines(source string) []string {
	raw := strings.Split(source, "\n")
	for i, l := range raw {
		raw[i] = strings.TrimSuffix(l, "\r")
	}
	return raw
}

func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.lex.NextToken()
}

func (p *Parser) startLexer(text string, lineNo int) {
	p.lex = lexer.New(text, lineNo, 1)
	p.cur = p.lex.NextToken()
	p.peek = p.lex.NextToken()
}

func (p *Parser) pos() diag.Pos { return diag.Pos{Line: p.cur.Line, Col: p.cur.Col} }

func (p *Parser) errf(cat diag.SyntaxCategory, format string, args ...interface{}) error {
	return diag.NewSyntaxError(p.pos(), cat, format, args...)
}

// parseLine classifies and parses one physical line: blank/comment,
// the flowchart header, a standalone node_def, or an edge_def chain
// (possibly with shapes attached to its endpoints).
func (p *Parser) parseLine(text string, lineNo int) error {
	p.startLexer(text, lineNo)
	if p.cur.Type == lexer.EOF {
		return nil // blank or comment-only line
	}

	if p.cur.Type == lexer.FLOWCHART {
		return p.parseHeader()
	}
	if !p.sawHeader {
		return p.errf(diag.MissingFlowchartHead, "expected 'flowchart DIR' as the first line, found %q", p.cur.Literal)
	}

	first, err := p.parseSegment()
	if err != nil {
		return err
	}
	fromID := first.ID

	if p.cur.Type != lexer.ARROW && p.cur.Type != lexer.DASHDASH {
		if p.cur.Type != lexer.EOF {
			return p.errf(diag.UnexpectedToken, "unexpected token %q after node reference", p.cur.Literal)
		}
		if !first.HasShape {
			// A bare standalone identifier line declares an empty
			// pass-through Process node (shape_opt may be ε).
			p.nodes = append(p.nodes, first)
		}
		return nil
	}

	for {
		label, err := p.parseArrowAndLabel()
		if err != nil {
			return err
		}
		edgePos := p.pos()
		to, err := p.parseSegment()
		if err != nil {
			return err
		}
		p.edges = append(p.edges, &EdgeDecl{From: fromID, To: to.ID, Label: label, P: edgePos})
		fromID = to.ID

		if p.cur.Type == lexer.EOF {
			return nil
		}
		if p.cur.Type != lexer.ARROW && p.cur.Type != lexer.DASHDASH {
			return p.errf(diag.UnexpectedToken, "unexpected token %q after edge destination", p.cur.Literal)
		}
	}
}

func (p *Parser) parseHeader() error {
	p.sawHeader = true
	p.advance() // consume 'flowchart'
	if p.cur.Type != lexer.IDENT {
		return p.errf(diag.UnexpectedToken, "expected a direction (TD, TB, LR, RL, BT), found %q", p.cur.Literal)
	}
	switch Direction(p.cur.Literal) {
	case DirTD, DirTB, DirLR, DirRL, DirBT:
		p.direction = Direction(p.cur.Literal)
	default:
		return p.errf(diag.UnexpectedToken, "unknown direction %q", p.cur.Literal)
	}
	p.advance()
	if p.cur.Type != lexer.EOF {
		return p.errf(diag.UnexpectedToken, "unexpected token %q after flowchart header", p.cur.Literal)
	}
	return nil
}

// parseArrowAndLabel consumes an ARROW (with an optional |pipe| label)
// or a DASHDASH-opened inline label ("-- text -->"), returning the
// classified EdgeLabel. Exactly one of the two label forms may be
// used per spec.md §4.1.1.
func (p *Parser) parseArrowAndLabel() (EdgeLabel, error) {
	switch p.cur.Type {
	case lexer.ARROW:
		p.advance()
		if p.cur.Type == lexer.PIPE {
			p.advance()
			toks, err := p.collectTokensUntil(lexer.PIPE)
			if err != nil {
				return EdgeLabel{}, err
			}
			p.advance() // consume closing '|'
			return p.classifyLabel(joinLabelTokens(toks))
		}
		return EdgeLabel{Kind: LabelNone}, nil
	case lexer.DASHDASH:
		p.advance()
		toks, err := p.collectTokensUntil(lexer.ARROW)
		if err != nil {
			return EdgeLabel{}, err
		}
		p.advance() // consume the closing arrow
		return p.classifyLabel(joinLabelTokens(toks))
	default:
		return EdgeLabel{}, p.errf(diag.MalformedArrow, "expected an arrow, found %q", p.cur.Literal)
	}
}

// collectTokensUntil gathers tokens (without consuming stop) up to but
// not including a token of type stop. It is used to capture edge-label
// text and Start/End display-label text as raw token runs rather than
// parsed statement/expression grammar, since that text is never
// executed (spec.md §4.1.1, §3 "optional display label").
func (p *Parser) collectTokensUntil(stop lexer.TokenType) ([]lexer.Token, error) {
	var toks []lexer.Token
	for p.cur.Type != stop {
		if p.cur.Type == lexer.EOF {
			return nil, p.errf(diag.MismatchedBrackets, "unterminated label, expected %q", stop)
		}
		if p.cur.Type == lexer.ILLEGAL {
			return nil, p.errf(diag.UnexpectedToken, "%s", p.cur.Literal)
		}
		toks = append(toks, p.cur)
		p.advance()
	}
	return toks, nil
}

func joinLabelTokens(toks []lexer.Token) string {
	var sb strings.Builder
	for i, t := range toks {
		if i > 0 && t.Type != lexer.COMMA {
			sb.WriteByte(' ')
		}
		sb.WriteString(t.Literal)
	}
	return strings.TrimSpace(sb.String())
}

// parseSegment parses one node reference: an identifier with an
// optional shape. Every shaped occurrence is recorded as a NodeDecl
// (see DESIGN.md "Shape annotation on edge endpoints"); a bare
// occurrence is left for the validator to resolve against whatever
// NodeDecl already carries that id.
func (p *Parser) parseSegment() (*NodeDecl, error) {
	if p.cur.Type != lexer.IDENT {
		return nil, p.errf(diag.UnexpectedToken, "expected a node identifier, found %q", p.cur.Literal)
	}
	id := p.cur.Literal
	pos := p.pos()
	isStartEnd := id == "Start" || id == "End"
	kind := ProcessNode
	if id == "Start" {
		kind = StartNode
	} else if id == "End" {
		kind = EndNode
	}
	p.advance()

	decl := &NodeDecl{ID: id, Kind: kind, P: pos}

	switch p.cur.Type {
	case lexer.LBRACKET:
		decl.HasShape = true
		p.advance()
		if err := p.parseRectangleBody(decl, isStartEnd, lexer.RBRACKET); err != nil {
			return nil, err
		}
	case lexer.LPAREN:
		decl.HasShape = true
		p.advance()
		if p.cur.Type != lexer.LBRACKET {
			return nil, p.errf(diag.MismatchedBrackets, "expected '[' after '(' in stadium shape")
		}
		p.advance()
		if err := p.parseRectangleBody(decl, isStartEnd, lexer.RBRACKET); err != nil {
			return nil, err
		}
		if p.cur.Type != lexer.RPAREN {
			return nil, p.errf(diag.MismatchedBrackets, "expected ')' to close stadium shape")
		}
		p.advance()
	case lexer.LBRACE:
		decl.HasShape = true
		p.advance()
		if isStartEnd {
			return nil, p.errf(diag.ReservedIdentifier, "%s cannot carry a condition shape", id)
		}
		decl.Kind = ConditionNode
		quoted := p.consumeOptionalOpenQuote()
		cond, err := p.parseExpr(1)
		if err != nil {
			return nil, err
		}
		decl.Condition = cond
		if p.cur.Type != lexer.QUESTION {
			return nil, p.errf(diag.UnexpectedToken, "expected '?' to close condition expression, found %q", p.cur.Literal)
		}
		p.advance()
		p.consumeOptionalCloseQuote(quoted)
		if p.cur.Type != lexer.RBRACE {
			return nil, p.errf(diag.MismatchedBrackets, "expected '}' to close condition shape")
		}
		p.advance()
	default:
		decl.HasShape = false
	}

	if decl.HasShape {
		p.nodes = append(p.nodes, decl)
	}
	return decl, nil
}

// parseRectangleBody parses the label content of a "[...]" or
// "([...])" shape, up to but not including close. For Start/End it is
// captured as an unparsed display label (ignored at runtime); for any
// other id it is parsed as a statement list (a Process node's body).
func (p *Parser) parseRectangleBody(decl *NodeDecl, isStartEnd bool, close lexer.TokenType) error {
	quoted := p.consumeOptionalOpenQuote()
	if isStartEnd {
		toks, err := p.collectTokensUntil(closeOrQuote(close, quoted))
		if err != nil {
			return err
		}
		decl.Label = joinLabelTokens(toks)
	} else {
		stmts, err := p.parseStmtList(closeOrQuote(close, quoted))
		if err != nil {
			return err
		}
		decl.Statements = stmts
	}
	p.consumeOptionalCloseQuote(quoted)
	if p.cur.Type != close {
		return p.errf(diag.MismatchedBrackets, "expected %q to close shape, found %q", close, p.cur.Literal)
	}
	p.advance()
	return nil
}

func closeOrQuote(close lexer.TokenType, quoted bool) lexer.TokenType {
	if quoted {
		return lexer.DQUOTE
	}
	return close
}

func (p *Parser) consumeOptionalOpenQuote() bool {
	if p.cur.Type == lexer.DQUOTE {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) consumeOptionalCloseQuote(wasQuoted bool) {
	if wasQuoted && p.cur.Type == lexer.DQUOTE {
		p.advance()
	}
}
