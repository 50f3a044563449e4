// File: parser.go
// Title: Calculator Recursive Descent Parser
// Description: Turns one input line into a chain of statements. Each grammar
//              nonterminal has its own procedure. The primed rules for binary
//              operators return their operator together with the already
//              folded remainder, and the caller builds the node from its own
//              operand and that pair. Chains like a-b-c therefore become
//              a-(b-c) for every binary operator.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation

package parser

import (
	"strconv"

	"github.com/msto63/pascal/foundation/calc/ast"
	mdwlog "github.com/msto63/pascal/foundation/core/log"
)

// Syntax error messages
const (
	MsgClosingParen   = ") expected"
	MsgExpectedID     = "Expected ID"
	MsgExpectedSemi   = "Expected ';'"
	MsgFactorExpected = "ID, number, '(', - or function expected"
)

// Parser is a recursive descent parser for calculator lines. A Parser is not
// safe for concurrent use.
type Parser struct {
	lexer  *Lexer
	logger *mdwlog.Logger
}

// Options configures parser behavior
type Options struct {
	Logger *mdwlog.Logger
}

// ParseError is a syntax error. Token is the token that could not be
// accepted.
type ParseError struct {
	Message string
	Token   Token
}

func (pe *ParseError) Error() string {
	return pe.Message
}

// New creates a new parser with the given options
func New(opts Options) *Parser {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	return &Parser{
		logger: opts.Logger.WithField("component", "calc-parser"),
	}
}

// Parse parses one input line into a statement chain. On a syntax error no
// chain is returned.
func (p *Parser) Parse(input string) (*ast.Statement, error) {
	p.lexer = NewLexer(input)
	defer func() { p.lexer = nil }()

	chain, err := p.parseProgram()
	if err != nil {
		p.logger.Debug("Syntax error", mdwlog.Fields{
			"input": input,
			"error": err.Error(),
		})
		return nil, err
	}

	p.logger.Trace("Parsed line", mdwlog.Fields{
		"input":      input,
		"statements": chain.Len(),
	})
	return chain, nil
}

func (p *Parser) next() Token {
	return p.lexer.NextToken()
}

func (p *Parser) back() {
	p.lexer.PrevToken()
}

func (p *Parser) errorAt(tok Token, message string) *ParseError {
	return &ParseError{Message: message, Token: tok}
}

// parseProgram parses statements separated by ';' until EOF
func (p *Parser) parseProgram() (*ast.Statement, error) {
	var head, tail *ast.Statement
	for {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		if head == nil {
			head = stmt
		} else {
			tail.Next = stmt
		}
		tail = stmt

		tok := p.next()
		switch tok.Type {
		case TokenSemicolon:
			continue
		case TokenEOF:
			return head, nil
		default:
			return nil, p.errorAt(tok, MsgExpectedSemi)
		}
	}
}

func (p *Parser) parseStatement() (*ast.Statement, error) {
	tok := p.next()
	switch tok.Type {
	case TokenClear:
		p.back()
		return p.parseClear()
	case TokenList:
		return ast.NewList(), nil
	case TokenQuit, TokenExit:
		return ast.NewQuit(), nil
	case TokenSemicolon, TokenEOF:
		p.back()
		return ast.NewEmpty(), nil
	case TokenID:
		// one token of lookahead past the identifier
		isAssignment := p.next().Type == TokenEqual
		p.back()
		p.back()
		if isAssignment {
			return p.parseAssignment()
		}
		return p.parseExpressionStatement()
	default:
		p.back()
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseClear() (*ast.Statement, error) {
	p.next() // clear
	tok := p.next()
	if tok.Type != TokenID {
		return nil, p.errorAt(tok, MsgExpectedID)
	}
	return ast.NewClear(tok.Value), nil
}

func (p *Parser) parseAssignment() (*ast.Statement, error) {
	id := p.next()
	p.next() // =
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return ast.NewAssignment(id.Value, expr), nil
}

func (p *Parser) parseExpressionStatement() (*ast.Statement, error) {
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return ast.NewExpression(expr), nil
}

// tail is what a primed rule hands back: its operator and the folded
// remainder that becomes the right operand
type tail struct {
	op    ast.Operator
	right ast.Expr
}

func fold(left ast.Expr, t *tail) ast.Expr {
	if t == nil {
		return left
	}
	return &ast.BinaryOp{Left: left, Op: t.op, Right: t.right}
}

// expr -> term expr'
func (p *Parser) parseExpression() (ast.Expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	t, err := p.parseExpressionTail()
	if err != nil {
		return nil, err
	}
	return fold(left, t), nil
}

// expr' -> (+|-) term expr' | <empty>
func (p *Parser) parseExpressionTail() (*tail, error) {
	tok := p.next()
	var op ast.Operator
	switch tok.Type {
	case TokenPlus:
		op = ast.OpAdd
	case TokenMinus:
		op = ast.OpSub
	default:
		p.back()
		return nil, nil
	}

	operand, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	rest, err := p.parseExpressionTail()
	if err != nil {
		return nil, err
	}
	return &tail{op: op, right: fold(operand, rest)}, nil
}

// term -> pow term'
func (p *Parser) parseTerm() (ast.Expr, error) {
	left, err := p.parsePow()
	if err != nil {
		return nil, err
	}
	t, err := p.parseTermTail()
	if err != nil {
		return nil, err
	}
	return fold(left, t), nil
}

// term' -> (*|/) pow term' | <empty>
func (p *Parser) parseTermTail() (*tail, error) {
	tok := p.next()
	var op ast.Operator
	switch tok.Type {
	case TokenMult:
		op = ast.OpMul
	case TokenDiv:
		op = ast.OpDiv
	default:
		p.back()
		return nil, nil
	}

	operand, err := p.parsePow()
	if err != nil {
		return nil, err
	}
	rest, err := p.parseTermTail()
	if err != nil {
		return nil, err
	}
	return &tail{op: op, right: fold(operand, rest)}, nil
}

// pow -> factor pow'
func (p *Parser) parsePow() (ast.Expr, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	t, err := p.parsePowTail()
	if err != nil {
		return nil, err
	}
	return fold(left, t), nil
}

// pow' -> ** factor pow' | <empty>
func (p *Parser) parsePowTail() (*tail, error) {
	if p.next().Type != TokenPower {
		p.back()
		return nil, nil
	}

	operand, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	rest, err := p.parsePowTail()
	if err != nil {
		return nil, err
	}
	return &tail{op: ast.OpPow, right: fold(operand, rest)}, nil
}

var functions = map[TokenType]ast.Function{
	TokenSqrt: ast.FuncSqrt,
	TokenSin:  ast.FuncSin,
	TokenCos:  ast.FuncCos,
	TokenLog:  ast.FuncLog,
	TokenTan:  ast.FuncTan,
	TokenExp:  ast.FuncExp,
}

// factor -> ID | NUM | '(' expr ')' | '-' expr | FUNC '(' expr ')'
func (p *Parser) parseFactor() (ast.Expr, error) {
	tok := p.next()
	switch {
	case tok.Type == TokenID:
		return &ast.Identifier{Name: tok.Value}, nil

	case tok.Type == TokenNum:
		// out of range literals become ±Inf
		value, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			if ne, ok := err.(*strconv.NumError); !ok || ne.Err != strconv.ErrRange {
				return nil, p.errorAt(tok, MsgFactorExpected)
			}
		}
		return &ast.Number{Value: value}, nil

	case tok.Type == TokenOpenPar:
		return p.parseParenthesized()

	case tok.Type == TokenMinus:
		// the operand of a prefix minus is a whole expression: -2+3 is -(2+3)
		operand, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &ast.FunctionCall{Func: ast.FuncNegate, Arg: operand}, nil

	case tok.Type.IsFunction():
		// a missing "(" reports the same message as a missing ")"
		if open := p.next(); open.Type != TokenOpenPar {
			return nil, p.errorAt(open, MsgClosingParen)
		}
		arg, err := p.parseParenthesized()
		if err != nil {
			return nil, err
		}
		return &ast.FunctionCall{Func: functions[tok.Type], Arg: arg}, nil

	default:
		return nil, p.errorAt(tok, MsgFactorExpected)
	}
}

// parseParenthesized parses expr ')' after an opening parenthesis
func (p *Parser) parseParenthesized() (ast.Expr, error) {
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if closing := p.next(); closing.Type != TokenClosePar {
		return nil, p.errorAt(closing, MsgClosingParen)
	}
	return expr, nil
}
