// File: lexer.go
// Title: Calculator Lexical Analyzer
// Description: Tokenizes one input line on demand. Words are matched against
//              an ordered pattern table (keywords, operators with ** before *,
//              identifiers, numbers). The last two fresh tokens are kept in a
//              ring buffer so callers can step back up to two tokens.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation

package parser

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/edwingeng/deque"
)

// TokenType represents the kind of a token
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenClear
	TokenList
	TokenQuit
	TokenExit
	TokenSqrt
	TokenSin
	TokenCos
	TokenLog
	TokenTan
	TokenExp
	TokenPlus
	TokenMinus
	TokenPower
	TokenMult
	TokenDiv
	TokenSemicolon
	TokenOpenPar
	TokenClosePar
	TokenEqual
	TokenID
	TokenNum
	TokenError
)

var tokenNames = [...]string{
	TokenEOF:       "EOF",
	TokenClear:     "CLEAR",
	TokenList:      "LIST",
	TokenQuit:      "QUIT",
	TokenExit:      "EXIT",
	TokenSqrt:      "SQRT",
	TokenSin:       "SIN",
	TokenCos:       "COS",
	TokenLog:       "LOG",
	TokenTan:       "TAN",
	TokenExp:       "EXP",
	TokenPlus:      "PLUS",
	TokenMinus:     "MINUS",
	TokenPower:     "POWER",
	TokenMult:      "MULT",
	TokenDiv:       "DIV",
	TokenSemicolon: "SEMICOLON",
	TokenOpenPar:   "OPENPAR",
	TokenClosePar:  "CLOSEPAR",
	TokenEqual:     "EQUAL",
	TokenID:        "ID",
	TokenNum:       "NUM",
	TokenError:     "ERROR",
}

// String returns the name of the token type
func (t TokenType) String() string {
	if t >= 0 && int(t) < len(tokenNames) {
		return tokenNames[t]
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// IsFunction reports whether the token names a built-in function
func (t TokenType) IsFunction() bool {
	return t >= TokenSqrt && t <= TokenExp
}

// Token is a classified lexical unit. Only ID and NUM tokens carry a value.
type Token struct {
	Type  TokenType
	Value string
}

// String renders the token as TYPE or TYPE(value)
func (t Token) String() string {
	if t.Value == "" {
		return t.Type.String()
	}
	return fmt.Sprintf("%s(%s)", t.Type, t.Value)
}

type pattern struct {
	re        *regexp.Regexp
	tokenType TokenType
	hasValue  bool
}

// Order matters: keywords shadow identifiers and ** must be tried before *.
var patterns = []pattern{
	{regexp.MustCompile(`^clear\b`), TokenClear, false},
	{regexp.MustCompile(`^list\b`), TokenList, false},
	{regexp.MustCompile(`^quit\b`), TokenQuit, false},
	{regexp.MustCompile(`^exit\b`), TokenExit, false},
	{regexp.MustCompile(`^sqrt\b`), TokenSqrt, false},
	{regexp.MustCompile(`^sin\b`), TokenSin, false},
	{regexp.MustCompile(`^cos\b`), TokenCos, false},
	{regexp.MustCompile(`^log\b`), TokenLog, false},
	{regexp.MustCompile(`^tan\b`), TokenTan, false},
	{regexp.MustCompile(`^exp\b`), TokenExp, false},
	{regexp.MustCompile(`^\+`), TokenPlus, false},
	{regexp.MustCompile(`^-`), TokenMinus, false},
	{regexp.MustCompile(`^\*\*`), TokenPower, false},
	{regexp.MustCompile(`^\*`), TokenMult, false},
	{regexp.MustCompile(`^/`), TokenDiv, false},
	{regexp.MustCompile(`^;`), TokenSemicolon, false},
	{regexp.MustCompile(`^\(`), TokenOpenPar, false},
	{regexp.MustCompile(`^\)`), TokenClosePar, false},
	{regexp.MustCompile(`^=`), TokenEqual, false},
	{regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*`), TokenID, true},
	{regexp.MustCompile(`^[0-9]+(\.[0-9]*)?(e[-+]?[0-9]+)?`), TokenNum, true},
}

var identifierPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// IsIdentifier reports whether name is a valid variable name that does not
// collide with a keyword
func IsIdentifier(name string) bool {
	if !identifierPattern.MatchString(name) {
		return false
	}
	tokens := Tokenize(name)
	return len(tokens) == 2 && tokens[0].Type == TokenID
}

const historySize = 2

// Lexer produces tokens for one input line
type Lexer struct {
	words deque.Deque

	// ring buffer of the last fresh tokens; head is the next write slot
	history [historySize]Token
	head    int
	stored  int

	// number of stored tokens still to be replayed
	replay int
}

// NewLexer creates a lexer for the given line
func NewLexer(input string) *Lexer {
	l := &Lexer{words: deque.NewDeque()}
	for _, word := range strings.Fields(input) {
		l.words.PushBack(word)
	}
	return l
}

// NextToken returns the next token. Rewound tokens are replayed first. Once
// the input is exhausted every call returns an EOF token.
func (l *Lexer) NextToken() Token {
	if l.replay > 0 {
		tok := l.history[(l.head-l.replay+historySize)%historySize]
		l.replay--
		return tok
	}

	tok := l.scan()
	l.history[l.head] = tok
	l.head = (l.head + 1) % historySize
	if l.stored < historySize {
		l.stored++
	}
	return tok
}

// PrevToken steps back one token. At most two tokens can be rewound; further
// calls have no effect.
func (l *Lexer) PrevToken() {
	if l.replay < l.stored {
		l.replay++
	}
}

func (l *Lexer) scan() Token {
	if l.words.Empty() {
		return Token{Type: TokenEOF}
	}
	word := l.words.Front().(string)
	l.words.PopFront()

	for _, p := range patterns {
		match := p.re.FindString(word)
		if match == "" {
			continue
		}
		l.requeue(word[len(match):])
		tok := Token{Type: p.tokenType}
		if p.hasValue {
			tok.Value = match
		}
		return tok
	}

	// drop one character and report it
	_, size := utf8.DecodeRuneInString(word)
	l.requeue(word[size:])
	return Token{Type: TokenError}
}

func (l *Lexer) requeue(rest string) {
	if rest != "" {
		l.words.PushFront(rest)
	}
}

// Tokenize returns all tokens of input up to and including the EOF token
func Tokenize(input string) []Token {
	l := NewLexer(input)
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens
		}
	}
}
