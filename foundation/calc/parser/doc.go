// Package parser implements the lexical and syntactic analysis of calculator
// input lines.
//
// Package: parser
// Title: Calculator Lexer and Parser
// Description: The lexer splits a line into whitespace separated words and
//              matches each word against an ordered pattern table, requeuing
//              the unmatched rest of the word. It keeps the last two tokens so
//              the parser can rewind up to two tokens. The parser is a
//              recursive descent parser with one procedure per nonterminal.
//              Binary operator tails are folded into the right operand, so all
//              binary operators associate to the right: 10-3-2 is 10-(3-2).
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation
//
// Grammar:
//   program   -> stmt ( ';' stmt )* EOF
//   stmt      -> 'clear' ID | 'list' | 'quit' | 'exit' | ID '=' expr | expr | <empty>
//   expr      -> term  ( (+|-) term )*
//   term      -> pow   ( (*|/) pow  )*
//   pow       -> factor ( ** factor )*
//   factor    -> ID | NUM | '(' expr ')' | '-' expr | FUNC '(' expr ')'
//
// Usage:
//   p := parser.New(parser.Options{})
//   chain, err := p.Parse("x = 2 ** 3; x / 4")
//   if err != nil {
//     var pe *parser.ParseError
//     errors.As(err, &pe)
//   }
package parser
