// Package calc is the entry point to the calculator language.
//
// Package: calc
// Title: Pascal Calculator Interpreter
// Description: Ties lexer, parser and executor together. An Interpreter owns
//              the variable environment of one session and turns each input
//              line into output lines plus a flag telling the front end
//              whether the session continues.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation
//
// Usage:
//   interp := calc.New(calc.Options{})
//   res := interp.Execute("r = 2; PI * r ** 2")
//   for _, line := range res.Lines {
//     fmt.Println(line.Text)
//   }
//   if !res.Continue {
//     // quit or exit was entered
//   }
package calc
