// Package polyexpr compiles written-out math into expression trees and
// evaluates those trees under interchangeable arithmetic domains.
//
// The syntax is intended to be close to math you'd write in your notes.
// "2x y" is a multiplication of three terms when implicit multiplication
// is on, "-2^2^n" is "-(2^(2^n))", and "5!" is a factorial. A logic
// profile of the lexer adds relational and boolean operators plus an
// IF/THEN/ELSE conditional for rule formulas.
//
// Parsing and evaluation are separate steps. Parse builds a tree once,
// folding constant subexpressions as it goes when simplification is on;
// the evaluators then walk that tree for as many variable bindings as
// needed. Four evaluators ship with the package: float64, exact
// rational, complex128, and a hybrid numeric/boolean one for the logic
// profile. Subpackages render trees back to text or LaTeX, differentiate
// them symbolically, and run YAML rule tables for price quoting.
package polyexpr
