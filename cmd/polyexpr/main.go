// Polyexpr is a compiler and evaluator for mathematical expressions.
//
// It parses infix expressions into trees and provides:
//   - Evaluation in float64, exact rational, complex, and logic domains
//   - Constant folding and implicit multiplication
//   - Infix, LaTeX, and parse-tree rendering
//   - Symbolic differentiation
//   - YAML pricing-rule tables with hot reload
//
// Usage:
//
//	# Evaluate an expression
//	polyexpr eval --var x=3 "2x^2 + 1"
//
//	# Exact rational arithmetic
//	polyexpr eval --domain rational "1/3 + 1/6"
//
//	# Render LaTeX
//	polyexpr render --format latex "sqrt(x^2 + 1)"
//
//	# Differentiate
//	polyexpr derive --wrt x "x sin(x)"
//
//	# Price an order against a rule table
//	polyexpr quote rules.yaml bulk --var price=4 --var qty=12
//
//	# Start an interactive session
//	polyexpr repl --domain logic
package main

func main() {
	Execute()
}
