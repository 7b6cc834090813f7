// Package common holds the helpers shared by the math provider modules:
// parameter extraction, result envelopes and the numeric dispatcher each
// module computes with.
//
// Every tool accepts a "kind" parameter (double, decimal or complex) that
// selects how its numeric parameters are parsed. Numbers may arrive as JSON
// numbers or as strings; strings keep full decimal precision.
//
// Failures carry an "error_type" entry in Result.Data naming the numeric
// error class (DivisionByZeroError, ParseError, ...), so callers can branch
// without parsing messages.
//
// Example Usage:
//
//	ops := common.NewMathOps(numeric.DefaultDispatcher(), numeric.KindDecimal)
//	arithmetic := &operations.ArithmeticOps{MathOps: ops}
//	result, err := arithmetic.Add(ctx, params, appCtx)
package common
