// Package numeric provides a single Value type over three numeric
// representations and the operations that combine them.
//
// A Value is DOUBLE (IEEE-754 float64), DECIMAL (arbitrary precision,
// backed by github.com/cockroachdb/apd) or COMPLEX (complex128). Binary
// operations on a Dispatcher promote both operands to the higher kind in
// the order DOUBLE < DECIMAL < COMPLEX and hand the work to that kind's
// Backend:
//
//	d := numeric.DefaultDispatcher()
//	a := numeric.MustDecimal("3.50")
//	b := numeric.MustDecimal("1.25")
//	sum, _ := d.Add(a, b) // DECIMAL 4.75
//
// DECIMAL results are rounded to the dispatcher Policy (20 significant
// digits, HALF_UP by default). Raising a negative real to a fractional power
// is the one case that promotes to COMPLEX on its own.
//
// Conversions that only lose precision return a *PrecisionLossWarning next
// to the result. Dropping a non-zero imaginary part is refused with
// *LossyConversionError unless ConvertLossy is used.
package numeric
