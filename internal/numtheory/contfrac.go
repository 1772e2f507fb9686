package numtheory

// Convergent is one rational approximation p/q drawn from a continued
// fraction expansion.
type Convergent struct {
	P int64
	Q int64
}

// ContinuedFraction expands num/den into its continued fraction coefficients.
// den must be positive.
func ContinuedFraction(num, den int64) []int64 {
	var coeffs []int64
	for den != 0 {
		coeffs = append(coeffs, num/den)
		num, den = den, num%den
	}
	return coeffs
}

// Convergents returns the successive convergents of num/den. In Shor's
// algorithm the measured phase s/2^t is expanded this way and the convergent
// denominators are the candidate orders.
func Convergents(num, den int64) []Convergent {
	coeffs := ContinuedFraction(num, den)
	convs := make([]Convergent, 0, len(coeffs))
	pPrev, p := int64(0), int64(1)
	qPrev, q := int64(1), int64(0)
	for _, a := range coeffs {
		pPrev, p = p, a*p+pPrev
		qPrev, q = q, a*q+qPrev
		convs = append(convs, Convergent{P: p, Q: q})
	}
	return convs
}
