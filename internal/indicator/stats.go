package indicator

import "math"

// mean averages the defined values in xs, ignoring NaN. NaN on empty input.
func mean(xs []float64) float64 {
	sum, n := 0.0, 0
	for _, x := range xs {
		if math.IsNaN(x) {
			continue
		}
		sum += x
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

// stddev is the sample standard deviation of the defined values in xs.
func stddev(xs []float64) float64 {
	m := mean(xs)
	if math.IsNaN(m) {
		return math.NaN()
	}
	sum, n := 0.0, 0
	for _, x := range xs {
		if math.IsNaN(x) {
			continue
		}
		d := x - m
		sum += d * d
		n++
	}
	if n < 2 {
		return math.NaN()
	}
	return math.Sqrt(sum / float64(n-1))
}

// autocorrLag1 is the correlation of xs with itself shifted by one index,
// over pairs where both values are defined. In efficient markets it sits
// near zero; positive values hint at momentum, negative at mean reversion.
func autocorrLag1(xs []float64) float64 {
	var a, b []float64
	for i := 1; i < len(xs); i++ {
		if math.IsNaN(xs[i]) || math.IsNaN(xs[i-1]) {
			continue
		}
		a = append(a, xs[i])
		b = append(b, xs[i-1])
	}
	return correlation(a, b)
}

// correlation is the Pearson correlation of two equal-length samples.
func correlation(a, b []float64) float64 {
	if len(a) != len(b) || len(a) < 2 {
		return math.NaN()
	}
	ma, mb := mean(a), mean(b)
	var cov, va, vb float64
	for i := range a {
		da, db := a[i]-ma, b[i]-mb
		cov += da * db
		va += da * da
		vb += db * db
	}
	if va == 0 || vb == 0 {
		return math.NaN()
	}
	return cov / math.Sqrt(va*vb)
}
