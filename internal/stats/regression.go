package stats

import "math"

// Regression holds the result of an ordinary least-squares fit of y
// against x, including the two-sided p-value for the null hypothesis of
// zero slope.
type Regression struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	R         float64 `json:"r_value"`
	RSquared  float64 `json:"r_squared"`
	PValue    float64 `json:"p_value"`
	StdErr    float64 `json:"std_err"`
}

// Linregress computes an ordinary least-squares regression of y on x.
// Degenerate inputs (mismatched lengths, fewer than two points, constant
// x) return a zero-valued result with PValue = 1.
func Linregress(x, y []float64) Regression {
	n := len(x)
	if n != len(y) || n < 2 {
		return Regression{PValue: 1}
	}

	meanX := Mean(x)
	meanY := Mean(y)

	var ssXX, ssYY, ssXY float64
	for i := 0; i < n; i++ {
		dx := x[i] - meanX
		dy := y[i] - meanY
		ssXX += dx * dx
		ssYY += dy * dy
		ssXY += dx * dy
	}
	if ssXX == 0 {
		return Regression{PValue: 1}
	}

	slope := ssXY / ssXX
	intercept := meanY - slope*meanX

	var r float64
	if ssYY > 0 {
		r = ssXY / math.Sqrt(ssXX*ssYY)
		// Clamp rounding noise so r*r never exceeds 1.
		if r > 1 {
			r = 1
		} else if r < -1 {
			r = -1
		}
	}

	reg := Regression{
		Slope:     slope,
		Intercept: intercept,
		R:         r,
		RSquared:  r * r,
		PValue:    1,
	}

	if n > 2 {
		df := float64(n - 2)
		denom := 1 - r*r
		if denom <= 1e-15 {
			// Perfect fit: the slope is exactly determined.
			reg.PValue = 0
			return reg
		}
		t := r * math.Sqrt(df/denom)
		reg.PValue = studentTPValue(t, df)
		if t != 0 {
			reg.StdErr = slope / t
		} else {
			reg.StdErr = math.Sqrt(ssYY / df / ssXX)
		}
	}
	return reg
}

// studentTPValue returns the two-sided p-value for a t statistic with df
// degrees of freedom, via the regularized incomplete beta function.
func studentTPValue(t, df float64) float64 {
	if math.IsNaN(t) || math.IsInf(t, 0) {
		if math.IsInf(t, 0) {
			return 0
		}
		return 1
	}
	x := df / (df + t*t)
	return regIncBeta(df/2, 0.5, x)
}

// regIncBeta computes the regularized incomplete beta function I_x(a, b)
// using the continued-fraction expansion.
func regIncBeta(a, b, x float64) float64 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}
	lnBeta, _ := math.Lgamma(a + b)
	la, _ := math.Lgamma(a)
	lb, _ := math.Lgamma(b)
	lnBeta -= la + lb
	front := math.Exp(lnBeta + a*math.Log(x) + b*math.Log(1-x))

	if x < (a+1)/(a+b+2) {
		return front * betaCF(a, b, x) / a
	}
	return 1 - front*betaCF(b, a, 1-x)/b
}

// betaCF evaluates the continued fraction for the incomplete beta
// function by the modified Lentz method.
func betaCF(a, b, x float64) float64 {
	const (
		maxIter = 200
		eps     = 3e-14
		fpmin   = 1e-300
	)

	qab := a + b
	qap := a + 1
	qam := a - 1
	c := 1.0
	d := 1 - qab*x/qap
	if math.Abs(d) < fpmin {
		d = fpmin
	}
	d = 1 / d
	h := d

	for m := 1; m <= maxIter; m++ {
		fm := float64(m)
		m2 := 2 * fm

		aa := fm * (b - fm) * x / ((qam + m2) * (a + m2))
		d = 1 + aa*d
		if math.Abs(d) < fpmin {
			d = fpmin
		}
		c = 1 + aa/c
		if math.Abs(c) < fpmin {
			c = fpmin
		}
		d = 1 / d
		h *= d * c

		aa = -(a + fm) * (qab + fm) * x / ((a + m2) * (qap + m2))
		d = 1 + aa*d
		if math.Abs(d) < fpmin {
			d = fpmin
		}
		c = 1 + aa/c
		if math.Abs(c) < fpmin {
			c = fpmin
		}
		d = 1 / d
		del := d * c
		h *= del
		if math.Abs(del-1) < eps {
			break
		}
	}
	return h
}
