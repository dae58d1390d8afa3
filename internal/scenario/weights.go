package scenario

import (
	"math"
	"math/rand"
)

// LogNormal models a right-skewed parcel weight distribution.
// If X ~ LogNormal(mu, sigma), then ln(X) ~ Normal(mu, sigma).
type LogNormal struct {
	Mu    float64 // Mean of ln(X)
	Sigma float64 // Std dev of ln(X)
}

// NewLogNormal derives the distribution whose samples have the given mean
// and standard deviation of X itself, not of ln(X).
func NewLogNormal(mean, std float64) LogNormal {
	if mean <= 0 || std < 0 {
		return LogNormal{}
	}
	variance := std * std
	sigma2 := math.Log(1 + variance/(mean*mean))
	return LogNormal{
		Mu:    math.Log(mean) - sigma2/2,
		Sigma: math.Sqrt(sigma2),
	}
}

// Mean returns E[X].
func (d LogNormal) Mean() float64 {
	return math.Exp(d.Mu + d.Sigma*d.Sigma/2)
}

// Median returns the 50th percentile, which sits below the mean whenever
// the distribution is skewed.
func (d LogNormal) Median() float64 {
	return math.Exp(d.Mu)
}

// Std returns the standard deviation of X.
func (d LogNormal) Std() float64 {
	sigma2 := d.Sigma * d.Sigma
	return math.Sqrt(math.Exp(2*d.Mu+sigma2) * (math.Exp(sigma2) - 1))
}

// Sample draws one value.
func (d LogNormal) Sample(rng *rand.Rand) float64 {
	return math.Exp(rng.NormFloat64()*d.Sigma + d.Mu)
}
