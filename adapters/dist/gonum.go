package dist

import (
	"gonum.org/v1/gonum/stat/distuv"

	"statlab/ports"
)

// GonumDistributions implements ports.DistributionPort on top of
// gonum's distuv package. This centralizes all CDF/quantile access so no
// calculator carries its own distribution approximations.
type GonumDistributions struct{}

// NewGonumDistributions creates the distuv-backed distribution adapter
func NewGonumDistributions() *GonumDistributions {
	return &GonumDistributions{}
}

var _ ports.DistributionPort = (*GonumDistributions)(nil)

// NormalCDF computes the cumulative distribution function for the standard normal
func (g *GonumDistributions) NormalCDF(x float64) float64 {
	return distuv.UnitNormal.CDF(x)
}

// NormalQuantile computes the quantile function for the standard normal (inverse CDF)
func (g *GonumDistributions) NormalQuantile(p float64) float64 {
	return distuv.UnitNormal.Quantile(p)
}

// TCDF computes the cumulative distribution function for Student's t
func (g *GonumDistributions) TCDF(x float64, df float64) float64 {
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	return tDist.CDF(x)
}

// TQuantile computes the quantile function for Student's t
func (g *GonumDistributions) TQuantile(p float64, df float64) float64 {
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	return tDist.Quantile(p)
}

// ChiSquareCDF computes the cumulative distribution function for chi-square
func (g *GonumDistributions) ChiSquareCDF(x float64, df float64) float64 {
	chiDist := distuv.ChiSquared{K: df}
	return chiDist.CDF(x)
}
