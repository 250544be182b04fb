package ports

// DistributionPort provides the cumulative distribution functions and
// quantile (inverse CDF) functions the calculators depend on. The functions
// are treated as an external numerical-library collaborator so the core
// packages never bind directly to a specific implementation.
type DistributionPort interface {
	// NormalCDF returns P(Z <= x) for the standard normal distribution.
	NormalCDF(x float64) float64

	// NormalQuantile returns the standard normal quantile for p in (0, 1).
	NormalQuantile(p float64) float64

	// TCDF returns P(T <= x) for Student's t with df degrees of freedom.
	TCDF(x float64, df float64) float64

	// TQuantile returns the Student-t quantile for p in (0, 1) with df
	// degrees of freedom.
	TQuantile(p float64, df float64) float64

	// ChiSquareCDF returns P(X <= x) for the chi-square distribution with
	// df degrees of freedom.
	ChiSquareCDF(x float64, df float64) float64
}
