package forecast

import (
	"fmt"
	"math/cmplx"

	"sales-forecast/src/analysis/core"
	"sales-forecast/src/helpers"
	"sales-forecast/src/models"

	"gonum.org/v1/gonum/mat"
)

// DefaultOrder is ARIMA(5,1,0).
var DefaultOrder = models.MModelOrder{P: 5, D: 1, Q: 0}

// Lagged designs worse conditioned than this are treated as singular.
const maxCondition = 1e12

// -----------------------------------------------------------------------------

// Estimator fits a model of the given order to a positional series.
type Estimator interface {
	Fit(values []float64, order models.MModelOrder) (FittedModel, error)
}

// FittedModel produces point forecasts for the periods after the fitted data.
type FittedModel interface {
	Forecast(h int) []float64
	Coefficients() []float64
	Sigma2() float64
}

// -----------------------------------------------------------------------------

// MinObservations is the shortest series an order can be fitted to: p+d+1
// points, and enough for the regression to have twice as many rows as
// coefficients so the residual variance is estimated from real residuals.
func MinObservations(order models.MModelOrder) int {
	return max(order.P+order.D+1, 3*order.P+order.D)
}

// -----------------------------------------------------------------------------

// LeastSquaresEstimator fits ARIMA(p,d,0) by conditional least squares: the
// series is differenced d times and each differenced value is regressed,
// without intercept, on its p predecessors.
type LeastSquaresEstimator struct{}

func (LeastSquaresEstimator) Fit(values []float64, order models.MModelOrder) (FittedModel, error) {
	if order.P < 0 || order.D < 0 {
		return nil, fmt.Errorf("invalid model order (%d,%d,%d)", order.P, order.D, order.Q)
	}
	if order.Q != 0 {
		return nil, fmt.Errorf("moving-average order q=%d is not supported", order.Q)
	}

	n := len(values)
	if required := MinObservations(order); n < required {
		return nil, helpers.NewInsufficientDataError(n, required)
	}
	if !core.AllFinite(values) {
		return nil, helpers.NewNonConvergentError("series contains non-finite values", nil)
	}

	diffs, tails := core.Difference(values, order.D)
	model := &arModel{
		p:     order.P,
		diffs: diffs,
		tails: tails,
		phi:   []float64{},
	}

	if order.P == 0 {
		ss := 0.0
		for _, v := range diffs {
			ss += v * v
		}
		model.sigma2 = ss / float64(len(diffs))
		return model, nil
	}

	// Lagged design: row i explains diffs[p+i] by diffs[p+i-1] ... diffs[i]
	rows := len(diffs) - order.P
	design := mat.NewDense(rows, order.P, nil)
	target := mat.NewVecDense(rows, nil)
	for i := 0; i < rows; i++ {
		t := order.P + i
		target.SetVec(i, diffs[t])
		for j := 0; j < order.P; j++ {
			design.Set(i, j, diffs[t-1-j])
		}
	}

	if cond := mat.Cond(design, 2); !(cond <= maxCondition) {
		return nil, helpers.NewNonConvergentError(fmt.Sprintf("autoregressive system is singular (condition %g)", cond), nil)
	}

	var phi mat.VecDense
	if err := phi.SolveVec(design, target); err != nil {
		return nil, helpers.NewNonConvergentError("autoregressive system is singular", err)
	}

	coeffs := make([]float64, order.P)
	for j := range coeffs {
		coeffs[j] = phi.AtVec(j)
	}
	if !core.AllFinite(coeffs) {
		return nil, helpers.NewNonConvergentError("autoregressive coefficients are not finite", nil)
	}
	if err := checkStationary(coeffs); err != nil {
		return nil, err
	}

	var fitted, resid mat.VecDense
	fitted.MulVec(design, &phi)
	resid.SubVec(target, &fitted)

	model.phi = coeffs
	model.sigma2 = mat.Dot(&resid, &resid) / float64(rows)
	return model, nil
}

// -----------------------------------------------------------------------------

// checkStationary rejects coefficients whose companion matrix has an
// eigenvalue on or outside the unit circle; their forecasts explode.
func checkStationary(phi []float64) error {
	p := len(phi)
	companion := mat.NewDense(p, p, nil)
	for j, c := range phi {
		companion.Set(0, j, c)
	}
	for i := 1; i < p; i++ {
		companion.Set(i, i-1, 1)
	}

	var eig mat.Eigen
	if ok := eig.Factorize(companion, mat.EigenNone); !ok {
		return helpers.NewNonConvergentError("eigen decomposition of the autoregressive polynomial failed", nil)
	}
	for _, root := range eig.Values(nil) {
		if modulus := cmplx.Abs(root); !(modulus < 1) {
			return helpers.NewNonConvergentError(fmt.Sprintf("autoregressive coefficients are not stationary (root modulus %.3f)", modulus), nil)
		}
	}
	return nil
}

// -----------------------------------------------------------------------------

type arModel struct {
	p      int
	phi    []float64
	diffs  []float64
	tails  []float64
	sigma2 float64
}

func (m *arModel) Coefficients() []float64 {
	out := make([]float64, len(m.phi))
	copy(out, m.phi)
	return out
}

func (m *arModel) Sigma2() float64 { return m.sigma2 }

// Forecast iterates the AR recursion on the differenced scale, feeding
// predictions back as lags, then integrates back to the original scale.
func (m *arModel) Forecast(h int) []float64 {
	if h <= 0 {
		return []float64{}
	}

	history := make([]float64, len(m.diffs), len(m.diffs)+h)
	copy(history, m.diffs)

	preds := make([]float64, h)
	for step := 0; step < h; step++ {
		next := 0.0
		for j, coef := range m.phi {
			next += coef * history[len(history)-1-j]
		}
		history = append(history, next)
		preds[step] = next
	}

	return core.Integrate(preds, m.tails)
}
