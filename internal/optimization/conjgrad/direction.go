package conjgrad

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// steepestDescent resets the search direction to -g. The initial line-search
// step after a restart is 1 because the fresh direction is unrelated to the
// previous one, so nothing useful can be derived from the previous step.
func (m *minimizer) steepestDescent() {
	copy(m.d, m.g)
	floats.Scale(-1, m.d)
	m.gd = floats.Dot(m.g, m.d)
	m.step = 1
	m.sinceRestart = 0
}

// nextDirection computes the conjugate direction for the next iteration,
//
//	d_{k+1} = -g_{k+1} + β_k·d_k,
//
// restarting to steepest descent when β_k is clamped to zero, when the
// conjugate direction fails to be a descent direction, or after n iterations
// without a restart to bound accumulated rounding error. It also sets the
// initial step guess for the next line search by scaling the accepted step
// with the ratio of the successive directional derivatives, which keeps the
// first trial close to the previous minimizer along the new direction.
func (m *minimizer) nextDirection() {
	m.sinceRestart++
	restart := m.sinceRestart >= m.n

	beta := betaPolakRibiere(m.g, m.gPrev)
	if beta == 0 {
		restart = true
	}
	if !restart {
		gdOld := m.gd
		floats.Scale(beta, m.d)
		floats.Sub(m.d, m.g)
		m.gd = floats.Dot(m.g, m.d)
		if m.gd >= 0 {
			m.steepestDescent()
			return
		}
		guess := m.step * gdOld / m.gd
		if math.IsNaN(guess) || guess <= m.cfg.MinStep || guess > m.cfg.MaxStep {
			guess = 1
		}
		m.step = guess
		return
	}
	m.steepestDescent()
}

// betaPolakRibiere computes the Polak–Ribière scaling parameter
//
//	β_k = max(0, g_{k+1}·(g_{k+1} - g_k) / |g_k|²).
//
// The clamp at zero forces a steepest-descent restart whenever the raw value
// is negative, which guarantees the conjugate update cannot turn the
// direction uphill.
func betaPolakRibiere(g, gPrev []float64) float64 {
	norm := floats.Norm(g, 2)
	dot := floats.Dot(g, gPrev)
	prevNorm := floats.Norm(gPrev, 2)
	beta := (norm*norm - dot) / (prevNorm * prevNorm)
	return math.Max(0, beta)
}
