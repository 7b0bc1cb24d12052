// Package similarity compares adoption dynamics between capacity series
// and projects one series forward from another's history.
//
// [Cosine] measures the angle between two series' acceleration vectors.
// Acceleration strips the slow-moving trend from a cumulative series, so
// cosine similarity on acceleration isolates comparable burst dynamics
// between series of otherwise very different scale.
//
// [Predict] uses that similarity as a coupling coefficient: it copies the
// target, discards its second half, and regrows it by accumulating the
// donor's local capacity derivative scaled by 2*coeff². Non-finite
// intermediate values saturate to zero and every step is clamped to
// ±1e9, so prediction never produces NaN or Inf.
package similarity
