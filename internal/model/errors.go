package model

import "errors"

// Error taxonomy shared by the selection algorithms and the API layer.
// All three are reportable outcomes, not process faults; callers are expected
// to match with errors.Is and translate into their own surface (exit codes,
// HTTP error payloads, CSV status columns).
var (
	// ErrInfeasibleScenario means no fleet of the requested shape can satisfy
	// the hard constraints (for example a required fuel type with zero
	// candidate vessels).
	ErrInfeasibleScenario = errors.New("infeasible scenario")

	// ErrConstraintUnsatisfied is returned by the greedy selector when the
	// fleet it produced violates a constraint the heuristic does not actively
	// enforce (the safety floor is only checked after filling). It is distinct
	// from ErrInfeasibleScenario so callers know to fall back to the exact
	// optimizer rather than give up.
	ErrConstraintUnsatisfied = errors.New("constraint unsatisfied")

	// ErrMalformedInput means the vessel table or scenario is invalid
	// (non-positive DWT, negative cost, duplicate ids, unknown fuel type).
	// Raised before any search begins.
	ErrMalformedInput = errors.New("malformed input")
)
