package filegate

import (
	"net/http"
)

// GateFunc is one authorization or validation step in an operation's gate.
// Returning nil proceeds to the next step. Returning an error aborts the
// chain; the failure surfaces as a 403 with the error text through the error
// handler. A step may instead write its own response and return nil, which
// ends the chain silently.
type GateFunc func(w http.ResponseWriter, r *http.Request) error

type gateMode int

const (
	gateAllow gateMode = iota // zero value: no extra step, operation runs
	gateDeny
	gateSteps
	gateAlias
)

// Gate is the per-operation authorization chain: allow, deny, an ordered
// sequence of steps, or an alias to another operation's gate.
// The zero value allows unconditionally.
type Gate struct {
	mode  gateMode
	steps []GateFunc
	alias Operation
}

// Allow returns a gate that runs no extra step.
func Allow() Gate {
	return Gate{mode: gateAllow}
}

// Deny returns a gate that rejects every request with a bare 403.
// Denial never reaches the error handler.
func Deny() Gate {
	return Gate{mode: gateDeny}
}

// Steps returns a gate running the given steps in order, stopping at the
// first failure. Steps never run concurrently: each must return before the
// next starts, since later steps may depend on request mutations made by
// earlier ones.
func Steps(steps ...GateFunc) Gate {
	return Gate{mode: gateSteps, steps: steps}
}

// Alias returns a gate that reuses another operation's gate.
// For example WithGate(OpList, Alias(OpPost)) enforces identical
// authorization on listing as on upload.
func Alias(op Operation) Gate {
	return Gate{mode: gateAlias, alias: op}
}

// runGate executes the gate configured for op. It reports whether the
// operation should proceed; when false, the response has already been
// handled (denial, step failure, or a step that responded itself).
func (h *Handler) runGate(w *responseWriter, r *http.Request, s *settings, op Operation) bool {
	gate := s.gates[op]

	// Resolve alias indirection. Aliases may chain; a cycle is a
	// configuration error and the visited set bounds the walk.
	visited := map[Operation]bool{op: true}
	for gate.mode == gateAlias {
		if visited[gate.alias] {
			h.fail(w, r, ErrConfiguration.WithMessage("Gate alias cycle"))
			return false
		}
		visited[gate.alias] = true
		gate = s.gates[gate.alias]
	}

	switch gate.mode {
	case gateAllow:
		return true
	case gateDeny:
		w.WriteHeader(http.StatusForbidden)
		return false
	}

	for _, step := range gate.steps {
		if err := step(w, r); err != nil {
			h.cfg.errorHandler(w, r, http.StatusForbidden, err.Error())
			return false
		}
		// A step that wrote the response ends the chain silently.
		if w.Written() {
			return false
		}
	}
	return true
}
