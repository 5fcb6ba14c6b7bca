package ohmslaw

import "electrician-pro/internal/series"

// SolveRequest is the JSON body for POST /ohms-law/series/solve and
// /ohms-law/series/validate. Values may be JSON strings or numbers; empty
// strings mean unknown.
type SolveRequest struct {
	Components []series.Record `json:"components"`
	Totals     series.Record   `json:"totals"`
}

// SolveResponse is the JSON response for a successful solve.
type SolveResponse struct {
	Components []series.Record `json:"components"`
	Totals     series.Record   `json:"totals"`
	Passes     int             `json:"passes"`
	Converged  bool            `json:"converged"`
}

// ValidateResponse is the JSON response for a circuit without conflicts.
type ValidateResponse struct {
	Valid bool `json:"valid"`
}

// Conflict is one component current that disagrees with the circuit total.
// Component is one-based, as shown to users.
type Conflict struct {
	Component        int    `json:"component"`
	ComponentCurrent string `json:"component_current"`
	TotalCurrent     string `json:"total_current"`
}

// ConflictResponse is the 409 body.
type ConflictResponse struct {
	Error     string     `json:"error"`
	Conflicts []Conflict `json:"conflicts"`
}
