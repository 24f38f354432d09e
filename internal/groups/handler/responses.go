package handler

import (
	"cayley/internal/algebra"
)

// StepResponse is one row of a composition trace.
type StepResponse struct {
	Step         int    `json:"step"`
	Value        string `json:"value"`
	DisplayValue string `json:"displayValue"`
	Left         string `json:"left,omitempty"`
	Right        string `json:"right,omitempty"`
	Error        bool   `json:"error,omitempty"`
}

// ComposeResponse is the body for POST /api/groups/{id}/compose.
type ComposeResponse struct {
	Steps        []StepResponse `json:"steps"`
	Final        string         `json:"final"`
	DisplayFinal string         `json:"displayFinal"`
	State        string         `json:"state"`
}

// FromTrace converts a trace, adding superscript display labels.
func FromTrace(t *algebra.Trace) *ComposeResponse {
	steps := make([]StepResponse, len(t.Steps))
	for i, st := range t.Steps {
		steps[i] = StepResponse{
			Step:         st.Step,
			Value:        st.Value,
			DisplayValue: algebra.FormatLabel(st.Value),
			Left:         st.Left,
			Right:        st.Right,
			Error:        st.Error,
		}
	}
	return &ComposeResponse{
		Steps:        steps,
		Final:        t.Final,
		DisplayFinal: algebra.FormatLabel(t.Final),
		State:        string(t.State),
	}
}
