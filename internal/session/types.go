package session

import "neon-calculator/internal/calculator"

// PressRequest is the JSON body for POST /sessions/{id}/press.
type PressRequest struct {
	Button string `json:"button"`
}

// SequenceRequest is the JSON body for POST /sessions/{id}/sequence.
type SequenceRequest struct {
	Buttons []string `json:"buttons"`
}

// SessionResponse is the calculator state as seen by a client.
type SessionResponse struct {
	ID              string   `json:"id"`
	Display         string   `json:"display"`
	PendingOperand  *float64 `json:"pending_operand,omitempty"`
	PendingOperator string   `json:"pending_operator,omitempty"`
	Typing          bool     `json:"typing"`
	Sentinel        bool     `json:"sentinel"` // display is ∞ and not a number
	History         []string `json:"history"`
}

// PressResponse is the JSON response for POST /sessions/{id}/press.
type PressResponse struct {
	Button  string          `json:"button"`
	Outcome string          `json:"outcome"`
	Session SessionResponse `json:"session"`
}

// StepResult records one press of a sequence.
type StepResult struct {
	Button  string `json:"button"`
	Outcome string `json:"outcome"`
	Display string `json:"display"`
}

// SequenceResponse is the JSON response for POST /sessions/{id}/sequence.
type SequenceResponse struct {
	Steps   []StepResult    `json:"steps"`
	Session SessionResponse `json:"session"`
}

func newSessionResponse(id string, st calculator.State) SessionResponse {
	return SessionResponse{
		ID:              id,
		Display:         st.Display,
		PendingOperand:  st.PendingOperand,
		PendingOperator: string(st.PendingOperator),
		Typing:          st.Typing,
		Sentinel:        st.Sentinel,
		History:         st.History,
	}
}
