package types

// SessionState is everything one interactive session owns: the active
// canonical series, the appliance rule list, the scenario configuration and
// the last submitted billing form. The series and rule list are replaced
// wholesale by user actions, never partially mutated.
type SessionState struct {
	Series Series          `json:"series"`
	Rules  []ApplianceRule `json:"rules"`
	Params ScenarioParams  `json:"params"`
	Bills  []MonthlyBill   `json:"bills,omitempty"`
}

// NewSessionState returns an empty session with default scenario parameters.
func NewSessionState() SessionState {
	return SessionState{Params: DefaultScenarioParams()}
}
