package trace

// TraceLevel controls the verbosity of run tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelCustomers captures one record per served customer and per grant.
	TraceLevelCustomers TraceLevel = "customers"
	// TraceLevelEvents additionally captures every executed event.
	TraceLevelEvents TraceLevel = "events"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:      true,
	TraceLevelCustomers: true,
	TraceLevelEvents:    true,
	"":                  true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// SimulationTrace collects records during a single run.
type SimulationTrace struct {
	Config    TraceConfig
	Customers []CustomerRecord
	Grants    []GrantRecord
	Events    []EventRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config:    config,
		Customers: make([]CustomerRecord, 0),
		Grants:    make([]GrantRecord, 0),
		Events:    make([]EventRecord, 0),
	}
}

// CapturesCustomers reports whether customer and grant records are kept.
func (st *SimulationTrace) CapturesCustomers() bool {
	return st.Config.Level == TraceLevelCustomers || st.Config.Level == TraceLevelEvents
}

// CapturesEvents reports whether every executed event is kept.
func (st *SimulationTrace) CapturesEvents() bool {
	return st.Config.Level == TraceLevelEvents
}

// RecordCustomer appends a served-customer record.
func (st *SimulationTrace) RecordCustomer(record CustomerRecord) {
	st.Customers = append(st.Customers, record)
}

// RecordGrant appends a grant record.
func (st *SimulationTrace) RecordGrant(record GrantRecord) {
	if !st.CapturesCustomers() {
		return
	}
	st.Grants = append(st.Grants, record)
}

// RecordEvent appends an executed-event record.
func (st *SimulationTrace) RecordEvent(record EventRecord) {
	st.Events = append(st.Events, record)
}
