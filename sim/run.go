package sim

import (
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/atmsim/atmsim/sim/trace"
)

// RunConfig groups the parameters of a single run.
type RunConfig struct {
	Servers             int     `yaml:"servers" json:"servers"`                             // number of identical servers (must be > 0)
	MeanServiceTime     float64 `yaml:"mean_service_time" json:"mean_service_time"`         // mean of the exponential service time (must be > 0)
	MeanArrivalInterval float64 `yaml:"mean_arrival_interval" json:"mean_arrival_interval"` // mean of the exponential inter-arrival time (must be > 0)
	Horizon             float64 `yaml:"horizon" json:"horizon"`                             // stop time (must be > 0)
	// Seed fixes the random streams. Nil means a fresh, time-derived seed.
	Seed       *int64           `yaml:"seed,omitempty" json:"seed,omitempty"`
	TraceLevel trace.TraceLevel `yaml:"trace,omitempty" json:"trace,omitempty"`
}

// Validate checks that every parameter is in range.
// All failures wrap ErrInvalidParameter.
func (c RunConfig) Validate() error {
	if c.Servers <= 0 {
		return fmt.Errorf("%w: servers must be positive, got %d", ErrInvalidParameter, c.Servers)
	}
	if !positiveFinite(c.MeanServiceTime) {
		return fmt.Errorf("%w: mean service time must be positive, got %v", ErrInvalidParameter, c.MeanServiceTime)
	}
	if !positiveFinite(c.MeanArrivalInterval) {
		return fmt.Errorf("%w: mean arrival interval must be positive, got %v", ErrInvalidParameter, c.MeanArrivalInterval)
	}
	if !positiveFinite(c.Horizon) {
		return fmt.Errorf("%w: horizon must be positive, got %v", ErrInvalidParameter, c.Horizon)
	}
	if !trace.IsValidTraceLevel(string(c.TraceLevel)) {
		return fmt.Errorf("%w: unknown trace level %q", ErrInvalidParameter, c.TraceLevel)
	}
	return nil
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// Result is the reduced output of one run.
type Result struct {
	AverageWait  float64 `json:"average_wait"`
	PeakWait     float64 `json:"peak_wait"`
	P50Wait      float64 `json:"p50_wait"`
	P95Wait      float64 `json:"p95_wait"`
	Arrivals     int     `json:"arrivals"`
	Served       int     `json:"served"`
	Completed    int     `json:"completed"`
	StillQueued  int     `json:"still_queued"` // requests never granted before the horizon
	InService    int     `json:"in_service"`   // servers still held at the horizon
	PeakQueueLen int     `json:"peak_queue_len"`
	Utilization  float64 `json:"utilization"`
	SimEndedTime float64 `json:"sim_ended_time"`
	Seed         int64   `json:"seed"`

	Trace *trace.SimulationTrace `json:"-"`
}

// Model is one fully wired run: a Simulator, one server pool and one arrival stream.
// Build it with NewModel, then call Run once.
type Model struct {
	Config  RunConfig
	Sim     *Simulator
	Pool    *ResourcePool
	Metrics *Metrics
	Streams *Streams
	Trace   *trace.SimulationTrace
}

// NewModel validates cfg and builds the simulation state. Nothing is built
// when validation fails.
func NewModel(cfg RunConfig) (*Model, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var seed int64
	if cfg.Seed != nil {
		seed = *cfg.Seed
	} else {
		seed = time.Now().UnixNano()
		logrus.Debugf("no seed given, using %d", seed)
	}

	pool, err := NewResourcePool("atm", cfg.Servers)
	if err != nil {
		return nil, err
	}
	interarrival, err := NewExponentialSampler(cfg.MeanArrivalInterval)
	if err != nil {
		return nil, err
	}
	service, err := NewExponentialSampler(cfg.MeanServiceTime)
	if err != nil {
		return nil, err
	}

	m := &Model{
		Config:  cfg,
		Sim:     NewSimulator(),
		Pool:    pool,
		Metrics: NewMetrics(),
		Streams: NewStreams(seed),
	}
	if cfg.TraceLevel != "" && cfg.TraceLevel != trace.TraceLevelNone {
		m.Trace = trace.NewSimulationTrace(trace.TraceConfig{Level: cfg.TraceLevel})
		m.Sim.Trace = m.Trace
		pool.OnGrant = func(t *Ticket) {
			m.Trace.RecordGrant(trace.GrantRecord{
				TicketID:    t.ID,
				RequestedAt: t.RequestedAt,
				GrantedAt:   t.GrantedAt,
				InUse:       pool.InUse(),
				Capacity:    pool.Capacity(),
			})
		}
	}

	gen := NewArrivalGenerator(pool, interarrival, service, m.Streams, m.Metrics).WithTrace(m.Trace)
	m.Sim.Spawn("arrivals", gen)
	return m, nil
}

// Run executes the model until the horizon and reduces the wait sample.
func (m *Model) Run() (*Result, error) {
	if err := m.Sim.RunUntil(m.Config.Horizon); err != nil {
		return nil, fmt.Errorf("run aborted at t=%v: %w", m.Sim.Now(), err)
	}
	res := &Result{
		AverageWait:  m.Metrics.AverageWait(),
		PeakWait:     m.Metrics.PeakWait(),
		P50Wait:      m.Metrics.WaitPercentile(50),
		P95Wait:      m.Metrics.WaitPercentile(95),
		Arrivals:     m.Metrics.Arrivals,
		Served:       m.Metrics.Served(),
		Completed:    m.Metrics.Completed,
		StillQueued:  m.Pool.QueueLen(),
		InService:    m.Pool.InUse(),
		PeakQueueLen: m.Pool.PeakQueueLen(),
		Utilization:  m.Pool.Utilization(m.Sim.Now()),
		SimEndedTime: m.Sim.Now(),
		Seed:         m.Streams.Seed,
		Trace:        m.Trace,
	}
	logrus.Infof("run servers=%d service=%.2f interval=%.2f horizon=%.1f: avg wait %.4f, peak wait %.4f over %d served",
		m.Config.Servers, m.Config.MeanServiceTime, m.Config.MeanArrivalInterval, m.Config.Horizon,
		res.AverageWait, res.PeakWait, res.Served)
	return res, nil
}

// Run builds and executes a single run. A failed run returns no result.
func Run(cfg RunConfig) (*Result, error) {
	m, err := NewModel(cfg)
	if err != nil {
		return nil, err
	}
	return m.Run()
}
