// sim/simulator.go
package sim

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/prb-sim/prb-sim/sim/trace"
)

// ClockState is the lifecycle state of a Simulator.
type ClockState string

const (
	ClockIdle       ClockState = "idle"
	ClockRunning    ClockState = "running"
	ClockTerminated ClockState = "terminated"
)

// TerminationReason records why a run stopped.
type TerminationReason string

const (
	ReasonNone         TerminationReason = ""
	ReasonStepBudget   TerminationReason = "step-budget"
	ReasonAllFlowsDone TerminationReason = "all-flows-completed"
	ReasonCancelled    TerminationReason = "cancelled"
)

// StepObserver receives every step's record as soon as the step completes.
type StepObserver func(StepRecord)

// Simulator is the clock that drives a BaseStation through its steps.
type Simulator struct {
	Station  *BaseStation
	MaxSteps int64
	State    ClockState
	Reason   TerminationReason

	// RNG is nil when the simulator was built around a caller-supplied source.
	RNG *PartitionedRNG

	observers []StepObserver
}

// NewSimulator builds a station from cfg and seeds traffic generation from cfg.Seed.
func NewSimulator(cfg SimConfig) (*Simulator, error) {
	rng := NewPartitionedRNG(NewSimulationKey(cfg.Seed))
	s, err := NewSimulatorWithSource(cfg, rng.ForSubsystem(SubsystemTraffic))
	if err != nil {
		return nil, err
	}
	s.RNG = rng
	return s, nil
}

// NewSimulatorWithSource builds a station from cfg whose packet generation
// draws from src. cfg.Seed is ignored.
func NewSimulatorWithSource(cfg SimConfig, src RandSource) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	bs, err := NewBaseStation(cfg.StationConfig, cfg.PolicyConfig, src)
	if err != nil {
		return nil, err
	}
	for _, spec := range cfg.Flows {
		if _, err := bs.AddFlow(spec); err != nil {
			return nil, err
		}
	}
	if trace.TraceLevel(cfg.TraceLevel) == trace.TraceLevelDecisions {
		bs.EnableTrace()
	}
	return &Simulator{
		Station:  bs,
		MaxSteps: cfg.MaxSteps,
		State:    ClockIdle,
	}, nil
}

// Observe registers fn to be called after every step.
func (sim *Simulator) Observe(fn StepObserver) {
	sim.observers = append(sim.observers, fn)
}

// done reports whether the run must stop before another step, and why.
func (sim *Simulator) done() (bool, TerminationReason) {
	if sim.Station.AllCompleted() {
		return true, ReasonAllFlowsDone
	}
	if sim.Station.Clock >= sim.MaxSteps {
		return true, ReasonStepBudget
	}
	return false, ReasonNone
}

// Step executes a single step. It returns false without stepping once the run
// is over (all flows completed or step budget spent).
func (sim *Simulator) Step() (StepRecord, bool) {
	if sim.State == ClockTerminated {
		return StepRecord{}, false
	}
	if stop, reason := sim.done(); stop {
		sim.terminate(reason)
		return StepRecord{}, false
	}
	sim.State = ClockRunning
	rec := sim.Station.Step()
	for _, fn := range sim.observers {
		fn(rec)
	}
	return rec, true
}

// Run steps until every flow completes, the step budget is spent, or ctx is
// cancelled. ctx is checked once per step boundary; on cancellation the run
// terminates and ctx.Err() is returned.
func (sim *Simulator) Run(ctx context.Context) error {
	if sim.State == ClockTerminated {
		return fmt.Errorf("simulator already terminated (%s)", sim.Reason)
	}
	logrus.Infof("Starting simulation: %d flows, %d queues, %d PRBs, budget %d steps",
		len(sim.Station.Flows()), len(sim.Station.Queues), sim.Station.TotalPRBs, sim.MaxSteps)
	for {
		if err := ctx.Err(); err != nil {
			sim.terminate(ReasonCancelled)
			return err
		}
		if _, ok := sim.Step(); !ok {
			break
		}
	}
	return nil
}

func (sim *Simulator) terminate(reason TerminationReason) {
	sim.State = ClockTerminated
	sim.Reason = reason
	sim.Station.Metrics.PendingFlows = len(sim.Station.Pending())
	if reason == ReasonStepBudget && sim.Station.Metrics.PendingFlows > 0 {
		logrus.Warnf("step budget of %d exhausted with %d flows pending", sim.MaxSteps, sim.Station.Metrics.PendingFlows)
	}
	logrus.Infof("[step %05d] Simulation ended: %s", sim.Station.Clock, reason)
}
