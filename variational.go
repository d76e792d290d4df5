package qkernel

import (
	"fmt"
	"math"
)

// MaxIterations bounds every variational run.
const MaxIterations = 100

// Phase is the lifecycle stage of a variational run.
type Phase int

const (
	NotStarted Phase = iota
	Running
	Succeeded
	Failed
)

func (p Phase) String() string {
	switch p {
	case NotStarted:
		return "not_started"
	case Running:
		return "running"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

/*
RunStatus is the state machine of a run:
NotStarted → Running(iteration) → Succeeded | Failed(err).
*/
type RunStatus struct {
	Phase     Phase
	Iteration int
	Err       error
}

func (s RunStatus) Done() bool {
	return s.Phase == Succeeded || s.Phase == Failed
}

// TracePoint is one (iteration, value) sample of a convergence trace.
type TracePoint struct {
	Iteration int     `json:"iteration"`
	Value     float64 `json:"value"`
}

// Trace is ordered by strictly increasing iteration.
type Trace []TracePoint

// Values returns the bare series for plotting.
func (t Trace) Values() []float64 {
	out := make([]float64, len(t))
	for i, p := range t {
		out[i] = p.Value
	}
	return out
}

func (t Trace) Last() (TracePoint, bool) {
	if len(t) == 0 {
		return TracePoint{}, false
	}
	return t[len(t)-1], true
}

/*
Stepper is a run that can be advanced one iteration at a time, so the
presentation layer can render intermediate progress.
*/
type Stepper interface {
	Step() error
	Status() RunStatus
}

// Drive steps s until it reaches a terminal phase and returns the final error.
func Drive(s Stepper) error {
	for !s.Status().Done() {
		if err := s.Step(); err != nil {
			return err
		}
	}
	return s.Status().Err
}

// machine is the shared bookkeeping embedded by every run type.
type machine struct {
	status RunStatus
	trace  Trace
	op     string
}

func (m *machine) Status() RunStatus {
	return m.status
}

func (m *machine) Trace() Trace {
	return append(Trace(nil), m.trace...)
}

/*
record appends a trace point, failing the run on a non-finite value. Once a
run has failed it stays failed.
*/
func (m *machine) record(iteration int, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return m.fail(newError(m.op, ErrDiverged, "iteration %d produced %v", iteration, value))
	}

	m.trace = append(m.trace, TracePoint{Iteration: iteration, Value: value})
	m.status = RunStatus{Phase: Running, Iteration: iteration + 1}
	return nil
}

func (m *machine) fail(err error) error {
	m.status = RunStatus{Phase: Failed, Iteration: m.status.Iteration, Err: err}
	return err
}

func (m *machine) succeed() {
	m.status = RunStatus{Phase: Succeeded, Iteration: m.status.Iteration}
}

// guard rejects steps on a finished run.
func (m *machine) guard() error {
	switch m.status.Phase {
	case Succeeded:
		return newError(m.op, ErrDomain, "run already succeeded")
	case Failed:
		return m.status.Err
	}
	return nil
}
