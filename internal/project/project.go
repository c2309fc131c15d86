// Package project runs a whole installation: one feeder and the branch
// circuits connected at its end.
package project

import (
	"errors"
	"fmt"

	"github.com/alexiusacademia/gocable/internal/circuit"
	"github.com/alexiusacademia/gocable/internal/electrical"
	"github.com/alexiusacademia/gocable/internal/logger"
)

// Project is a validated installation description
type Project struct {
	Name        string
	Network     circuit.SupplyNetwork
	Transformer *electrical.Transformer // source data, already folded into Network
	Feeder      circuit.Circuit
	Branches    []circuit.Circuit
}

// BranchOutcome is the result or failure of one branch circuit
type BranchOutcome struct {
	Circuit circuit.Circuit
	Result  *circuit.Result
	Err     error
}

// Report holds the results of a project run
type Report struct {
	Project  *Project
	Feeder   *circuit.Result
	Branches []BranchOutcome
}

// Failed returns the number of branches that could not be computed
func (r *Report) Failed() int {
	n := 0
	for _, b := range r.Branches {
		if b.Err != nil {
			n++
		}
	}
	return n
}

// Results returns the feeder followed by every successful branch
func (r *Report) Results() []*circuit.Result {
	out := []*circuit.Result{r.Feeder}
	for _, b := range r.Branches {
		if b.Result != nil {
			out = append(out, b.Result)
		}
	}
	return out
}

// Run computes the feeder, then every branch from the feeder result.
// A feeder failure aborts the run; a branch failure is recorded on that branch only.
func Run(e *circuit.Engine, p *Project) (*Report, error) {
	logger.Section(fmt.Sprintf("Project %s", p.Name))
	logger.Info("feeder %s, %d branch circuits", p.Feeder.Name, len(p.Branches))

	feeder, err := e.Feeder(p.Feeder, p.Network)
	if err != nil {
		return nil, fmt.Errorf("feeder %s: %w", p.Feeder.Name, err)
	}
	logger.Debug("feeder %s: S = %g mm², Ik,min = %s", feeder.Name(), feeder.Size, feeder.IkMin)

	rep := &Report{Project: p, Feeder: feeder}
	for _, c := range p.Branches {
		res, err := e.Branch(c, feeder)
		if err != nil {
			logger.Warn("branch %s: %v", c.Name, err)
			var se *circuit.SelectionError
			if errors.As(err, &se) {
				logger.Lines(se.Trace)
			}
		} else {
			logger.Debug("branch %s: S = %g mm², ΔU = %s", res.Name(), res.Size, res.TotalDrop)
		}
		rep.Branches = append(rep.Branches, BranchOutcome{Circuit: c, Result: res, Err: err})
	}
	return rep, nil
}
