package board

import (
	"fmt"
	"slices"
)

// Default stage names.
const (
	StageUpdateAgents    = "update_agents"
	StageUpdateAgentsEnd = "update_agents_end"
	StageScheduledDelete = "scheduled_delete"
)

// StageFunc is one step of the tick pipeline.
type StageFunc func(b *Board) error

// Stage is a named pipeline entry.
type Stage struct {
	Name string
	Run  StageFunc
}

// AddStage appends a stage to the pipeline.
func (b *Board) AddStage(name string, fn StageFunc) {
	if fn == nil {
		return
	}
	b.stages = append(b.stages, Stage{Name: name, Run: fn})
}

// FlushStages removes every stage, the defaults included.
func (b *Board) FlushStages() { b.stages = nil }

// StageNames lists the pipeline in execution order.
func (b *Board) StageNames() []string {
	names := make([]string, len(b.stages))
	for i, st := range b.stages {
		names[i] = st.Name
	}
	return names
}

// UpdateAgents runs Step on every steppable agent. A failing or panicking
// agent is logged and skipped so the rest of the tick proceeds.
func UpdateAgents(b *Board) error {
	for i := 0; i < len(b.active); i++ {
		r := b.agents[b.active[i]]
		if r == nil {
			continue
		}
		if err := b.stepAgent(r); err != nil {
			b.log.Error("agent step failed", "agent", r.id, "step", b.stepCount, "err", err)
		}
	}
	return nil
}

func (b *Board) stepAgent(r *record) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = &StepError{AgentID: r.id, Err: fmt.Errorf("panic: %v", p)}
		}
	}()
	if e := r.behavior.Step(Agent{b: b, id: r.id}); e != nil {
		return &StepError{AgentID: r.id, Err: e}
	}
	return nil
}

// UpdateAgentsEnd commits every steppable agent, through its Committer when it
// has one. The first error is returned.
func UpdateAgentsEnd(b *Board) error {
	for i := 0; i < len(b.active); i++ {
		r := b.agents[b.active[i]]
		if r == nil {
			continue
		}
		a := Agent{b: b, id: r.id}
		var err error
		if c, ok := r.behavior.(Committer); ok {
			err = c.StepEnd(a)
		} else {
			err = a.Commit()
		}
		if err != nil {
			return fmt.Errorf("agent %d commit: %w", r.id, err)
		}
	}
	return nil
}

// ScheduledDelete purges every agent pending deletion. The pending set is
// cleared after the pass; kills requested by on_delete hooks during the pass
// are kept for the next one.
func ScheduledDelete(b *Board) error {
	n := len(b.pending)
	for _, id := range b.pending[:n] {
		r := b.agents[id]
		if r == nil {
			continue
		}
		b.census[r.state]--
		idx := r.pos.ToIndex(b.width)
		if b.cells[r.layer][idx] == id {
			b.cells[r.layer][idx] = 0
		}
		if r.steppable {
			if i := slices.Index(b.active, id); i >= 0 {
				b.active = slices.Delete(b.active, i, i+1)
			}
		}

		a := Agent{b: b, id: id}
		for _, fn := range slices.Clone(b.onDelete) {
			fn(a)
		}
		delete(b.agents, id)
		b.disposer.Dispose(r.released())
	}
	b.pending = slices.Delete(b.pending, 0, n)
	return nil
}
