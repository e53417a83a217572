package mind

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mindforge/collective-mind/core"
)

// PhaseWorker produces one unit of phase-specific work. Implementations live
// outside the mind (project scanner, development/design/optimization
// collaborators); only this contract is relied on.
type PhaseWorker interface {
	PerformPhaseWork(ctx context.Context) (map[string]interface{}, error)
}

// Dispatcher maps the current mission phase to its work collaborator and
// normalizes the result into a WorkRecord.
type Dispatcher struct {
	workers map[core.Phase]PhaseWorker
}

// NewDispatcher returns an empty dispatcher. Register a worker per phase;
// unmapped phases dispatch to a no-op record.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{workers: make(map[core.Phase]PhaseWorker)}
}

// Register binds a phase to its collaborator, replacing any previous one.
func (d *Dispatcher) Register(phase core.Phase, w PhaseWorker) {
	d.workers[phase] = w
}

// Dispatch invokes the collaborator for phase and returns its record. A
// missing mapping yields an explicit no-op record; a collaborator failure is
// converted into a nil-payload record carrying the failure text. Dispatch
// never returns an error.
func (d *Dispatcher) Dispatch(ctx context.Context, mindName string, phase core.Phase) core.WorkRecord {
	rec := core.WorkRecord{
		ID:        uuid.New().String(),
		Mind:      mindName,
		Phase:     phase,
		Timestamp: time.Now().UTC(),
	}

	worker, ok := d.workers[phase]
	if !ok {
		rec.Status = core.WorkStatusNoop
		return rec
	}

	output, err := worker.PerformPhaseWork(ctx)
	if err != nil {
		rec.Output = nil
		rec.Status = fmt.Sprintf("%s: %v", core.WorkStatusFailed, err)
		return rec
	}

	rec.Output = output
	rec.Status = core.WorkStatusOK
	return rec
}
