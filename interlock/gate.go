package interlock

import (
	"errors"
	"fmt"

	"zeroedge/store"
)

// EventEmitter is the interface the interlock package uses to emit events.
type EventEmitter interface {
	EmitProductionStarted(workOrderID, machineID, operatorID int64, partNumber string, quantity int)
	EmitProductionStopped(workOrderID, machineID, operatorID int64, partNumber string, quantity int)
}

// Gate wraps an inbound start-production request. It resolves the work
// order's context, runs cheap pre-checks, defers to the Validator for the
// full pass, and only then mutates state. Any rejection at any stage
// leaves all state untouched.
type Gate struct {
	db            *store.DB
	validator     *Validator
	toolLifeFloor float64
	emitter       EventEmitter
}

// NewGate creates a gate. toolLifeFloor is the remaining-life percentage
// below which the mounted tool blocks the start.
func NewGate(db *store.DB, validator *Validator, toolLifeFloor float64, emitter EventEmitter) *Gate {
	return &Gate{db: db, validator: validator, toolLifeFloor: toolLifeFloor, emitter: emitter}
}

// StartProduction authorizes and executes a production start for a work
// order. Exactly one of the three returns is meaningful: the started work
// order on success, a structured rejection for domain blocks, or an error
// for infrastructure failures.
//
// The mutation sequence orders the externally visible work-order flip last,
// so a write failure mid-sequence never shows an InProgress order whose
// machine was not started.
func (g *Gate) StartProduction(workOrderID, machineID, operatorID int64) (*store.WorkOrder, *Rejection, error) {
	wo, err := g.db.GetWorkOrder(workOrderID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &Rejection{Code: CodeNotFound, Detail: fmt.Sprintf("work order %d does not exist", workOrderID)}, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("resolve work order %d: %w", workOrderID, err)
	}
	if wo.Status != store.WorkOrderPending {
		return nil, &Rejection{Code: CodeNotFound, Detail: fmt.Sprintf("work order %d is %s, not startable", wo.ID, wo.Status)}, nil
	}

	if d, err := g.validator.CheckFAILock(wo.PartNumber); err != nil {
		return nil, nil, err
	} else if !d.Allowed {
		return nil, &Rejection{Code: CodeFAILock, Detail: d.Detail}, nil
	}

	machine, err := g.db.GetMachine(machineID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &Rejection{Code: CodeNotFound, Detail: fmt.Sprintf("machine %d does not exist", machineID)}, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("resolve machine %d: %w", machineID, err)
	}

	if machine.ToolID != nil {
		tool, err := g.db.GetTool(*machine.ToolID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, nil, fmt.Errorf("resolve tool %d: %w", *machine.ToolID, err)
		}
		if err == nil && tool.LifePct < g.toolLifeFloor {
			return nil, &Rejection{Code: CodeToolLife,
				Detail: fmt.Sprintf("tool %s has %.1f%% life remaining, floor is %.1f%%", tool.Name, tool.LifePct, g.toolLifeFloor)}, nil
		}
	}

	operator, err := g.db.GetUser(operatorID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &Rejection{Code: CodeNotFound, Detail: fmt.Sprintf("operator %d does not exist", operatorID)}, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("resolve operator %d: %w", operatorID, err)
	}
	if d := g.validator.CheckCompetency(operator, machine); !d.Allowed {
		return nil, &Rejection{Code: CodeSkillCheck, Detail: d.Detail}, nil
	}

	// Full pass, including BOM/inventory.
	decision, err := g.validator.ValidateStart(machineID, operatorID, wo.PartNumber, wo.Quantity)
	if err != nil {
		return nil, nil, err
	}
	if !decision.Allowed {
		return nil, &Rejection{Code: reasonToCode(decision.Reason), Detail: decision.Detail}, nil
	}

	detail := fmt.Sprintf("part %s x%d", wo.PartNumber, wo.Quantity)
	if _, err := g.db.InsertProductionLog(&wo.ID, &machine.ID, &operator.ID, store.LogActionStart, detail); err != nil {
		return nil, nil, fmt.Errorf("append production log: %w", err)
	}
	if err := g.db.UpdateMachineStatus(machine.ID, store.MachineRunning); err != nil {
		return nil, nil, fmt.Errorf("start machine %s: %w", machine.Name, err)
	}
	if err := g.db.StartWorkOrder(wo.ID); err != nil {
		return nil, nil, fmt.Errorf("start work order %d: %w", wo.ID, err)
	}

	g.emitter.EmitProductionStarted(wo.ID, machine.ID, operator.ID, wo.PartNumber, wo.Quantity)

	started, err := g.db.GetWorkOrder(wo.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("reload work order %d: %w", wo.ID, err)
	}
	return started, nil, nil
}

// StopProduction completes an in-progress work order. No interlock checks
// apply on the way out; stopping is always safe. The mutation sequence
// mirrors StartProduction with the work-order flip last.
func (g *Gate) StopProduction(workOrderID, machineID, operatorID int64) (*store.WorkOrder, *Rejection, error) {
	wo, err := g.db.GetWorkOrder(workOrderID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &Rejection{Code: CodeNotFound, Detail: fmt.Sprintf("work order %d does not exist", workOrderID)}, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("resolve work order %d: %w", workOrderID, err)
	}
	if wo.Status != store.WorkOrderInProgress {
		return nil, &Rejection{Code: CodeNotFound, Detail: fmt.Sprintf("work order %d is %s, not stoppable", wo.ID, wo.Status)}, nil
	}

	machine, err := g.db.GetMachine(machineID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &Rejection{Code: CodeNotFound, Detail: fmt.Sprintf("machine %d does not exist", machineID)}, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("resolve machine %d: %w", machineID, err)
	}
	operator, err := g.db.GetUser(operatorID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &Rejection{Code: CodeNotFound, Detail: fmt.Sprintf("operator %d does not exist", operatorID)}, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("resolve operator %d: %w", operatorID, err)
	}

	detail := fmt.Sprintf("part %s x%d", wo.PartNumber, wo.Quantity)
	if _, err := g.db.InsertProductionLog(&wo.ID, &machine.ID, &operator.ID, store.LogActionStop, detail); err != nil {
		return nil, nil, fmt.Errorf("append production log: %w", err)
	}
	if err := g.db.UpdateMachineStatus(machine.ID, store.MachineIdle); err != nil {
		return nil, nil, fmt.Errorf("idle machine %s: %w", machine.Name, err)
	}
	if err := g.db.UpdateWorkOrderStatus(wo.ID, store.WorkOrderCompleted); err != nil {
		return nil, nil, fmt.Errorf("complete work order %d: %w", wo.ID, err)
	}

	g.emitter.EmitProductionStopped(wo.ID, machine.ID, operator.ID, wo.PartNumber, wo.Quantity)

	stopped, err := g.db.GetWorkOrder(wo.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("reload work order %d: %w", wo.ID, err)
	}
	return stopped, nil, nil
}
