package interlock

import (
	"errors"
	"fmt"

	"zeroedge/store"
)

// Validator is the single source of truth for "can this part be produced
// now". It performs reads only, so both the request path and the simulated
// auto-start path can call it speculatively without committing any effect.
type Validator struct {
	db *store.DB
}

// NewValidator creates a validator over the shared store.
func NewValidator(db *store.DB) *Validator {
	return &Validator{db: db}
}

// ValidateStart authorizes or blocks a production start. Checks run in
// fixed order and fail fast on the first triggered reason: record
// resolution (missing machine or operator is a hard stop, never an implicit
// allow), then FAI lock, then competency, then the BOM/inventory pass.
// The returned error is reserved for infrastructure failures.
func (v *Validator) ValidateStart(machineID, operatorID int64, partNumber string, quantity int) (Decision, error) {
	machine, err := v.db.GetMachine(machineID)
	if errors.Is(err, store.ErrNotFound) {
		return Block(ReasonMachineNotFound, fmt.Sprintf("machine %d does not exist", machineID)), nil
	}
	if err != nil {
		return Decision{}, fmt.Errorf("resolve machine %d: %w", machineID, err)
	}

	operator, err := v.db.GetUser(operatorID)
	if errors.Is(err, store.ErrNotFound) {
		return Block(ReasonOperatorNotFound, fmt.Sprintf("operator %d does not exist", operatorID)), nil
	}
	if err != nil {
		return Decision{}, fmt.Errorf("resolve operator %d: %w", operatorID, err)
	}

	if d, err := v.CheckFAILock(partNumber); err != nil {
		return Decision{}, err
	} else if !d.Allowed {
		return d, nil
	}

	if d := v.CheckCompetency(operator, machine); !d.Allowed {
		return d, nil
	}

	return v.checkInventory(partNumber, quantity)
}

// CheckFAILock blocks when the part's FAI record exists, carries the
// production lock, and is not approved. A part with no FAI record on file
// has no lock to enforce. Exposed separately because the scheduler re-runs
// this check for simulated auto-starts.
func (v *Validator) CheckFAILock(partNumber string) (Decision, error) {
	fai, err := v.db.GetFAIByPart(partNumber)
	if errors.Is(err, store.ErrNotFound) {
		return Allow(), nil
	}
	if err != nil {
		return Decision{}, fmt.Errorf("resolve FAI for %s: %w", partNumber, err)
	}
	if fai.ProductionLocked && fai.Status != store.FAIApproved {
		return Block(ReasonFAILocked,
			fmt.Sprintf("part %s rev %s is production-locked (FAI status %s)", fai.PartNumber, fai.Revision, fai.Status)), nil
	}
	return Allow(), nil
}

// CheckCompetency blocks when the operator's level is below the machine's
// minimum. Exposed separately for the same reason as CheckFAILock.
func (v *Validator) CheckCompetency(operator *store.User, machine *store.Machine) Decision {
	if operator.CompetencyLevel < machine.MinCompetency {
		return Block(ReasonCompetencyInsufficient,
			fmt.Sprintf("operator %s has level %d, machine %s requires %d",
				operator.Name, operator.CompetencyLevel, machine.Name, machine.MinCompetency))
	}
	return Allow()
}

// checkInventory walks every BOM edge of the part and fails closed on the
// first component whose demand exceeds on-hand stock.
func (v *Validator) checkInventory(partNumber string, quantity int) (Decision, error) {
	edges, err := v.db.ListBOMChildren(partNumber)
	if err != nil {
		return Decision{}, fmt.Errorf("resolve BOM for %s: %w", partNumber, err)
	}

	for _, edge := range edges {
		required := edge.QtyPer * float64(quantity)
		onHand, err := v.db.GetOnHand(edge.ChildPart)
		if err != nil {
			return Decision{}, fmt.Errorf("resolve inventory for %s: %w", edge.ChildPart, err)
		}
		if required > onHand {
			return Block(ReasonInventoryShortage,
				fmt.Sprintf("component %s: need %.1f, on hand %.1f", edge.ChildPart, required, onHand)), nil
		}
	}
	return Allow(), nil
}
