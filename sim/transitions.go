package sim

import "zeroedge/store"

// Per-tick transition probabilities for a running machine.
const (
	errorChance     = 0.005 // random fault, independent of health
	idleDoneChance  = 0.01  // normal cycle completion
	wearChance      = 0.3   // intermittent wear event
	autoStartChance = 0.05  // idle machine picks up the next job
)

// TransitionKind identifies an event raised by a tick transition.
type TransitionKind int

const (
	// TransitionStatusChanged is raised on any status change.
	TransitionStatusChanged TransitionKind = iota + 1
	// TransitionFault is raised when a machine enters Error from another
	// state. Health carries the value at the moment of fault.
	TransitionFault
	// TransitionAutoStarted is raised when an idle machine starts a job
	// after passing the interlock checks.
	TransitionAutoStarted
)

// TransitionEvent is raised by Advance alongside the new machine value,
// keeping the transition function itself free of side effects.
type TransitionEvent struct {
	Kind      TransitionKind
	OldStatus string
	NewStatus string
	Health    float64
}

// AuthorizeFunc reports whether an idle machine may start its candidate
// job. The scheduler injects the interlock validator's FAI-lock and
// competency checks here; transitions stay pure.
type AuthorizeFunc func(m store.Machine) bool

// Advance applies one tick of the state machine to a machine value and
// returns the next value plus any transition events. It touches no shared
// state beyond draws on rng; persistence and record creation belong to the
// caller.
//
// Transition precedence for a running machine: the maintenance threshold is
// checked first and is unconditional; the random fault is evaluated before
// cycle completion; wear and the OEE walk apply only when no transition
// fired. Error and Maintenance never transition on their own.
func Advance(m store.Machine, rng *Source, maintenanceThreshold float64, authorize AuthorizeFunc) (store.Machine, []TransitionEvent) {
	next := m
	var events []TransitionEvent

	switch m.Status {
	case store.MachineRunning:
		switch {
		case m.Health < maintenanceThreshold:
			next.Status = store.MachineMaintenance
			events = append(events, TransitionEvent{Kind: TransitionStatusChanged, OldStatus: m.Status, NewStatus: next.Status, Health: m.Health})
		case rng.Chance(errorChance):
			next.Status = store.MachineError
			events = append(events,
				TransitionEvent{Kind: TransitionStatusChanged, OldStatus: m.Status, NewStatus: next.Status, Health: m.Health},
				TransitionEvent{Kind: TransitionFault, OldStatus: m.Status, NewStatus: next.Status, Health: m.Health})
		case rng.Chance(idleDoneChance):
			next.Status = store.MachineIdle
			events = append(events, TransitionEvent{Kind: TransitionStatusChanged, OldStatus: m.Status, NewStatus: next.Status, Health: m.Health})
		default:
			if rng.Chance(wearChance) {
				next.Health = clamp(m.Health-rng.NextFloatRange(0.5, 2.5), 0, 100)
			}
			next.OEE = clamp(m.OEE+rng.NextFloatRange(-1.5, 1.5), 50, 100)
		}

	case store.MachineIdle:
		if rng.Chance(autoStartChance) && authorize != nil && authorize(m) {
			next.Status = store.MachineRunning
			events = append(events,
				TransitionEvent{Kind: TransitionStatusChanged, OldStatus: m.Status, NewStatus: next.Status, Health: m.Health},
				TransitionEvent{Kind: TransitionAutoStarted, OldStatus: m.Status, NewStatus: next.Status, Health: m.Health})
		}
	}

	return next, events
}
