package sim

import (
	"testing"

	"zeroedge/store"
)

// findSeed scans seeds until pred accepts the draw sequence a fresh Source
// produces. Lets tests pin rare transitions without hardcoding magic seeds.
func findSeed(t *testing.T, pred func(*Source) bool) int64 {
	t.Helper()
	for seed := int64(0); seed < 1_000_000; seed++ {
		if pred(NewSource(seed)) {
			return seed
		}
	}
	t.Fatal("no seed found within search bound")
	return 0
}

func runningMachine(health, oee float64) store.Machine {
	return store.Machine{ID: 1, Name: "CNC-01", Status: store.MachineRunning, Health: health, OEE: oee}
}

func TestAdvanceMaintenanceThresholdFirst(t *testing.T) {
	// Below the threshold the transition is unconditional, whatever the
	// seed would otherwise roll.
	for seed := int64(0); seed < 20; seed++ {
		m := runningMachine(15, 80)
		next, events := Advance(m, NewSource(seed), 20, nil)

		if next.Status != store.MachineMaintenance {
			t.Fatalf("seed %d: status = %s, want Maintenance", seed, next.Status)
		}
		if len(events) != 1 || events[0].Kind != TransitionStatusChanged {
			t.Fatalf("seed %d: events = %+v, want one StatusChanged", seed, events)
		}
		for _, evt := range events {
			if evt.Kind == TransitionFault {
				t.Fatalf("seed %d: maintenance transition raised a fault event", seed)
			}
		}
	}
}

func TestAdvanceRandomFault(t *testing.T) {
	seed := findSeed(t, func(s *Source) bool { return s.Chance(errorChance) })

	m := runningMachine(80, 85)
	next, events := Advance(m, NewSource(seed), 20, nil)

	if next.Status != store.MachineError {
		t.Fatalf("status = %s, want Error", next.Status)
	}

	faults := 0
	for _, evt := range events {
		if evt.Kind == TransitionFault {
			faults++
			if evt.Health != 80 {
				t.Fatalf("fault event health = %v, want 80", evt.Health)
			}
		}
	}
	if faults != 1 {
		t.Fatalf("fault events = %d, want exactly 1", faults)
	}
}

func TestAdvanceCycleCompletion(t *testing.T) {
	seed := findSeed(t, func(s *Source) bool {
		return !s.Chance(errorChance) && s.Chance(idleDoneChance)
	})

	next, events := Advance(runningMachine(80, 85), NewSource(seed), 20, nil)

	if next.Status != store.MachineIdle {
		t.Fatalf("status = %s, want Idle", next.Status)
	}
	if len(events) != 1 || events[0].Kind != TransitionStatusChanged {
		t.Fatalf("events = %+v, want one StatusChanged", events)
	}
}

func TestAdvanceWearAndOEEClamps(t *testing.T) {
	for seed := int64(0); seed < 200; seed++ {
		next, _ := Advance(runningMachine(1, 50.2), NewSource(seed), 0.5, nil)
		if next.Health < 0 || next.Health > 100 {
			t.Fatalf("seed %d: health %v out of [0, 100]", seed, next.Health)
		}
		if next.Status == store.MachineRunning && (next.OEE < 50 || next.OEE > 100) {
			t.Fatalf("seed %d: OEE %v out of [50, 100]", seed, next.OEE)
		}
	}
}

func TestAdvanceIdleAutoStartAuthorized(t *testing.T) {
	seed := findSeed(t, func(s *Source) bool { return s.Chance(autoStartChance) })

	m := store.Machine{ID: 2, Name: "CNC-02", Status: store.MachineIdle, Health: 90, OEE: 90}

	asked := false
	next, events := Advance(m, NewSource(seed), 20, func(store.Machine) bool {
		asked = true
		return true
	})

	if !asked {
		t.Fatal("authorize was not consulted")
	}
	if next.Status != store.MachineRunning {
		t.Fatalf("status = %s, want Running", next.Status)
	}

	kinds := map[TransitionKind]int{}
	for _, evt := range events {
		kinds[evt.Kind]++
	}
	if kinds[TransitionStatusChanged] != 1 || kinds[TransitionAutoStarted] != 1 {
		t.Fatalf("events = %+v, want StatusChanged and AutoStarted", events)
	}
}

func TestAdvanceIdleAutoStartDenied(t *testing.T) {
	seed := findSeed(t, func(s *Source) bool { return s.Chance(autoStartChance) })

	m := store.Machine{ID: 2, Name: "CNC-02", Status: store.MachineIdle, Health: 90, OEE: 90}

	next, events := Advance(m, NewSource(seed), 20, func(store.Machine) bool { return false })
	if next.Status != store.MachineIdle || len(events) != 0 {
		t.Fatalf("denied auto-start changed state: %s, events %+v", next.Status, events)
	}

	// No authorizer behaves like a standing denial.
	next, events = Advance(m, NewSource(seed), 20, nil)
	if next.Status != store.MachineIdle || len(events) != 0 {
		t.Fatalf("nil authorizer changed state: %s, events %+v", next.Status, events)
	}
}

func TestAdvanceTerminalStatusesHold(t *testing.T) {
	for _, status := range []string{store.MachineError, store.MachineMaintenance} {
		for seed := int64(0); seed < 50; seed++ {
			m := store.Machine{ID: 3, Name: "PRESS-01", Status: status, Health: 40, OEE: 70}
			next, events := Advance(m, NewSource(seed), 20, func(store.Machine) bool { return true })
			if next != m || len(events) != 0 {
				t.Fatalf("seed %d: %s machine transitioned to %+v", seed, status, next)
			}
		}
	}
}

func TestAdvanceReproducible(t *testing.T) {
	run := func() []store.Machine {
		rng := NewSource(1234)
		m := runningMachine(95, 90)
		var states []store.Machine
		for i := 0; i < 500; i++ {
			m, _ = Advance(m, rng, 20, nil)
			states = append(states, m)
		}
		return states
	}

	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("tick %d diverged: %+v vs %+v", i, a[i], b[i])
		}
	}
}
