package engine

import (
	"zeroedge/config"
	"zeroedge/interlock"
	"zeroedge/sim"
	"zeroedge/store"
)

// LogFunc is the logging callback signature.
type LogFunc func(format string, args ...interface{})

// Engine centralizes the digital-twin and interlock wiring.
type Engine struct {
	cfg        *config.Config
	configPath string
	db         *store.DB
	logFn      LogFunc
	debugFn    LogFunc

	rng       *sim.Source
	predictor sim.Predictor
	scheduler *sim.Scheduler
	validator *interlock.Validator
	gate      *interlock.Gate

	Events *EventBus
}

// Config holds the parameters needed to create an Engine.
type Config struct {
	AppConfig  *config.Config
	ConfigPath string
	DB         *store.DB
	LogFunc    LogFunc
	Debug      bool
}

// New creates a new Engine. Call Start() to initialize and wire subsystems.
func New(c Config) *Engine {
	logFn := c.LogFunc
	if logFn == nil {
		logFn = func(string, ...interface{}) {}
	}
	debugFn := LogFunc(func(string, ...interface{}) {})
	if c.Debug {
		debugFn = logFn
	}
	return &Engine{
		cfg:        c.AppConfig,
		configPath: c.ConfigPath,
		db:         c.DB,
		logFn:      logFn,
		debugFn:    debugFn,
		Events:     NewEventBus(),
	}
}

// Start creates the simulation and interlock subsystems, wires event
// handlers, and starts the tick loop.
func (e *Engine) Start() {
	simCfg := e.cfg.Simulation

	e.rng = sim.NewSource(simCfg.Seed)
	e.predictor = sim.NewHeuristicPredictor(e.rng, simCfg.LowOEEThreshold)
	e.validator = interlock.NewValidator(e.db)
	e.gate = interlock.NewGate(e.db, e.validator, simCfg.ToolLifeFloor, &gateEmitter{bus: e.Events})
	e.scheduler = sim.NewScheduler(e.db, simCfg, e.rng, e.predictor,
		&simEmitter{bus: e.Events}, e.authorizeAutoStart)

	e.wireEventHandlers()

	e.scheduler.Start()
	e.logFn("Engine started: plant=%s cell=%s tick=%s seed=%d", e.cfg.Plant, e.cfg.CellID, simCfg.TickInterval, simCfg.Seed)
}

// Stop shuts down the tick loop gracefully.
func (e *Engine) Stop() {
	if e.scheduler != nil {
		e.scheduler.Stop()
	}
	e.logFn("Engine stopped")
}

// authorizeAutoStart gates a simulated "pick up the next job" transition.
// A randomly sampled FAI record stands in for the queued work order and a
// randomly sampled operator for the crew on shift; the interlock's FAI-lock
// and competency checks decide, so the validator stays authoritative even
// for autonomous transitions. With no candidates on file the start is
// refused: the interlock never implicitly allows.
func (e *Engine) authorizeAutoStart(m store.Machine) bool {
	fais, err := e.db.ListFAIRecords()
	if err != nil {
		e.logFn("auto-start: list FAI records: %v", err)
		return false
	}
	candidate, ok := sim.Pick(e.rng, fais)
	if !ok {
		return false
	}
	if d, err := e.validator.CheckFAILock(candidate.PartNumber); err != nil || !d.Allowed {
		if err != nil {
			e.logFn("auto-start: FAI check for %s: %v", candidate.PartNumber, err)
		} else {
			e.debugFn("auto-start blocked on %s: %s", m.Name, d.Detail)
		}
		return false
	}

	operators, err := e.db.ListUsers()
	if err != nil {
		e.logFn("auto-start: list users: %v", err)
		return false
	}
	operator, ok := sim.Pick(e.rng, operators)
	if !ok {
		return false
	}
	if d := e.validator.CheckCompetency(&operator, &m); !d.Allowed {
		e.debugFn("auto-start blocked on %s: %s", m.Name, d.Detail)
		return false
	}
	return true
}

// DB returns the database handle.
func (e *Engine) DB() *store.DB { return e.db }

// AppConfig returns the app config.
func (e *Engine) AppConfig() *config.Config { return e.cfg }

// ConfigPath returns the config file path.
func (e *Engine) ConfigPath() string { return e.configPath }

// Scheduler returns the digital-twin scheduler.
func (e *Engine) Scheduler() *sim.Scheduler { return e.scheduler }

// Gate returns the interlock gate.
func (e *Engine) Gate() *interlock.Gate { return e.gate }

// Validator returns the zero-error validator.
func (e *Engine) Validator() *interlock.Validator { return e.validator }
