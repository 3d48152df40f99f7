package tasengine

import (
	"sync"

	"github.com/retrotas/tas-engine/buttons"
	"github.com/retrotas/tas-engine/movie"
)

// Mode is the engine's top-level movie mode.
type Mode int

const (
	Disabled Mode = iota
	Playback
	Record
)

// Policy controls whether a loaded movie may be modified by the record
// path once a timeline has been loaded under it.
type Policy int

const (
	ReadOnly Policy = iota
	ReadWrite
)

// HostClock is the external collaborator that supplies the GPU frame
// counter used to compute and validate per-frame signatures.
type HostClock interface {
	GpuFrameCounter() uint64
}

// HostSystem supplies the identity of the title currently running. The
// engine stores it but does not call it: the movie-wide hash is salted with
// the title id read from the loaded movie file or passed to NewMovie.
type HostSystem interface {
	ForegroundTitleID() uint64
}

// VpadDriver reads the physical controller. CaptureLive may block briefly;
// callers must never hold Engine's lock while calling it.
type VpadDriver interface {
	CaptureLive(player int) movie.FrameInput
}

// ManualState is the editor's held stick/trigger/button state for one
// player, independent of turbo (applied on top, see applyTurbo).
type ManualState struct {
	LX, LY, RX, RY float32
	ZL, ZR         float32
	Buttons        buttons.Mask
	VpadHold       uint32
}

// Clamp enforces invariant 3 on a ManualState, exactly as FrameInput.Clamp
// does for recorded samples.
func (m *ManualState) Clamp() {
	m.LX = buttons.ClampStick(m.LX)
	m.LY = buttons.ClampStick(m.LY)
	m.RX = buttons.ClampStick(m.RX)
	m.RY = buttons.ClampStick(m.RY)
	m.ZL = buttons.ClampTrigger(m.ZL)
	m.ZR = buttons.ClampTrigger(m.ZR)
}

func (m ManualState) sample() buttons.Sample {
	return buttons.Sample{
		LX: m.LX, LY: m.LY, RX: m.RX, RY: m.RY,
		ZL: m.ZL, ZR: m.ZR,
		Buttons:     m.Buttons,
		VpadHold:    m.VpadHold,
		HasVpadHold: true,
	}
}

// pollCursor is the per-player poll state described in spec §3.1.
type pollCursor struct {
	playbackCursor uint64
	recordCursor   uint64

	haveLatch     bool
	latchRuntime  uint64
	latchedMovie  uint64

	havePassthrough   bool
	passthroughFrame  uint64
	passthroughSample movie.FrameInput

	haveLastRecord         bool
	lastRecordRuntimeFrame uint64
}

// OverlayState is a read-only snapshot for external renderers (C8).
type OverlayState struct {
	Active             bool
	Manual             bool
	Playback           bool
	FrameAdvancePaused bool
	LX, LY, RX, RY     float32
	ZL, ZR             float32
	Buttons            buttons.Mask
}

// Engine is the single process-wide TAS state machine. All mutable state
// lives under mu; cond backs the frame-advance barrier. The zero value is
// not usable; construct with NewEngine.
type Engine struct {
	mu   sync.Mutex
	cond *sync.Cond

	store *movie.Store

	mode   Mode
	policy Policy

	loop                   bool
	strictTas              bool
	deterministicScheduler bool
	deterministicTime      bool
	controllerPassthrough  bool
	manualEnabled          bool

	signaturesTrusted bool
	desynced          bool

	titleID       uint64
	rerecordCount uint32
	movieHash     uint64

	movieDirty            bool
	haveFlushed           bool
	lastFlushRuntimeFrame uint64
	lastRecordedFrame     uint64

	moviePath string

	cursors [movie.MaxPlayers]pollCursor
	manual  [movie.MaxPlayers]ManualState

	turboMask     [movie.MaxPlayers]buttons.Mask
	turboInterval [movie.MaxPlayers]uint32

	paused                 bool
	steps                  uint32
	visualRefreshPermits   uint32
	stepActive             bool
	externalPauseRequested bool

	clock  HostClock
	system HostSystem
	vpad   VpadDriver

	bypass bypassSet
}

// NewEngine constructs a disabled Engine bound to the given host
// collaborators (spec §6.4).
func NewEngine(clock HostClock, system HostSystem, vpad VpadDriver) *Engine {
	e := &Engine{
		store:  &movie.Store{},
		clock:  clock,
		system: system,
		vpad:   vpad,
	}
	for i := range e.turboInterval {
		e.turboInterval[i] = 1
	}
	e.cond = sync.NewCond(&e.mu)
	go e.runBarrierTicker()
	return e
}

// Mode returns the engine's current top-level mode.
func (e *Engine) Mode() Mode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode
}

// IsMovieDesynced reports whether the last playback poll failed to
// realign a signature mismatch (spec §7, recoverable condition exposed for
// UI).
func (e *Engine) IsMovieDesynced() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.desynced
}

// RerecordCount returns the number of times the movie has been rewound and
// continued.
func (e *Engine) RerecordCount() uint32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rerecordCount
}
