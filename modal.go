package rs274

// Unit is the active length unit, selected by G20/G21.
type Unit int

const (
	UnitMm Unit = iota
	UnitInch
)

func (u Unit) String() string {
	if u == UnitInch {
		return "inch"
	}
	return "mm"
}

// Workspace is the active coordinate system, selected by G53..G59.3.
// Machine is the raw machine frame (G53); the rest are the nine work
// offset registers LinuxCNC calls G54 through G59.3.
type Workspace int

const (
	WorkspaceMachine Workspace = iota
	WorkspaceG54
	WorkspaceG55
	WorkspaceG56
	WorkspaceG57
	WorkspaceG58
	WorkspaceG59
	WorkspaceG59_1
	WorkspaceG59_2
	WorkspaceG59_3
)

// coordSysNumber is the 1-based coordinate-system number predefined
// parameter #5220 exposes; WorkspaceMachine has no number of its own and
// reports 0.
func (w Workspace) coordSysNumber() int {
	if w == WorkspaceMachine {
		return 0
	}
	return int(w)
}

// Positioning is the absolute/relative interpretation of axis words,
// selected by G90/G91.
type Positioning int

const (
	PositioningAbsolute Positioning = iota
	PositioningRelative
)

// Coolant is the mist/flood coolant state set by M7/M8/M9.
type Coolant int

const (
	CoolantOff Coolant = iota
	CoolantMist
	CoolantFlood
)

// modalState is the interpreter's persistent, mutable selections that
// affect how subsequent commands are interpreted.
type modalState struct {
	unit        Unit
	workspace   Workspace
	positioning Positioning
	feedrate    float32
	spindleOn   bool
	coolant     Coolant
	tool        uint64

	position [NumAxes]float32 // absolute machine position

	// coordSysOffset[w] holds the per-axis offset of work-offset register
	// w (index 1..9, WorkspaceG54..WorkspaceG59_3); index 0 (Machine) is
	// unused and stays zero. Programmed by G10 L2/L20 and read through
	// the #5221..#5400 predefined parameter block.
	coordSysOffset [10][NumAxes]float32

	// workOffset is the currently active G92 offset. Set by G92, cleared
	// by G92.1 and G92.2; G92.3 leaves it unchanged (single register,
	// matching the teacher). It is stored only: moves do not add it to
	// the programmed position.
	workOffset [NumAxes]float32
}

func newModalState() *modalState {
	return &modalState{unit: UnitMm, workspace: WorkspaceMachine, positioning: PositioningAbsolute}
}
