package rs274

// Predefined numbered parameters, grounded on parameters.go's
// curCoordSysParam/coordSysParam block: #5220 is the current coordinate
// system number (1-based), and #5221.. is a 20-wide-per-system block of
// per-axis offsets for work-offset registers 1-9 (G54..G59.3). Unlike
// the teacher, which only carries X/Y/Z in that block, this module lays
// out all NumAxes offsets across the same 20-wide stride; slots beyond
// the axis count read as 0.0, reserved the way the teacher leaves its
// own unused slots. Reads are answered from modal state by
// predefinedParam; assignments are routed into modal state by
// Interpreter.setPredefinedParam.
const (
	curCoordSysParam  = 5220
	coordSysParam     = 5221
	coordSysParamStep = 20
)

// predefinedParam answers a read of a predefined numbered parameter. ok
// is false for any number outside the predefined ranges, letting the
// caller fall through to the ordinary numbered-parameter store.
func predefinedParam(m *modalState, num uint64) (float32, bool) {
	switch {
	case num == curCoordSysParam:
		return float32(m.workspace.coordSysNumber()), true
	case num >= coordSysParam && num < coordSysParam+coordSysParamStep*9:
		offset := int(num) - coordSysParam
		sys := offset/coordSysParamStep + 1
		axis := offset % coordSysParamStep
		if axis >= NumAxes {
			return 0, true
		}
		return m.coordSysOffset[sys][axis], true
	default:
		return 0, false
	}
}
