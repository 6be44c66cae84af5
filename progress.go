package contour

// Progress receives progress notifications. Implementations must not block;
// they have no influence on the result.
type Progress interface {
	Progress(current, total int)
}

// ProgressFunc adapts a function to [Progress].
type ProgressFunc func(current, total int)

func (fn ProgressFunc) Progress(current, total int) { fn(current, total) }

// offsetProgress reports the progress of a later phase of a multi-phase
// computation.
type offsetProgress struct {
	p      Progress
	offset int
	total  int
}

func (op offsetProgress) Progress(current, _ int) {
	op.p.Progress(op.offset+current, op.total)
}
