package grin

// Segment is a state of the show: the features shown while it is current,
// the features kept set up for what comes next, and the commands run on
// entry, when setup completes, and when the segment is finished.
type Segment struct {
	Name string
	// Active features are activated, advanced and painted in this order.
	Active []Feature
	// Setup features are set up, but not shown, while the segment is
	// current. Active features are always set up too.
	Setup []Feature
	// OnEntry runs after the segment becomes current.
	OnEntry []Command
	// OnSetupDone runs once every feature of the segment has finished its
	// background setup.
	OnSetupDone []Command
	// Next runs on a SegmentDoneCommand.
	Next []Command
}

// setupSet returns the active features followed by the setup features not
// already listed.
func (seg *Segment) setupSet() []Feature {
	out := append([]Feature(nil), seg.Active...)
	for _, f := range seg.Setup {
		if !containsFeature(out, f) {
			out = append(out, f)
		}
	}
	return out
}
