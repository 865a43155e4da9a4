package grin

// Director receives notifications about what the show is doing. All calls
// are made on the model goroutine with the show lock held; a director may
// call the show's mutation methods directly.
type Director interface {
	NotifyAssemblyPartSelected(a *Assembly, selected, old Feature, activated bool)
	NotifySegmentActivated(seg, old *Segment)
	NotifyNextFrame()
}

// DirectorBase implements Director with no-ops, for embedding.
type DirectorBase struct{}

func (DirectorBase) NotifyAssemblyPartSelected(a *Assembly, selected, old Feature, activated bool) {}
func (DirectorBase) NotifySegmentActivated(seg, old *Segment)                                     {}
func (DirectorBase) NotifyNextFrame()                                                             {}
