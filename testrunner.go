package grin

import (
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"
)

// testStep represents a single action in a playback script.
type testStep struct {
	Action   string `toml:"action"`
	Label    string `toml:"label,omitempty"`
	Show     string `toml:"show,omitempty"`
	Segment  string `toml:"segment,omitempty"`
	Assembly string `toml:"assembly,omitempty"`
	Part     string `toml:"part,omitempty"`
	Frames   int    `toml:"frames,omitempty"`
}

// testScript is the top-level TOML structure for a playback script.
type testScript struct {
	ExitOnDone bool       `toml:"exit_on_done"`
	Steps      []testStep `toml:"steps"`
}

// TestRunner sequences show commands and screenshots across frames for
// automated visual testing. Attach it to an Engine with SetTestRunner.
//
//	exit_on_done = true
//
//	[[steps]]
//	action = "segment"
//	segment = "S:Menu"
//
//	[[steps]]
//	action = "wait"
//	frames = 24
//
//	[[steps]]
//	action = "screenshot"
//	label = "menu"
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool

	// ExitOnDone stops the game once every step has run and the last
	// screenshot has been written.
	ExitOnDone bool
}

var stepActions = map[string]bool{
	"screenshot": true,
	"wait":       true,
	"segment":    true,
	"part":       true,
}

// LoadTestScript parses a TOML playback script.
func LoadTestScript(data []byte) (*TestRunner, error) {
	var script testScript
	if err := toml.Unmarshal(data, &script); err != nil {
		return nil, errors.Wrap(err, "grin: parse test script")
	}
	if len(script.Steps) == 0 {
		return nil, errors.New("grin: parse test script: no steps")
	}
	for i, st := range script.Steps {
		if !stepActions[st.Action] {
			return nil, errors.Newf("grin: parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps, ExitOnDone: script.ExitOnDone}, nil
}

// SetTestRunner attaches a TestRunner to the engine. Its step method runs
// at the start of each Update.
func (e *Engine) SetTestRunner(runner *TestRunner) {
	e.testRunner = runner
}

// Done reports whether all steps in the script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// show returns the named show, or the first show for an empty name.
func (r *TestRunner) show(e *Engine, name string) *Show {
	for _, s := range e.shows {
		if name == "" || s.Name() == name {
			return s
		}
	}
	return nil
}

// step advances the runner by one frame. Called from Engine.Update.
func (r *TestRunner) step(e *Engine) {
	if r.done {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		e.Screenshot(st.Label)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "segment":
		if s := r.show(e, st.Show); s != nil {
			s.RunCommand(ActivateSegmentCommand{Segment: st.Segment})
		}
	case "part":
		s := r.show(e, st.Show)
		if s == nil {
			break
		}
		a, ok := s.Lookup(st.Assembly).(*Assembly)
		if !ok {
			e.rt.Logger.Warn("test script: not an assembly", slog.String("assembly", st.Assembly))
			break
		}
		s.RunCommand(SetPartCommand{Assembly: a, Part: st.Part})
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
}
