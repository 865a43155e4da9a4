package grin

import (
	"log/slog"

	"github.com/tanema/gween/ease"
)

// Command is a side effect run on the model goroutine, in queue order, with
// the show lock held.
type Command interface {
	Execute(s *Show)
}

// CommandFunc adapts a function to Command.
type CommandFunc func(s *Show)

func (f CommandFunc) Execute(s *Show) { f(s) }

// ActivateSegmentCommand makes the named segment current.
type ActivateSegmentCommand struct {
	Segment string
}

func (c ActivateSegmentCommand) Execute(s *Show) {
	seg := s.Segment(c.Segment)
	if seg == nil {
		s.logger().Warn("activate of unknown segment", slog.String("segment", c.Segment))
		return
	}
	s.ActivateSegment(seg)
}

// SegmentDoneCommand runs the Next commands of the current segment.
type SegmentDoneCommand struct{}

func (SegmentDoneCommand) Execute(s *Show) {
	if s.current == nil {
		return
	}
	for _, c := range s.current.Next {
		c.Execute(s)
	}
}

// SetPartCommand selects a part of an assembly by name.
type SetPartCommand struct {
	Assembly *Assembly
	Part     string
}

func (c SetPartCommand) Execute(s *Show) {
	if !c.Assembly.SetCurrentPart(c.Part) {
		s.logger().Warn("unknown assembly part",
			slog.String("assembly", c.Assembly.Name()),
			slog.String("part", c.Part))
	}
}

// ResetVisiblePartsCommand replaces the visible parts of a group.
type ResetVisiblePartsCommand struct {
	Group *Group
	Parts []Feature
}

func (c ResetVisiblePartsCommand) Execute(s *Show) {
	c.Group.ResetVisibleParts(c.Parts)
}

// SetModelFieldCommand sets a non-animated field of a model.
type SetModelFieldCommand struct {
	Model *InterpolatedModel
	Field int
	Value int
}

func (c SetModelFieldCommand) Execute(s *Show) {
	c.Model.SetField(c.Field, c.Value)
}

// TweenFieldCommand eases a non-animated model field to a new value over a
// number of frames.
type TweenFieldCommand struct {
	Model  *InterpolatedModel
	Field  int
	To     int
	Frames int
	Ease   ease.TweenFunc
}

func (c TweenFieldCommand) Execute(s *Show) {
	s.AddTween(TweenField(c.Model, c.Field, c.To, c.Frames, c.Ease))
}
