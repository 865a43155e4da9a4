package grin

import "math"

const (
	// LoopInfinite as a loop count repeats forever.
	LoopInfinite = math.MaxInt32
	// NoRepeat as a repeat frame makes an animation stick on its last frame
	// when its loops are exhausted, and restart from frame 0 between loops.
	NoRepeat = -1
)

// keyframeClock is the frame counter behind every keyframed animation. It
// counts frames from 0 to last, then either restarts (at repeatFrame, or 0)
// or, once its loops are used up, runs the end commands and settles.
type keyframeClock struct {
	last        int
	loopCount   int
	repeatFrame int
	endCommands []Command
	show        *Show

	currFrame int
	loopsLeft int
	done      bool

	// seek moves the animated state to frame.
	seek func(frame int)
}

func (k *keyframeClock) init(s *Show, last, loopCount, repeatFrame int, endCommands []Command, seek func(int)) {
	if loopCount <= 0 {
		loopCount = 1
	}
	if repeatFrame > last {
		repeatFrame = last
	}
	k.show = s
	k.last = max(last, 0)
	k.loopCount = loopCount
	k.repeatFrame = repeatFrame
	k.endCommands = endCommands
	k.seek = seek
}

// reset rewinds to frame 0 with a full loop count.
func (k *keyframeClock) reset() {
	k.currFrame = 0
	k.loopsLeft = k.loopCount
	k.done = false
	k.seek(0)
	if k.last == 0 {
		k.onLast()
	}
}

// advance moves forward one frame. It returns false once the animation has
// settled, and does nothing in that case.
func (k *keyframeClock) advance() bool {
	if k.done {
		return false
	}
	next := k.currFrame + 1
	if k.currFrame >= k.last {
		next = k.restartFrame()
	}
	k.currFrame = next
	k.seek(next)
	if k.currFrame == k.last {
		k.onLast()
	}
	return true
}

func (k *keyframeClock) restartFrame() int {
	if k.repeatFrame >= 0 {
		return k.repeatFrame
	}
	return 0
}

func (k *keyframeClock) onLast() {
	if k.loopCount != LoopInfinite {
		k.loopsLeft--
	}
	if k.loopsLeft > 0 {
		return
	}
	k.done = true
	if len(k.endCommands) > 0 && k.show != nil {
		k.show.queueCommands(k.endCommands)
	}
	if k.repeatFrame >= 0 && k.repeatFrame != k.currFrame {
		k.currFrame = k.repeatFrame
		k.seek(k.repeatFrame)
	}
}
