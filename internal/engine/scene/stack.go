package scene

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/nsengine/internal/engine/input"
	"github.com/Faultbox/nsengine/internal/logger"
)

// Stack holds scenes; only the top one ticks and renders.
type Stack struct {
	scenes []Scene
	next   Scene
}

// NewStack creates an empty stack.
func NewStack() *Stack {
	return &Stack{}
}

// Current returns the active scene, or nil.
func (s *Stack) Current() Scene {
	if len(s.scenes) == 0 {
		return nil
	}
	return s.scenes[len(s.scenes)-1]
}

// Len returns the number of scenes.
func (s *Stack) Len() int { return len(s.scenes) }

// Push readies sc, deactivates the current scene and activates sc. If Ready
// fails the stack is left unchanged.
func (s *Stack) Push(sc Scene) error {
	if err := sc.Ready(); err != nil {
		return fmt.Errorf("scene %s: ready: %w", sc.Name(), err)
	}
	sc.Reset()

	if cur := s.Current(); cur != nil {
		cur.Deactivate()
	}
	s.scenes = append(s.scenes, sc)
	sc.Activate()

	logger.Info("scene pushed", zap.String("scene", sc.Name()), zap.Int("depth", len(s.scenes)))
	return nil
}

// Pop frees the active scene and reactivates the one below it.
func (s *Stack) Pop() {
	cur := s.Current()
	if cur == nil {
		return
	}
	cur.Deactivate()
	cur.Free()
	s.scenes[len(s.scenes)-1] = nil
	s.scenes = s.scenes[:len(s.scenes)-1]

	logger.Info("scene popped", zap.String("scene", cur.Name()))

	if top := s.Current(); top != nil {
		top.Activate()
	}
}

// Switch schedules replacing the active scene with next. The swap happens
// at the start of the next Tick.
func (s *Stack) Switch(next Scene) {
	s.next = next
}

// Reset restarts the active scene.
func (s *Stack) Reset() {
	if cur := s.Current(); cur != nil {
		cur.Reset()
	}
}

// Tick applies a pending Switch and ticks the active scene.
func (s *Stack) Tick(dt float64, events []input.Event) error {
	if s.next != nil {
		next := s.next
		s.next = nil
		s.Pop()
		if err := s.Push(next); err != nil {
			return err
		}
	}

	if cur := s.Current(); cur != nil {
		cur.Tick(dt, events)
	}
	return nil
}

// Render renders the active scene.
func (s *Stack) Render() {
	if cur := s.Current(); cur != nil {
		cur.Render()
	}
}

// Close frees every scene from the top down.
func (s *Stack) Close() {
	for len(s.scenes) > 0 {
		cur := s.Current()
		cur.Deactivate()
		cur.Free()
		s.scenes = s.scenes[:len(s.scenes)-1]
	}
	s.next = nil
}
