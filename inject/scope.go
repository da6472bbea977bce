package inject

// scope is the stack of name→instance frames live during resolution. Each
// push copies the current top frame, so lookups read through to every
// ancestor binding while new bindings stay local and vanish on pop. The
// bottom frame always exists.
type scope struct {
	frames []map[string]any
}

func newScope() *scope {
	return &scope{frames: []map[string]any{{}}}
}

// push duplicates the top frame's bindings into a new top frame.
func (s *scope) push() {
	top := s.frames[len(s.frames)-1]
	frame := make(map[string]any, len(top))
	for k, v := range top {
		frame[k] = v
	}
	s.frames = append(s.frames, frame)
}

// bind inserts into the top frame only.
func (s *scope) bind(name string, instance any) {
	s.frames[len(s.frames)-1][name] = instance
}

// lookup reads the top frame, which already holds inherited bindings.
func (s *scope) lookup(name string) (any, bool) {
	v, ok := s.frames[len(s.frames)-1][name]
	return v, ok
}

// pop discards the top frame. The bottom frame is never popped.
func (s *scope) pop() {
	if len(s.frames) > 1 {
		s.frames = s.frames[:len(s.frames)-1]
	}
}
