package token

// tagStack records the names of currently open, non-self-closing tags.
type tagStack struct {
	names [][]byte
}

func (s *tagStack) push(name []byte) {
	s.names = append(s.names, name)
}

// pop removes and returns the most recently pushed name. The second result
// is false when the stack is empty.
func (s *tagStack) pop() ([]byte, bool) {
	n := len(s.names)
	if n == 0 {
		return nil, false
	}
	name := s.names[n-1]
	s.names = s.names[:n-1]
	return name, true
}

// clear empties the stack. Used on close-tag mismatch so one structural
// error does not cascade.
func (s *tagStack) clear() {
	s.names = s.names[:0]
}

func (s *tagStack) empty() bool {
	return len(s.names) == 0
}

// list returns the open names in stack order, innermost last.
func (s *tagStack) list() []string {
	res := make([]string, len(s.names))
	for i, name := range s.names {
		res[i] = string(name)
	}
	return res
}
