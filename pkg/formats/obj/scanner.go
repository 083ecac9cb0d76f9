package obj

// scanner is a byte cursor over OBJ source with hand-rolled number parsing.
type scanner struct {
	src  []byte
	pos  int
	line int
}

func (s *scanner) eof() bool { return s.pos >= len(s.src) }

func (s *scanner) peek() byte {
	if s.pos >= len(s.src) {
		return 0
	}
	return s.src[s.pos]
}

func (s *scanner) eol() bool {
	c := s.peek()
	return c == 0 || c == '\n' || c == '\r' || c == '#'
}

func isBlank(c byte) bool { return c == ' ' || c == '\t' }

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// skipBlank skips spaces and tabs on the current line.
func (s *scanner) skipBlank() {
	for s.pos < len(s.src) && isBlank(s.src[s.pos]) {
		s.pos++
	}
}

// skipSpace skips all whitespace including newlines.
func (s *scanner) skipSpace() {
	for s.pos < len(s.src) {
		switch s.src[s.pos] {
		case '\n':
			s.line++
		case ' ', '\t', '\r':
		default:
			return
		}
		s.pos++
	}
}

// skipLine moves past the next newline.
func (s *scanner) skipLine() {
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		s.pos++
		if c == '\n' {
			s.line++
			return
		}
	}
}

// keyword returns the token at the cursor. A comment yields "#".
func (s *scanner) keyword() string {
	if s.peek() == '#' {
		return "#"
	}
	start := s.pos
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		if isBlank(c) || c == '\n' || c == '\r' {
			break
		}
		s.pos++
	}
	return string(s.src[start:s.pos])
}

// integer parses an optionally negative decimal integer.
func (s *scanner) integer() (int, bool) {
	neg := false
	if s.peek() == '-' {
		neg = true
		s.pos++
	}
	start := s.pos
	v := 0
	for s.pos < len(s.src) && isDigit(s.src[s.pos]) {
		v = v*10 + int(s.src[s.pos]-'0')
		s.pos++
	}
	if s.pos == start {
		return 0, false
	}
	if neg {
		v = -v
	}
	return v, true
}

// maxFraction is the number of fraction digits kept; float32 cannot
// represent more and the scale would overflow.
const maxFraction = 9

// decimal parses sign, integer part and fraction. Exponents are not
// supported.
func (s *scanner) decimal() (float32, bool) {
	sign := float32(1)
	switch s.peek() {
	case '-':
		sign = -1
		s.pos++
	case '+':
		s.pos++
	}

	digits := 0
	var v float32
	for s.pos < len(s.src) && isDigit(s.src[s.pos]) {
		v = v*10 + float32(s.src[s.pos]-'0')
		s.pos++
		digits++
	}

	if s.peek() == '.' {
		s.pos++
		var frac float32
		scale := float32(1)
		for kept := 0; s.pos < len(s.src) && isDigit(s.src[s.pos]); kept++ {
			if kept < maxFraction {
				frac = frac*10 + float32(s.src[s.pos]-'0')
				scale *= 10
			}
			s.pos++
			digits++
		}
		v += frac / scale
	}

	return v * sign, digits > 0
}
