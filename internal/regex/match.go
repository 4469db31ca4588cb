package regex

// Match is the result of a successful match. Group 0 is the whole match.
type Match struct {
	subject string
	idx     []int
}

func newMatch(s string, idx []int) *Match {
	if idx == nil {
		return nil
	}
	return &Match{subject: s, idx: idx}
}

func (m *Match) shift(s string, pos int) *Match {
	idx := make([]int, len(m.idx))
	for i, v := range m.idx {
		if v < 0 {
			idx[i] = v
			continue
		}
		idx[i] = v + pos
	}
	return &Match{subject: s, idx: idx}
}

// Matched reports whether group i took part in the match.
func (m *Match) Matched(i int) bool {
	if i < 0 || 2*i+1 >= len(m.idx) {
		return false
	}
	return m.idx[2*i] >= 0
}

// Group returns the text of group i, or "" if it did not participate.
func (m *Match) Group(i int) string {
	if !m.Matched(i) {
		return ""
	}
	return m.subject[m.idx[2*i]:m.idx[2*i+1]]
}

// Start returns the byte offset where group i begins, or -1.
func (m *Match) Start(i int) int {
	if !m.Matched(i) {
		return -1
	}
	return m.idx[2*i]
}

// End returns the byte offset just past group i, or -1.
func (m *Match) End(i int) int {
	if !m.Matched(i) {
		return -1
	}
	return m.idx[2*i+1]
}

// Len returns the length of group i in bytes.
func (m *Match) Len(i int) int {
	if !m.Matched(i) {
		return 0
	}
	return m.idx[2*i+1] - m.idx[2*i]
}
