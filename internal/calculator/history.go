package calculator

// History is the ordered log of completed calculations of one session.
// Entries are only ever appended; Clear drops all of them at once.
type History struct {
	entries []string
}

func (h *History) Append(entry string) {
	h.entries = append(h.entries, entry)
}

func (h *History) Clear() {
	h.entries = nil
}

// All returns a copy of the entries, oldest first. It is never nil.
func (h *History) All() []string {
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

// Last returns the most recent entry.
func (h *History) Last() (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	return h.entries[len(h.entries)-1], true
}

func (h *History) Len() int {
	return len(h.entries)
}
