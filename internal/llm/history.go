package llm

// maxHistory caps how many conversation turns are replayed to the model.
const maxHistory = 10

// History holds the rolling conversation context sent with each request.
// It keeps the most recent turns up to a fixed cap; nothing is persisted
// across processes.
type History struct {
	messages []Message
}

// NewHistory returns an empty conversation history.
func NewHistory() *History {
	return &History{}
}

// Add appends a turn, dropping the oldest when the cap is exceeded.
func (h *History) Add(role, content string) {
	h.messages = append(h.messages, Message{Role: role, Content: content})
	if len(h.messages) > maxHistory {
		h.messages = h.messages[len(h.messages)-maxHistory:]
	}
}

// Messages returns the retained turns in order.
func (h *History) Messages() []Message {
	return h.messages
}

// Len returns the number of retained turns.
func (h *History) Len() int {
	return len(h.messages)
}
