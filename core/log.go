package core

// MessageLog is the ordered, append-only conversation history of one agent.
//
// Contract:
//   - Append only grows the log; there is no delete or in-place update
//   - Snapshot returns a copy so callers (model clients) cannot mutate history
//   - The log is not synchronized; its owner serializes access
type MessageLog struct {
	messages []Message
}

// NewMessageLog creates a log seeded with the given messages, typically the
// system message synthesized by the agent.
func NewMessageLog(initial ...Message) *MessageLog {
	l := &MessageLog{messages: make([]Message, 0, len(initial)+8)}
	l.messages = append(l.messages, initial...)
	return l
}

// Append adds a message to the end of the log.
func (l *MessageLog) Append(m Message) error {
	if !m.Role.Valid() {
		return &InvalidRoleError{Role: m.Role}
	}
	l.messages = append(l.messages, m)
	return nil
}

// Snapshot returns the full ordered history.
func (l *MessageLog) Snapshot() []Message {
	out := make([]Message, len(l.messages))
	copy(out, l.messages)
	return out
}

// Len returns the number of messages in the log.
func (l *MessageLog) Len() int { return len(l.messages) }

// Last returns the most recent message and false when the log is empty.
func (l *MessageLog) Last() (Message, bool) {
	if len(l.messages) == 0 {
		return Message{}, false
	}
	return l.messages[len(l.messages)-1], true
}
