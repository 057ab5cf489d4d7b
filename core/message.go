package core

import "fmt"

// Role tags the author of a message in the conversation.
type Role string

const (
	// RoleSystem carries the agent's instructions and tool catalog.
	RoleSystem Role = "system"
	// RoleUser carries caller queries.
	RoleUser Role = "user"
	// RoleAssistant carries model replies and tool call summaries.
	RoleAssistant Role = "assistant"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant:
		return true
	}
	return false
}

// String implements fmt.Stringer.
func (r Role) String() string { return string(r) }

// Message is a single role-tagged entry of the conversation. Messages are
// values; once appended to a MessageLog they are never modified.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// NewMessage creates a message after checking the role.
func NewMessage(role Role, content string) (Message, error) {
	if !role.Valid() {
		return Message{}, &InvalidRoleError{Role: role}
	}
	return Message{Role: role, Content: content}, nil
}

// SystemMessage creates a system message.
func SystemMessage(content string) Message { return Message{Role: RoleSystem, Content: content} }

// UserMessage creates a user message.
func UserMessage(content string) Message { return Message{Role: RoleUser, Content: content} }

// AssistantMessage creates an assistant message.
func AssistantMessage(content string) Message { return Message{Role: RoleAssistant, Content: content} }

// InvalidRoleError is returned when a message carries an unknown role.
type InvalidRoleError struct {
	Role Role
}

func (e *InvalidRoleError) Error() string {
	return fmt.Sprintf("invalid role: %q", string(e.Role))
}
