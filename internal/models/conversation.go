package models

import "time"

type Role string

const (
	RoleUser   Role = "user"
	RoleSystem Role = "system"
)

const (
	DefaultTitle     = "New Conversation"
	DeletedTombstone = "[Message deleted]"
)

// Conversation is the unit of persistence: an ordered message log plus the
// profile derived from it. It is loaded fresh from storage per request and
// serialized as a single authenticated-encrypted blob.
type Conversation struct {
	ID              string      `json:"id"`
	OwnerID         string      `json:"owner_id,omitempty"`
	Title           string      `json:"title"`
	CreatedAt       time.Time   `json:"created_at"`
	LastInteraction time.Time   `json:"last_interaction"`
	ConsentGiven    bool        `json:"consent_given"`
	Deleted         bool        `json:"deleted"`
	Messages        []Message   `json:"messages"`
	Profile         UserProfile `json:"profile"`
}

type Message struct {
	ID          string           `json:"id"`
	Role        Role             `json:"role"`
	Content     string           `json:"content"`
	CreatedAt   time.Time        `json:"created_at"`
	Metadata    *MessageMetadata `json:"metadata,omitempty"`
	Edited      bool             `json:"edited"`
	EditHistory []EditRecord     `json:"edit_history,omitempty"`
	Deleted     bool             `json:"deleted"`
}

type EditRecord struct {
	PreviousContent string    `json:"previous_content"`
	EditedAt        time.Time `json:"edited_at"`
}

// MessageMetadata is keyed by role: user turns carry an Analysis, system
// turns carry a Generation. Exactly one side is set.
type MessageMetadata struct {
	Analysis   *Analysis   `json:"analysis,omitempty"`
	Generation *Generation `json:"generation,omitempty"`
}

// Generation records how a system reply was produced.
type Generation struct {
	Source string          `json:"source"` // gemini|openai|builtin|filter|safety|welcome|error
	Model  string          `json:"model,omitempty"`
	Intent *Classification `json:"intent,omitempty"`
	Error  bool            `json:"error,omitempty"`
}
