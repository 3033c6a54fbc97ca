package chat

import "time"

// Message kinds. Text messages carry only content; file messages also
// carry the upload metadata echoed back from the upload endpoint.
const (
	TypeText = "text"
	TypeFile = "file"
)

// Message is one chat message as broadcast and served to clients.
// Messages are immutable once appended to the history; Reactions is
// filled in at read time from the reaction ledger.
type Message struct {
	ID        string          `json:"id"`
	Sender    string          `json:"sender"`
	Content   string          `json:"content"`
	Timestamp time.Time       `json:"timestamp"`
	Type      string          `json:"type"`
	FileName  string          `json:"fileName,omitempty"`
	FileSize  int64           `json:"fileSize,omitempty"`
	FileURL   string          `json:"fileUrl,omitempty"`
	Reactions []ReactionEntry `json:"reactions,omitempty"`
}
