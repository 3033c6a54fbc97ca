package chat

// ReactionEntry aggregates one emoji on one message. Count always equals
// len(Users); entries with no users are never retained by the ledger.
type ReactionEntry struct {
	Emoji string   `json:"emoji"`
	Count int      `json:"count"`
	Users []string `json:"users"`
}
