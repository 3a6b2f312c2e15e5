package models

// ChatMessage is one message in a chat room, as returned by the history
// endpoint. Delivery and storage are remote concerns.
type ChatMessage struct {
	Username string `json:"username"`
	Message  string `json:"message"`
}
