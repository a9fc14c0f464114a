package rag

import "github.com/smartretail/assistant/models"

// DefaultHistoryWindow is the number of trailing conversation turns given to
// the model. A plain recency cut, not summarisation: older messages are
// silently dropped from model input.
const DefaultHistoryWindow = 5

// Window returns the last min(size, len(messages)) messages in original
// order. The most recent message is always included.
func Window(messages []models.ChatMessage, size int) []models.ChatMessage {
	if size <= 0 {
		size = DefaultHistoryWindow
	}
	if len(messages) <= size {
		return messages
	}
	return messages[len(messages)-size:]
}
