package rag

import (
	"strings"

	"github.com/smartretail/assistant/models"
)

// systemPrompt is the grounding policy sent ahead of every completion. The
// exact wording is a contract with the model: answer quality depends on it,
// so it must not drift.
const systemPrompt = "You are a specialized Smart Retail Assistant for a Walmart-like store. " +
	"Your primary goal is to help users find products based ONLY on the provided context from our SQL database. " +
	"STRICT GROUNDING RULES: " +
	"1. Only discuss products that are explicitly listed in the 'Context' section below. " +
	"2. If the user asks for something not in the context, say: 'I'm sorry, I couldn't find any products matching that description in our current catalog.' " +
	"3. Do not use outside knowledge about products, prices, or availability. " +
	"4. Always mention the price and category when recommending a product. " +
	"5. Be professional, helpful, and concise."

// BuildPrompt combines the grounding policy, the context block and the
// windowed history into the message sequence for the completion provider.
// History roles are matched case-insensitively; anything that is not a user
// or assistant turn is dropped. Chronological order is preserved after the
// two leading system messages.
func BuildPrompt(contextBlock string, history []models.ChatMessage) []models.ChatMessage {
	prompt := make([]models.ChatMessage, 0, len(history)+2)
	prompt = append(prompt,
		models.ChatMessage{Role: models.RoleSystem, Content: systemPrompt},
		models.ChatMessage{Role: models.RoleSystem, Content: "Context:\n" + contextBlock},
	)
	for _, msg := range history {
		switch strings.ToLower(msg.Role) {
		case models.RoleUser:
			prompt = append(prompt, models.ChatMessage{Role: models.RoleUser, Content: msg.Content})
		case models.RoleAssistant:
			prompt = append(prompt, models.ChatMessage{Role: models.RoleAssistant, Content: msg.Content})
		}
	}
	return prompt
}
