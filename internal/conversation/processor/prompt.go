package processor

import (
	"fmt"
	"strings"
	"time"
)

// Spoken lines used when the model pipeline cannot produce one. A caller
// on a live line always hears something.
const (
	genericGreeting = "Hello! Thanks for calling. How can I help you today?"
	repeatPrompt    = "I'm sorry, I didn't catch that. Could you say it again?"
	farewellLine    = "Thank you for calling. Goodbye!"
)

// closingPhrases is the legacy safety net for completion detection. The
// structured end_call signal is authoritative; this catches models that
// say goodbye in prose without invoking the function.
var closingPhrases = []string{
	"goodbye",
	"have a great day",
	"have a good day",
	"have a wonderful day",
	"talk to you soon",
	"thanks for calling",
	"thank you for calling",
}

func soundsLikeClosing(text string) bool {
	lowered := strings.ToLower(text)
	for _, phrase := range closingPhrases {
		if strings.Contains(lowered, phrase) {
			return true
		}
	}
	return false
}

// buildSystemPrompt combines the agent's authored prompt with the live
// call context the model needs: who it is, who is calling, and what day
// it is, so relative dates like "tomorrow" resolve correctly.
func buildSystemPrompt(promptTemplate, agentName, customerName, customerPhone string, now time.Time) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(promptTemplate))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("Your name is %s. You are speaking with a caller on a live phone call.\n", agentName))
	b.WriteString(fmt.Sprintf("The current date and time is %s.\n", now.Format("Monday, January 2, 2006 at 3:04 PM MST")))
	if customerName != "" {
		b.WriteString(fmt.Sprintf("The caller's name is %s.\n", customerName))
	}
	if customerPhone != "" {
		b.WriteString(fmt.Sprintf("The caller's phone number is %s.\n", customerPhone))
	}

	b.WriteString("\nKeep replies short and conversational; they will be spoken aloud.\n")
	b.WriteString("Use the available functions to check availability and book appointments instead of guessing.\n")
	b.WriteString("When the conversation has reached its natural end, call the end_call function.")
	return b.String()
}
