// Package assistant answers free-text questions with canned responses
// matched by keyword.
package assistant

import "strings"

const fallback = "I'm sorry, I don't understand that yet. But I can help with finding events or registration!"

// rule maps trigger keywords to a canned answer. Later rules win when
// several match.
type rule struct {
	keywords []string
	answer   string
}

var rules = []rule{
	{
		keywords: []string{"event", "tech", "art"},
		answer:   "You can discover trending events on the homepage. We have Tech, Art, and Sustainability categories! Use the filter buttons to toggle.",
	},
	{
		keywords: []string{"register"},
		answer:   "Just click the 'Register' button on any event card to join!",
	},
	{
		keywords: []string{"team"},
		answer:   "Once registered, head to 'My Events' to find teammates and form teams.",
	},
	{
		keywords: []string{"admin", "host", "create"},
		answer:   "Creators can manage events from the 'Host Dashboard'. Use the '+ Create Event' button to start!",
	},
	{
		keywords: []string{"whatsapp", "contact"},
		answer:   "You can contact us via the WhatsApp button at the bottom left, or check the 'Get in Touch' section!",
	},
}

// Reply returns the canned answer for a question, or the fallback when no
// keyword matches.
func Reply(question string) string {
	q := strings.ToLower(question)
	answer := fallback
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(q, kw) {
				answer = r.answer
				break
			}
		}
	}
	return answer
}
