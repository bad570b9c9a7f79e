// Package responder generates canned assistant replies locally. The chat
// controller falls back to it whenever the remote backend is unreachable or
// answers with an error, so every reply here must look like a plausible
// assistant answer rather than an error message.
package responder

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// Replies for utterances no rule matches.
const (
	shortPrompt   = "Could you tell me a bit more? I'd love to help but need a bit more detail! 😊"
	genericFormat = "Thanks for your message! 🤖\n\nYou asked: \"%s\"\n\nThat's a thoughtful question! I'm here to help. Try being more specific or ask me things like:\n\n• General knowledge questions\n• Coding help\n• Writing assistance\n• Math problems\n• Fun stuff like jokes\n\nI'm ready to assist! 😊"
)

// minUtteranceLen separates the short-utterance prompt from the generic
// catch-all.
const minUtteranceLen = 5

// rule pairs a predicate with a reply generator. Rules are evaluated in
// order and the first match wins.
type rule struct {
	name    string
	pattern *regexp.Regexp
	reply   func(now time.Time, original string) string
}

func canned(text string) func(time.Time, string) string {
	return func(time.Time, string) string { return text }
}

// Patterns run against the lower-cased utterance.
var rules = []rule{
	{"greeting", regexp.MustCompile(`\b(hello|hi|hey|greetings)\b`),
		canned("Hello! 👋 How can I help you today? Feel free to ask me anything!")},
	{"wellbeing", regexp.MustCompile(`\b(how are you|how's it going)\b`),
		canned("I'm doing great, thanks for asking! 😊 How can I assist you today?")},
	{"identity", regexp.MustCompile(`\b(your name|who are you)\b`),
		canned("I'm ChatGPT, an AI assistant created to help you with various tasks like answering questions, writing, coding, and more!")},
	{"thanks", regexp.MustCompile(`\b(thank|thanks)\b`),
		canned("You're welcome! 😊 Let me know if you need anything else.")},
	{"farewell", regexp.MustCompile(`\b(bye|goodbye|see you)\b`),
		canned("Goodbye! Have a wonderful day! 👋")},
	{"help", regexp.MustCompile(`\bhelp\b`),
		canned("I can help you with many things! Here are some ideas:\n\n• Ask me general knowledge questions\n• Get coding help\n• Write or summarize text\n• Brainstorm ideas\n• Learn about any topic\n\nJust type your question!")},
	{"weather", regexp.MustCompile(`\bweather\b`),
		canned("🌤️ I don't have real-time weather data, but you can check weather.com or your phone's weather app for the latest forecast!")},
	{"timedate", regexp.MustCompile(`\b(time|date)\b`),
		func(now time.Time, _ string) string {
			return fmt.Sprintf("🕐 The current time is **%s** and today's date is **%s**.",
				now.Format("3:04:05 PM"), now.Format("1/2/2006"))
		}},
	{"joke", regexp.MustCompile(`\b(joke|funny)\b`),
		canned("😄 Here's one: Why do programmers prefer dark mode? Because light attracts bugs! 🐛")},
	{"coding", regexp.MustCompile(`\b(python|javascript|java|code|programming|coding)\b`),
		canned("💻 I'd love to help with coding! Please share:\n\n• The programming language you're using\n• What you're trying to build\n• Any error messages you're seeing\n\nI'll do my best to help!")},
	{"math", regexp.MustCompile(`\b(math|calculate|equation)\b`),
		canned("🔢 I can help with math! Please share the equation or problem, and I'll walk you through the solution.")},
	{"writing", regexp.MustCompile(`\b(write|essay|story|email)\b`),
		canned("✍️ I'd be happy to help you write! Please tell me:\n\n• What type of content (email, essay, story, etc.)\n• The topic or subject\n• The tone you want (formal, casual, etc.)\n• Any specific details to include")},
	{"explain", regexp.MustCompile(`\b(explain|what is|what are|define)\b`),
		func(_ time.Time, original string) string {
			return fmt.Sprintf("Great question! 🧠\n\n\"%s\" — that's an interesting topic! I'd be happy to discuss it further. Could you be more specific about what aspect you'd like to know about? That way I can give you the best answer!", original)
		}},
}

// Responder maps a user utterance to a reply. It is a total function: every
// utterance produces some reply, and Respond never fails.
type Responder struct {
	now func() time.Time
}

// New creates a responder using the wall clock.
func New() *Responder {
	return &Responder{now: time.Now}
}

// NewWithClock creates a responder with an injected clock.
func NewWithClock(now func() time.Time) *Responder {
	return &Responder{now: now}
}

// Respond returns the reply for utterance. Matching is case-insensitive;
// the time/date rule reads the clock at call time, and the explain and
// catch-all replies quote the utterance exactly as given.
func (r *Responder) Respond(utterance string) string {
	lower := strings.ToLower(utterance)
	for _, rl := range rules {
		if rl.pattern.MatchString(lower) {
			return rl.reply(r.now(), utterance)
		}
	}
	if utf8.RuneCountInString(utterance) < minUtteranceLen {
		return shortPrompt
	}
	return fmt.Sprintf(genericFormat, utterance)
}
