package responder

import (
	"strings"
	"testing"
	"time"
)

func TestRespondKeywordRules(t *testing.T) {
	r := New()

	tests := []struct {
		name      string
		utterance string
		want      string
	}{
		{"greeting", "hello there", "Hello! 👋 How can I help you today? Feel free to ask me anything!"},
		{"greeting uppercase", "HELLO THERE", "Hello! 👋 How can I help you today? Feel free to ask me anything!"},
		{"greeting embedded", "well hey, got a minute?", "Hello! 👋 How can I help you today? Feel free to ask me anything!"},
		{"wellbeing", "how are you doing", "I'm doing great, thanks for asking! 😊 How can I assist you today?"},
		{"identity", "who are you exactly", "I'm ChatGPT, an AI assistant created to help you with various tasks like answering questions, writing, coding, and more!"},
		{"thanks", "thanks a lot", "You're welcome! 😊 Let me know if you need anything else."},
		{"farewell", "ok goodbye now", "Goodbye! Have a wonderful day! 👋"},
		{"joke", "tell me something funny", "😄 Here's one: Why do programmers prefer dark mode? Because light attracts bugs! 🐛"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Respond(tt.utterance); got != tt.want {
				t.Fatalf("Respond(%q) = %q, want %q", tt.utterance, got, tt.want)
			}
		})
	}
}

func TestRespondFirstMatchWins(t *testing.T) {
	r := New()

	// Matches both the greeting and time/date rules; greeting is earlier.
	got := r.Respond("hello, what time is it?")
	if !strings.HasPrefix(got, "Hello!") {
		t.Fatalf("expected greeting reply, got %q", got)
	}

	// Matches both help and coding; help is earlier.
	got = r.Respond("I need help with my code")
	if !strings.HasPrefix(got, "I can help you with many things!") {
		t.Fatalf("expected help reply, got %q", got)
	}
}

func TestRespondTimeDateUsesClock(t *testing.T) {
	fixed := time.Date(2024, 3, 7, 14, 30, 5, 0, time.UTC)
	r := NewWithClock(func() time.Time { return fixed })

	got := r.Respond("what's the date today?")
	if !strings.Contains(got, "2:30:05 PM") {
		t.Fatalf("expected interpolated time in %q", got)
	}
	if !strings.Contains(got, "3/7/2024") {
		t.Fatalf("expected interpolated date in %q", got)
	}
}

func TestRespondTimeDateNotCached(t *testing.T) {
	calls := 0
	clocks := []time.Time{
		time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
	}
	r := NewWithClock(func() time.Time {
		now := clocks[calls]
		calls++
		return now
	})

	first := r.Respond("time please")
	second := r.Respond("time please")
	if first == second {
		t.Fatalf("expected replies to track the clock, both were %q", first)
	}
}

func TestRespondExplainEchoesOriginalCase(t *testing.T) {
	r := New()

	got := r.Respond("Explain TCP Slow Start")
	if !strings.Contains(got, `"Explain TCP Slow Start"`) {
		t.Fatalf("expected verbatim echo in %q", got)
	}
}

func TestRespondNoRuleShortUtterance(t *testing.T) {
	r := New()

	got := r.Respond("zzq")
	if got != shortPrompt {
		t.Fatalf("Respond(short) = %q, want the short prompt", got)
	}

	if got := r.Respond(""); got != shortPrompt {
		t.Fatalf("Respond(empty) = %q, want the short prompt", got)
	}
}

func TestRespondNoRuleGenericEcho(t *testing.T) {
	r := New()

	utterance := "quantum bogosort feasibility"
	got := r.Respond(utterance)
	if got == shortPrompt {
		t.Fatalf("expected generic reply, got the short prompt")
	}
	if !strings.Contains(got, `"quantum bogosort feasibility"`) {
		t.Fatalf("expected verbatim echo in %q", got)
	}
}

func TestRespondTotalOverRuleNames(t *testing.T) {
	// Every rule reply is non-empty for a representative utterance.
	r := New()
	for _, utterance := range []string{
		"hi", "how are you", "your name", "thanks", "bye", "help",
		"weather", "time", "joke", "python", "math", "write", "define x",
	} {
		if got := r.Respond(utterance); got == "" {
			t.Fatalf("Respond(%q) returned empty reply", utterance)
		}
	}
}
