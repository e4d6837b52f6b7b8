// Package chatbot is the keyword-matching campus assistant. It is a rule
// table, not a language model: the first matching rule wins.
package chatbot

import (
	"fmt"
	"math/rand"
	"strings"
)

// User types the bot tailors answers for.
const (
	TypeStudent = "student"
	TypeFaculty = "faculty"
)

var defaultResponses = []string{
	"I'm not sure I understand. Could you please rephrase your question?",
	"I don't have information on that topic yet. Is there something else I can help you with?",
	"That's an interesting question. Let me suggest you check with the relevant department for more accurate information.",
	"I'm still learning! Could you ask something about campus facilities, courses, or events?",
	"I'm not programmed to answer that specific question. Can I help you with something else?",
}

// Bot answers campus questions for a user.
type Bot struct {
	pick func(n int) int
}

// New creates a bot with randomized fallback responses.
func New() *Bot {
	return &Bot{pick: rand.Intn}
}

// Respond produces the bot's answer to a message from a user with the given
// display name and type (student or faculty).
func (b *Bot) Respond(message, fullName, userType string) string {
	lower := strings.ToLower(message)

	if containsAny(lower, "hi", "hello", "hey", "greetings") {
		return fmt.Sprintf("Hello %s! How can I help you today?", fullName)
	}

	if containsAny(lower, "campus", "college", "university", "school") {
		if containsAny(lower, "map", "location", "where", "find") {
			return "You can find the campus map in the Resources section. Is there a specific building you're looking for?"
		}
		if containsAny(lower, "hours", "open", "close", "timing") {
			return "The main campus is open from 7:00 AM to 10:00 PM on weekdays, and 8:00 AM to 6:00 PM on weekends."
		}
		return "Our campus offers state-of-the-art facilities including libraries, labs, sports complexes, and dining options. What would you like to know about?"
	}

	if containsAny(lower, "course", "class", "subject", "lecture", "academic") {
		if containsAny(lower, "register", "sign up", "enroll", "join") {
			return "Course registration is available through the Student Portal. The registration period for the next semester begins on August 15th."
		}
		if containsAny(lower, "schedule", "timetable", "timing") {
			return "Your course schedule can be viewed in the Academics section of your student portal."
		}
		return "We offer a wide range of courses across various disciplines. You can browse the course catalog in the Academics section."
	}

	if containsAny(lower, "event", "workshop", "seminar", "conference", "fest") {
		return "You can find upcoming events on the Events page. There are several workshops and seminars scheduled for this month."
	}

	if containsAny(lower, "app", "website", "portal", "system", "platform", "how to") {
		if containsAny(lower, "use", "navigate", "find") {
			return "Our platform has several features including messaging, posts, announcements, and groups. Is there a specific feature you need help with?"
		}
		if containsAny(lower, "problem", "issue", "error", "bug", "not working") {
			return "I'm sorry you're experiencing issues. Please try refreshing the page or clearing your cache. If the problem persists, contact our IT support at support@campusvibes.com."
		}
		return "CampusVibes is designed to enhance your campus experience by connecting you with peers, faculty, and resources. What would you like to know about using the platform?"
	}

	if userType == TypeFaculty {
		if containsAny(lower, "grade", "assessment", "evaluation", "mark") {
			return "You can enter and manage student grades through the Faculty Portal under the Assessments section."
		}
	}

	if userType == TypeStudent {
		if containsAny(lower, "assignment", "homework", "project", "submission") {
			return "You can view and submit assignments through the Assignments section in your student portal."
		}
		if containsAny(lower, "grade", "result", "score", "mark") {
			return "Your grades and academic progress can be viewed in the Academics section of your student portal."
		}
	}

	return defaultResponses[b.pick(len(defaultResponses))]
}

func containsAny(text string, keywords ...string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
