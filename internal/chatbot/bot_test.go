package chatbot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fixedBot() *Bot {
	return &Bot{pick: func(n int) int { return 0 }}
}

func TestGreetingUsesName(t *testing.T) {
	b := fixedBot()
	assert.Equal(t, "Hello Asha Rao! How can I help you today?",
		b.Respond("Hi there", "Asha Rao", TypeStudent))
}

func TestCampusQuestions(t *testing.T) {
	b := fixedBot()

	reply := b.Respond("Where can I find the campus map?", "A", TypeStudent)
	assert.Contains(t, reply, "campus map")

	reply = b.Respond("What are the campus hours?", "A", TypeStudent)
	assert.Contains(t, reply, "7:00 AM")

	reply = b.Respond("Tell me about the campus", "A", TypeStudent)
	assert.Contains(t, reply, "facilities")
}

func TestCourseQuestions(t *testing.T) {
	b := fixedBot()

	reply := b.Respond("How do I register for a course?", "A", TypeStudent)
	assert.Contains(t, reply, "registration")

	reply = b.Respond("Where is my class schedule?", "A", TypeStudent)
	assert.Contains(t, reply, "schedule")
}

func TestAnswersDependOnUserType(t *testing.T) {
	b := fixedBot()

	faculty := b.Respond("How do I enter a grade?", "Dr. K", TypeFaculty)
	assert.Contains(t, faculty, "Faculty Portal")

	student := b.Respond("Where can I see my grade?", "S", TypeStudent)
	assert.Contains(t, student, "student portal")

	assignment := b.Respond("Where do I submit my assignment?", "S", TypeStudent)
	assert.Contains(t, assignment, "Assignments")
}

func TestFallbackResponse(t *testing.T) {
	b := fixedBot()
	assert.Equal(t, defaultResponses[0],
		b.Respond("quantum entanglement cafeteria", "A", TypeStudent))
}
