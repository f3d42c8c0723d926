package agent

import "strings"

// Fixed replies for the generation-free chat gates.
const (
	greetingReply = "Hello! I'm your daily health and fitness coach. " +
		"Ask me for a tip, your tip history, or anything about fitness, nutrition, sleep or mindfulness."
	offTopicReply = "I can only help with health and fitness topics. " +
		"Try asking for a daily tip, or a question about exercise, nutrition, sleep or mindfulness."
)

// Single-word greetings match whole tokens only, so "hi" does not fire
// inside "this"; multi-word greetings match as substrings.
var greetingWords = []string{"hello", "hi", "hey", "yo", "greetings"}

var greetingPhrases = []string{"good morning", "good afternoon", "good evening", "how are you"}

// domainKeywords gate chat generation to the agent's scope.
var domainKeywords = []string{
	"health", "fit", "workout", "exercise", "train", "gym", "run", "walk",
	"stretch", "yoga", "cardio", "muscle", "strength", "steps",
	"nutrition", "diet", "food", "eat", "meal", "protein", "calorie",
	"water", "hydrat", "sleep", "rest", "recovery", "energy",
	"mindful", "meditat", "stress", "wellness", "weight", "habit",
}

// isGreeting reports whether the utterance reads as a plain greeting.
func isGreeting(utterance string) bool {
	for _, phrase := range greetingPhrases {
		if strings.Contains(utterance, phrase) {
			return true
		}
	}
	for _, token := range strings.Fields(utterance) {
		token = strings.Trim(token, ".,!?")
		for _, w := range greetingWords {
			if token == w {
				return true
			}
		}
	}
	return false
}

// isOnTopic reports whether the utterance touches the agent's domain.
func isOnTopic(utterance string) bool {
	return containsAny(utterance, domainKeywords)
}
