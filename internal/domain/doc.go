// Package domain contains the core value objects of the flashcard generator:
// flashcards, flashcard sets and the request that produces them. It has no
// knowledge of prompts, language models or delivery mechanisms.
package domain
