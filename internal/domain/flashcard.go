package domain

import (
	"strconv"
	"strings"
)

// Flashcard is a single question/answer study unit with an optional
// explanation. It is a value object: two cards with the same fields are the
// same card.
type Flashcard struct {
	Front       string `json:"front" yaml:"front"`
	Back        string `json:"back" yaml:"back"`
	Explanation string `json:"explanation,omitempty" yaml:"explanation,omitempty"`
}

// Validate checks that both sides of the card carry text.
func (f Flashcard) Validate() error {
	if strings.TrimSpace(f.Front) == "" {
		return ErrEmptyFront
	}
	if strings.TrimSpace(f.Back) == "" {
		return ErrEmptyBack
	}
	return nil
}

// HasExplanation reports whether the card carries an explanation.
func (f Flashcard) HasExplanation() bool {
	return strings.TrimSpace(f.Explanation) != ""
}

// FlashcardSet is a titled, ordered collection of flashcards produced by one
// generation request. Cards keep the order in which the model emitted them.
type FlashcardSet struct {
	Title      string      `json:"title" yaml:"title"`
	Flashcards []Flashcard `json:"flashcards" yaml:"flashcards"`
}

// NewFlashcardSet builds a set from a title and cards, validating both. The
// card slice is copied so later changes by the caller do not leak in.
func NewFlashcardSet(title string, cards []Flashcard) (*FlashcardSet, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrEmptyTitle
	}

	copied := make([]Flashcard, len(cards))
	copy(copied, cards)

	for i, card := range copied {
		if err := card.Validate(); err != nil {
			return nil, NewValidationError(
				"flashcards["+strconv.Itoa(i)+"]",
				err.Error(),
				err,
			)
		}
	}

	return &FlashcardSet{Title: title, Flashcards: copied}, nil
}

// NewFallbackSet returns the empty set substituted when a model reply cannot
// be parsed. Its title is the requested topic.
func NewFallbackSet(topic string) *FlashcardSet {
	return &FlashcardSet{Title: topic, Flashcards: []Flashcard{}}
}

// Len returns the number of cards in the set.
func (s *FlashcardSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Flashcards)
}

// IsEmpty reports whether the set holds no cards.
func (s *FlashcardSet) IsEmpty() bool {
	return s.Len() == 0
}
