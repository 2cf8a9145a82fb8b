package generation

import "github.com/phrazzld/scry-flashgen/internal/schema"

// FlashcardSetSchema describes the JSON object the model must return for a
// flashcard request.
func FlashcardSetSchema() *schema.Schema {
	return &schema.Schema{
		Name:        "FlashcardSet",
		Description: "A titled set of study flashcards",
		Fields: []schema.Field{
			{
				Name:        "title",
				Type:        schema.TypeString,
				Required:    true,
				Description: "The title or topic of the flashcard set",
			},
			{
				Name:        "flashcards",
				Type:        schema.TypeArray,
				Required:    true,
				Description: "A list of flashcards in this set",
				Items: &schema.Field{
					Type:     schema.TypeObject,
					Required: true,
					Fields: []schema.Field{
						{
							Name:        "front",
							Type:        schema.TypeString,
							Required:    true,
							Description: "The front side of the flashcard with a question or key term",
						},
						{
							Name:        "back",
							Type:        schema.TypeString,
							Required:    true,
							Description: "The back side of the flashcard with the answer or definition",
						},
						{
							Name:        "explanation",
							Type:        schema.TypeString,
							Description: "An optional explanation or additional context",
						},
					},
				},
			},
		},
	}
}
