package entity

// Question types produced by the generator.
const (
	QuestionSingleChoice   = "single_choice"
	QuestionMultipleChoice = "multiple_choice"
	QuestionRating         = "rating"
	QuestionShortText      = "short_text"
)

// Question is a single questionnaire item.
type Question struct {
	ID       string   `json:"id"`
	Type     string   `json:"type"`
	Text     string   `json:"text"`
	Required bool     `json:"required"`
	Options  []string `json:"options,omitempty"`
}

// Questionnaire is the generated survey returned to clients.
type Questionnaire struct {
	Title     string     `json:"title"`
	Intro     string     `json:"intro"`
	Questions []Question `json:"questions"`
}
