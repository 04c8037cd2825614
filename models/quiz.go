package models

type Subject struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type Chapter struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type Quiz struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	DurationMin int    `json:"duration_min"`
	ScheduledAt string `json:"scheduled_at,omitempty"`
}

type QuizQuestion struct {
	QuestionID int64    `json:"question_id"`
	Statement  string   `json:"statement"`
	Options    []string `json:"options"`
}

type FullQuiz struct {
	QuizID      int64          `json:"quiz_id"`
	Title       string         `json:"title"`
	DurationMin int            `json:"duration_min"`
	Questions   []QuizQuestion `json:"questions"`
}

type AttemptStart struct {
	AttemptID int64  `json:"attempt_id"`
	StartedAt string `json:"started_at"`
}

type AnswerInput struct {
	QuestionID     int64 `json:"question_id" validate:"required"`
	SelectedOption int   `json:"selected_option" validate:"min=1,max=4"`
}

type AttemptSubmission struct {
	Answers []AnswerInput `json:"answers" validate:"dive"`
}

type AttemptResult struct {
	AttemptID int64 `json:"attempt_id"`
	Score     int   `json:"score"`
}

type AnswerDetail struct {
	QuestionID int64 `json:"question_id"`
	Selected   int   `json:"selected"`
	Correct    int   `json:"correct"`
}

type AttemptDetail struct {
	AttemptID   int64          `json:"attempt_id"`
	QuizID      int64          `json:"quiz_id"`
	Score       *int           `json:"score"`
	SubmittedAt *string        `json:"submitted_at"`
	Details     []AnswerDetail `json:"details"`
}

type AttemptSummary struct {
	ID          int64   `json:"id"`
	QuizID      int64   `json:"quiz_id"`
	Score       *int    `json:"score"`
	SubmittedAt *string `json:"submitted_at"`
}

type ReportListing struct {
	Exports []string `json:"exports"`
	Reports []string `json:"reports"`
}
