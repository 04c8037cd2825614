package models

type SubjectInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description,omitempty"`
}

type ChapterInput struct {
	SubjectID   int64  `json:"subject_id,omitempty" validate:"required"`
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description,omitempty"`
}

type QuizInput struct {
	ChapterID   int64  `json:"chapter_id,omitempty" validate:"required"`
	Title       string `json:"title" validate:"required,max=150"`
	ScheduledAt string `json:"scheduled_at,omitempty"`
	DurationMin int    `json:"duration_min" validate:"required,min=1"`
}

type QuestionInput struct {
	QuizID        int64  `json:"quiz_id,omitempty" validate:"required"`
	Statement     string `json:"statement" validate:"required"`
	Option1       string `json:"option1" validate:"required,max=200"`
	Option2       string `json:"option2" validate:"required,max=200"`
	Option3       string `json:"option3" validate:"required,max=200"`
	Option4       string `json:"option4" validate:"required,max=200"`
	CorrectOption int    `json:"correct_option" validate:"min=1,max=4"`
}

// PageQuery carries the pagination and free-text search parameters of admin listings.
type PageQuery struct {
	Page   int    `validate:"min=0"`
	Limit  int    `validate:"min=0,max=100"`
	Search string
}

type Page[T any] struct {
	Items []T `json:"items"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// SearchHit is one row of an admin search. Which fields are set depends on the entity.
type SearchHit struct {
	ID          int64  `json:"id"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	FullName    string `json:"full_name,omitempty"`
	Email       string `json:"email,omitempty"`
	Role        string `json:"role,omitempty"`
	Title       string `json:"title,omitempty"`
	DurationMin int    `json:"duration_min,omitempty"`
	Statement   string `json:"statement,omitempty"`
}
