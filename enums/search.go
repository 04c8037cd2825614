package enums

// SearchEntity names the collections accepted by the admin search endpoint.
type SearchEntity string

const (
	SearchUsers     SearchEntity = "users"
	SearchSubjects  SearchEntity = "subjects"
	SearchQuizzes   SearchEntity = "quizzes"
	SearchQuestions SearchEntity = "questions"
)

func (e SearchEntity) Valid() bool {
	switch e {
	case SearchUsers, SearchSubjects, SearchQuizzes, SearchQuestions:
		return true
	}
	return false
}
