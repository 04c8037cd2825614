package models

type LeaderboardEntry struct {
	UserID   int64  `json:"user_id"`
	FullName string `json:"full_name"`
	Score    *int   `json:"score"`
}

type UserRanking struct {
	UserID     int64 `json:"user_id"`
	Ranking    *int  `json:"ranking"`
	TotalUsers int   `json:"total_users"`
}

type MonthlyScore struct {
	Period   string   `json:"period"`
	AvgScore *float64 `json:"avg_score"`
}

type QuestionDifficulty struct {
	QuestionID     int64   `json:"question_id"`
	Total          int     `json:"total"`
	Correct        int     `json:"correct"`
	PercentCorrect float64 `json:"percent_correct"`
}

type HardQuiz struct {
	QuizID       int64   `json:"quiz_id"`
	Title        string  `json:"title"`
	AverageScore float64 `json:"average_score"`
}

type AdminSummary struct {
	Users    int `json:"users"`
	Subjects int `json:"subjects"`
	Quizzes  int `json:"quizzes"`
	Attempts int `json:"attempts"`
}

type UserSummary struct {
	TotalAttempts int     `json:"total_attempts"`
	AverageScore  float64 `json:"average_score"`
	Ranking       *int    `json:"ranking"`
}
