package enums

// Page identifies a screen of the front-end. The router maps URL paths onto these.
type Page string

const (
	PageLogin            Page = "login"
	PageRegister         Page = "register"
	PageSubjects         Page = "subjects"
	PageChapters         Page = "chapters"
	PageQuizzes          Page = "quizzes"
	PageQuizDetail       Page = "quiz-detail"
	PageAttemptDetail    Page = "attempt-detail"
	PageAdminSubjects    Page = "admin-subjects"
	PageAdminChapters    Page = "admin-chapters"
	PageAdminQuizzes     Page = "admin-quizzes"
	PageAdminQuestions   Page = "admin-questions"
	PageQuizLeaderboard  Page = "quiz-leaderboard"
	PageUserRanking      Page = "user-ranking"
	PageMonthlyAnalytics Page = "monthly-analytics"
	PageQuizDifficulty   Page = "quiz-difficulty"
	PageReports          Page = "reports"
	PageSettings         Page = "settings"
	PageExports          Page = "exports"
	PageHistory          Page = "history"
	PageProfile          Page = "profile"
)
