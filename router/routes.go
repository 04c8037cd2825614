package router

import (
	"github.com/octabyte/quizmaster-client/enums"
	"github.com/octabyte/quizmaster-client/models"
)

const (
	LoginPath         = "/login"
	MemberLandingPath = "/subjects"
	AdminLandingPath  = "/admin/subjects"
)

// Route maps a path pattern to a page. Patterns use ":name" segments. Props marks routes whose
// path parameters are handed to the page. A route with Redirect set has no page of its own.
type Route struct {
	Pattern  string
	Name     string
	Page     enums.Page
	Props    bool
	Redirect func(state models.Session) string
}

// RootRedirect picks the landing location for the root path.
func RootRedirect(state models.Session) string {
	if state.User == nil {
		return LoginPath
	}
	if state.User.IsAdmin() {
		return AdminLandingPath
	}
	return MemberLandingPath
}

// Routes is the navigation table of the front-end.
var Routes = []Route{
	{Pattern: "/", Redirect: RootRedirect},
	{Pattern: LoginPath, Page: enums.PageLogin},
	{Pattern: "/register", Page: enums.PageRegister},
	{Pattern: MemberLandingPath, Name: "subjects", Page: enums.PageSubjects},
	{Pattern: "/chapters/:subject_id", Name: "chapters", Page: enums.PageChapters, Props: true},
	{Pattern: "/quizzes/:chapter_id", Name: "quizzes", Page: enums.PageQuizzes, Props: true},
	{Pattern: "/quiz/:quiz_id", Name: "quiz-detail", Page: enums.PageQuizDetail, Props: true},
	{Pattern: "/attempt/:attempt_id", Name: "attempt-detail", Page: enums.PageAttemptDetail, Props: true},
	{Pattern: AdminLandingPath, Name: "admin-subjects", Page: enums.PageAdminSubjects},
	{Pattern: "/admin/chapters", Name: "admin-chapters", Page: enums.PageAdminChapters},
	{Pattern: "/admin/quizzes", Name: "admin-quizzes", Page: enums.PageAdminQuizzes},
	{Pattern: "/admin/questions", Name: "admin-questions", Page: enums.PageAdminQuestions},
	{Pattern: "/leaderboard/quiz/:quiz_id", Name: "quiz-leaderboard", Page: enums.PageQuizLeaderboard, Props: true},
	{Pattern: "/leaderboard/user/:user_id", Name: "user-ranking", Page: enums.PageUserRanking, Props: true},
	{Pattern: "/analytics/user/:user_id", Name: "monthly-analytics", Page: enums.PageMonthlyAnalytics, Props: true},
	{Pattern: "/analytics/quiz/:quiz_id", Name: "quiz-difficulty", Page: enums.PageQuizDifficulty, Props: true},
	{Pattern: "/reports", Name: "reports", Page: enums.PageReports},
	{Pattern: "/settings", Name: "settings", Page: enums.PageSettings},
	{Pattern: "/exports/:user_id", Name: "exports", Page: enums.PageExports, Props: true},
	{Pattern: "/history/:user_id", Name: "history", Page: enums.PageHistory, Props: true},
	{Pattern: "/profile", Name: "profile", Page: enums.PageProfile},
}
