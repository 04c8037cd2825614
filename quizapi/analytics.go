package quizapi

import (
	"context"
	"net/http"
	"strconv"

	"github.com/octabyte/quizmaster-client/models"
)

func (s *Service) HardestQuizzes(ctx context.Context) ([]models.HardQuiz, error) {
	var out []models.HardQuiz
	err := s.do(ctx, call{method: http.MethodGet, path: "/analytics/quizzes/hardest", operation: "/analytics/quizzes/hardest"}, &out)
	return out, err
}

// QuizLeaderboard returns the best scores of a quiz. A limit of zero uses the backend default.
func (s *Service) QuizLeaderboard(ctx context.Context, quizID int64, limit int) ([]models.LeaderboardEntry, error) {
	var out []models.LeaderboardEntry
	c := call{
		method:    http.MethodGet,
		path:      "/leaderboard/quiz/" + id(quizID),
		operation: "/leaderboard/quiz/{id}",
	}
	if limit > 0 {
		c.query = map[string]string{"limit": strconv.Itoa(limit)}
	}
	err := s.do(ctx, c, &out)
	return out, err
}

func (s *Service) UserRanking(ctx context.Context, userID int64) (models.UserRanking, error) {
	var out models.UserRanking
	err := s.do(ctx, call{
		method:    http.MethodGet,
		path:      "/leaderboard/user/" + id(userID),
		operation: "/leaderboard/user/{id}",
	}, &out)
	return out, err
}

func (s *Service) MonthlyAnalytics(ctx context.Context, userID int64) ([]models.MonthlyScore, error) {
	var out []models.MonthlyScore
	err := s.do(ctx, call{
		method:    http.MethodGet,
		path:      "/analytics/user/" + id(userID) + "/monthly",
		operation: "/analytics/user/{id}/monthly",
	}, &out)
	return out, err
}

func (s *Service) QuizDifficulty(ctx context.Context, quizID int64) ([]models.QuestionDifficulty, error) {
	var out []models.QuestionDifficulty
	err := s.do(ctx, call{
		method:    http.MethodGet,
		path:      "/analytics/quiz/" + id(quizID) + "/difficulty",
		operation: "/analytics/quiz/{id}/difficulty",
	}, &out)
	return out, err
}

func (s *Service) AdminSummary(ctx context.Context) (models.AdminSummary, error) {
	var out models.AdminSummary
	err := s.do(ctx, call{method: http.MethodGet, path: "/summary/admin", operation: "/summary/admin"}, &out)
	return out, err
}

func (s *Service) UserSummary(ctx context.Context) (models.UserSummary, error) {
	var out models.UserSummary
	err := s.do(ctx, call{method: http.MethodGet, path: "/summary/user", operation: "/summary/user"}, &out)
	return out, err
}
