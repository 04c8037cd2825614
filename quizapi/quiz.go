package quizapi

import (
	"context"
	"net/http"

	"github.com/octabyte/quizmaster-client/models"
)

func (s *Service) Subjects(ctx context.Context) ([]models.Subject, error) {
	var out []models.Subject
	err := s.do(ctx, call{method: http.MethodGet, path: "/subjects", operation: "/subjects"}, &out)
	return out, err
}

func (s *Service) Chapters(ctx context.Context, subjectID int64) ([]models.Chapter, error) {
	var out []models.Chapter
	err := s.do(ctx, call{
		method:    http.MethodGet,
		path:      "/subjects/" + id(subjectID) + "/chapters",
		operation: "/subjects/{id}/chapters",
	}, &out)
	return out, err
}

func (s *Service) Quizzes(ctx context.Context, chapterID int64) ([]models.Quiz, error) {
	var out []models.Quiz
	err := s.do(ctx, call{
		method:    http.MethodGet,
		path:      "/chapters/" + id(chapterID) + "/quizzes",
		operation: "/chapters/{id}/quizzes",
	}, &out)
	return out, err
}

func (s *Service) FullQuiz(ctx context.Context, quizID int64) (models.FullQuiz, error) {
	var out models.FullQuiz
	err := s.do(ctx, call{
		method:    http.MethodGet,
		path:      "/quizzes/" + id(quizID) + "/full",
		operation: "/quizzes/{id}/full",
	}, &out)
	return out, err
}

func (s *Service) StartAttempt(ctx context.Context, quizID int64) (models.AttemptStart, error) {
	var out models.AttemptStart
	err := s.do(ctx, call{
		method:    http.MethodPost,
		path:      "/quizzes/" + id(quizID) + "/start",
		operation: "/quizzes/{id}/start",
	}, &out)
	return out, err
}

func (s *Service) SubmitAttempt(ctx context.Context, attemptID int64, answers []models.AnswerInput) (models.AttemptResult, error) {
	var out models.AttemptResult
	in := models.AttemptSubmission{Answers: answers}
	if in.Answers == nil {
		in.Answers = []models.AnswerInput{}
	}
	if err := s.check(in); err != nil {
		return out, err
	}
	err := s.do(ctx, call{
		method:    http.MethodPost,
		path:      "/attempts/" + id(attemptID) + "/submit",
		operation: "/attempts/{id}/submit",
		body:      in,
	}, &out)
	return out, err
}

func (s *Service) Attempt(ctx context.Context, attemptID int64) (models.AttemptDetail, error) {
	var out models.AttemptDetail
	err := s.do(ctx, call{
		method:    http.MethodGet,
		path:      "/attempts/" + id(attemptID),
		operation: "/attempts/{id}",
	}, &out)
	return out, err
}

func (s *Service) UserAttempts(ctx context.Context, userID int64) ([]models.AttemptSummary, error) {
	var out []models.AttemptSummary
	err := s.do(ctx, call{
		method:    http.MethodGet,
		path:      "/users/" + id(userID) + "/attempts",
		operation: "/users/{id}/attempts",
	}, &out)
	return out, err
}

// ExportAttempts queues a CSV export of the user's attempts. The backend answers 202 with a job id.
func (s *Service) ExportAttempts(ctx context.Context, userID int64) (models.ExportJob, error) {
	var out models.ExportJob
	err := s.do(ctx, call{
		method:    http.MethodPost,
		path:      "/users/" + id(userID) + "/exports/attempts",
		operation: "/users/{id}/exports/attempts",
	}, &out)
	return out, err
}

func (s *Service) Reports(ctx context.Context, userID int64) (models.ReportListing, error) {
	var out models.ReportListing
	err := s.do(ctx, call{
		method:    http.MethodGet,
		path:      "/users/" + id(userID) + "/reports",
		operation: "/users/{id}/reports",
	}, &out)
	return out, err
}
