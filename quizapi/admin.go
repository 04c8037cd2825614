package quizapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/octabyte/quizmaster-client/enums"
	"github.com/octabyte/quizmaster-client/models"
)

// ListSubjects pages through subjects, optionally filtered by a name search.
func (s *Service) ListSubjects(ctx context.Context, q models.PageQuery) (models.Page[models.Subject], error) {
	var out models.Page[models.Subject]
	if err := s.check(q); err != nil {
		return out, err
	}
	err := s.do(ctx, call{
		method:    http.MethodGet,
		path:      "/admin/subjects",
		operation: "/admin/subjects",
		query:     pageParams(q),
	}, &out)
	return out, err
}

func (s *Service) CreateSubject(ctx context.Context, in models.SubjectInput) (models.Created, error) {
	return s.create(ctx, "subjects", in)
}

func (s *Service) UpdateSubject(ctx context.Context, subjectID int64, in models.SubjectInput) (models.Message, error) {
	return s.update(ctx, "subjects", subjectID, in)
}

func (s *Service) DeleteSubject(ctx context.Context, subjectID int64) (models.Message, error) {
	return s.remove(ctx, "subjects", subjectID)
}

func (s *Service) CreateChapter(ctx context.Context, in models.ChapterInput) (models.Created, error) {
	return s.create(ctx, "chapters", in)
}

// UpdateChapter renames a chapter. The parent subject cannot be changed, so SubjectID is not required.
func (s *Service) UpdateChapter(ctx context.Context, chapterID int64, in models.ChapterInput) (models.Message, error) {
	return s.update(ctx, "chapters", chapterID, in, "SubjectID")
}

func (s *Service) DeleteChapter(ctx context.Context, chapterID int64) (models.Message, error) {
	return s.remove(ctx, "chapters", chapterID)
}

func (s *Service) CreateQuiz(ctx context.Context, in models.QuizInput) (models.Created, error) {
	return s.create(ctx, "quizzes", in)
}

func (s *Service) UpdateQuiz(ctx context.Context, quizID int64, in models.QuizInput) (models.Message, error) {
	return s.update(ctx, "quizzes", quizID, in, "ChapterID")
}

func (s *Service) DeleteQuiz(ctx context.Context, quizID int64) (models.Message, error) {
	return s.remove(ctx, "quizzes", quizID)
}

func (s *Service) CreateQuestion(ctx context.Context, in models.QuestionInput) (models.Created, error) {
	return s.create(ctx, "questions", in)
}

func (s *Service) UpdateQuestion(ctx context.Context, questionID int64, in models.QuestionInput) (models.Message, error) {
	return s.update(ctx, "questions", questionID, in, "QuizID")
}

func (s *Service) DeleteQuestion(ctx context.Context, questionID int64) (models.Message, error) {
	return s.remove(ctx, "questions", questionID)
}

// Search runs the admin full-text search over one entity collection. q.Search is the query text.
func (s *Service) Search(ctx context.Context, entity enums.SearchEntity, q models.PageQuery) (models.Page[models.SearchHit], error) {
	var out models.Page[models.SearchHit]
	if !entity.Valid() {
		return out, fmt.Errorf("%w: unknown search entity %q", ErrInvalidInput, entity)
	}
	if err := s.check(q); err != nil {
		return out, err
	}

	params := pageParams(q)
	delete(params, "search")
	params["entity"] = string(entity)
	params["q"] = q.Search

	err := s.do(ctx, call{
		method:    http.MethodGet,
		path:      "/admin/search",
		operation: "/admin/search",
		query:     params,
	}, &out)
	return out, err
}

// ExportQuizzes queues a CSV export of every quiz.
func (s *Service) ExportQuizzes(ctx context.Context) (models.ExportJob, error) {
	var out models.ExportJob
	err := s.do(ctx, call{method: http.MethodPost, path: "/admin/exports/quizzes", operation: "/admin/exports/quizzes"}, &out)
	return out, err
}

func (s *Service) create(ctx context.Context, collection string, in any) (models.Created, error) {
	var out models.Created
	if err := s.check(in); err != nil {
		return out, err
	}
	path := "/admin/" + collection
	err := s.do(ctx, call{method: http.MethodPost, path: path, operation: path, body: in}, &out)
	return out, err
}

func (s *Service) update(ctx context.Context, collection string, entityID int64, in any, except ...string) (models.Message, error) {
	var out models.Message
	if err := s.check(in, except...); err != nil {
		return out, err
	}
	err := s.do(ctx, call{
		method:    http.MethodPut,
		path:      "/admin/" + collection + "/" + id(entityID),
		operation: "/admin/" + collection + "/{id}",
		body:      in,
	}, &out)
	return out, err
}

func (s *Service) remove(ctx context.Context, collection string, entityID int64) (models.Message, error) {
	var out models.Message
	err := s.do(ctx, call{
		method:    http.MethodDelete,
		path:      "/admin/" + collection + "/" + id(entityID),
		operation: "/admin/" + collection + "/{id}",
	}, &out)
	return out, err
}
