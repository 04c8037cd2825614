package cli

import (
	"context"
	"flag"
	"fmt"
	"sort"

	"github.com/octabyte/quizmaster-client/enums"
	"github.com/octabyte/quizmaster-client/models"
)

type adminCommand struct {
	usage string
	run   func(ctx context.Context, a *App, args []string) error
}

var adminCommands = map[string]adminCommand{
	"subjects":        {"admin subjects [-page N] [-limit N] [-search TEXT]", runAdminSubjects},
	"search":          {"admin search [-page N] [-limit N] ENTITY QUERY", runAdminSearch},
	"create-subject":  {"admin create-subject -name N [-description D]", runCreateSubject},
	"update-subject":  {"admin update-subject -name N [-description D] ID", runUpdateSubject},
	"create-chapter":  {"admin create-chapter -subject ID -name N [-description D]", runCreateChapter},
	"update-chapter":  {"admin update-chapter -name N [-description D] ID", runUpdateChapter},
	"create-quiz":     {"admin create-quiz -chapter ID -title T -duration MIN [-scheduled TIME]", runCreateQuiz},
	"update-quiz":     {"admin update-quiz -title T -duration MIN [-scheduled TIME] ID", runUpdateQuiz},
	"create-question": {"admin create-question -quiz ID -statement S -o1 A -o2 B -o3 C -o4 D -correct N", runCreateQuestion},
	"update-question": {"admin update-question -statement S -o1 A -o2 B -o3 C -o4 D -correct N ID", runUpdateQuestion},
	"delete":          {"admin delete subjects|chapters|quizzes|questions ID", runAdminDelete},
	"export":          {"admin export", runAdminExport},
}

func runAdmin(ctx context.Context, a *App, args []string) error {
	if len(args) == 0 {
		names := make([]string, 0, len(adminCommands))
		for name := range adminCommands {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintln(a.out, "  "+adminCommands[name].usage)
		}
		return fmt.Errorf("%w: admin SUBCOMMAND", ErrUsage)
	}
	sub, ok := adminCommands[args[0]]
	if !ok {
		return fmt.Errorf("%w: unknown admin command %q", ErrUsage, args[0])
	}
	return sub.run(ctx, a, args[1:])
}

func pageFlags(fs *flag.FlagSet, q *models.PageQuery) {
	fs.IntVar(&q.Page, "page", 0, "page number, from 1")
	fs.IntVar(&q.Limit, "limit", 0, "page size, at most 100")
}

func runAdminSubjects(ctx context.Context, a *App, args []string) error {
	fs := newFlagSet("admin subjects")
	var q models.PageQuery
	pageFlags(fs, &q)
	fs.StringVar(&q.Search, "search", "", "filter by name")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	out, err := a.api.ListSubjects(ctx, q)
	if err != nil {
		return err
	}
	return a.print(out)
}

func runAdminSearch(ctx context.Context, a *App, args []string) error {
	fs := newFlagSet("admin search")
	var q models.PageQuery
	pageFlags(fs, &q)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	rest := fs.Args()
	if len(rest) < 1 {
		return fmt.Errorf("%w: admin search ENTITY QUERY", ErrUsage)
	}
	if len(rest) > 1 {
		q.Search = rest[1]
	}
	out, err := a.api.Search(ctx, enums.SearchEntity(rest[0]), q)
	if err != nil {
		return err
	}
	return a.print(out)
}

func subjectFlags(fs *flag.FlagSet, in *models.SubjectInput) {
	fs.StringVar(&in.Name, "name", "", "subject name")
	fs.StringVar(&in.Description, "description", "", "subject description")
}

func runCreateSubject(ctx context.Context, a *App, args []string) error {
	fs := newFlagSet("admin create-subject")
	var in models.SubjectInput
	subjectFlags(fs, &in)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	out, err := a.api.CreateSubject(ctx, in)
	if err != nil {
		return err
	}
	return a.print(out)
}

func runUpdateSubject(ctx context.Context, a *App, args []string) error {
	fs := newFlagSet("admin update-subject")
	var in models.SubjectInput
	subjectFlags(fs, &in)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	id, err := idArg(fs.Args(), 0, "ID")
	if err != nil {
		return err
	}
	out, err := a.api.UpdateSubject(ctx, id, in)
	if err != nil {
		return err
	}
	return a.print(out)
}

func chapterFlags(fs *flag.FlagSet, in *models.ChapterInput) {
	fs.StringVar(&in.Name, "name", "", "chapter name")
	fs.StringVar(&in.Description, "description", "", "chapter description")
}

func runCreateChapter(ctx context.Context, a *App, args []string) error {
	fs := newFlagSet("admin create-chapter")
	var in models.ChapterInput
	chapterFlags(fs, &in)
	fs.Int64Var(&in.SubjectID, "subject", 0, "parent subject id")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	out, err := a.api.CreateChapter(ctx, in)
	if err != nil {
		return err
	}
	return a.print(out)
}

func runUpdateChapter(ctx context.Context, a *App, args []string) error {
	fs := newFlagSet("admin update-chapter")
	var in models.ChapterInput
	chapterFlags(fs, &in)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	id, err := idArg(fs.Args(), 0, "ID")
	if err != nil {
		return err
	}
	out, err := a.api.UpdateChapter(ctx, id, in)
	if err != nil {
		return err
	}
	return a.print(out)
}

func quizFlags(fs *flag.FlagSet, in *models.QuizInput) {
	fs.StringVar(&in.Title, "title", "", "quiz title")
	fs.IntVar(&in.DurationMin, "duration", 0, "duration in minutes")
	fs.StringVar(&in.ScheduledAt, "scheduled", "", "scheduled start, ISO 8601")
}

func runCreateQuiz(ctx context.Context, a *App, args []string) error {
	fs := newFlagSet("admin create-quiz")
	var in models.QuizInput
	quizFlags(fs, &in)
	fs.Int64Var(&in.ChapterID, "chapter", 0, "parent chapter id")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	out, err := a.api.CreateQuiz(ctx, in)
	if err != nil {
		return err
	}
	return a.print(out)
}

func runUpdateQuiz(ctx context.Context, a *App, args []string) error {
	fs := newFlagSet("admin update-quiz")
	var in models.QuizInput
	quizFlags(fs, &in)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	id, err := idArg(fs.Args(), 0, "ID")
	if err != nil {
		return err
	}
	out, err := a.api.UpdateQuiz(ctx, id, in)
	if err != nil {
		return err
	}
	return a.print(out)
}

func questionFlags(fs *flag.FlagSet, in *models.QuestionInput) {
	fs.StringVar(&in.Statement, "statement", "", "question text")
	fs.StringVar(&in.Option1, "o1", "", "option 1")
	fs.StringVar(&in.Option2, "o2", "", "option 2")
	fs.StringVar(&in.Option3, "o3", "", "option 3")
	fs.StringVar(&in.Option4, "o4", "", "option 4")
	fs.IntVar(&in.CorrectOption, "correct", 0, "correct option, 1 to 4")
}

func runCreateQuestion(ctx context.Context, a *App, args []string) error {
	fs := newFlagSet("admin create-question")
	var in models.QuestionInput
	questionFlags(fs, &in)
	fs.Int64Var(&in.QuizID, "quiz", 0, "parent quiz id")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	out, err := a.api.CreateQuestion(ctx, in)
	if err != nil {
		return err
	}
	return a.print(out)
}

func runUpdateQuestion(ctx context.Context, a *App, args []string) error {
	fs := newFlagSet("admin update-question")
	var in models.QuestionInput
	questionFlags(fs, &in)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	id, err := idArg(fs.Args(), 0, "ID")
	if err != nil {
		return err
	}
	out, err := a.api.UpdateQuestion(ctx, id, in)
	if err != nil {
		return err
	}
	return a.print(out)
}

func runAdminDelete(ctx context.Context, a *App, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: admin delete COLLECTION ID", ErrUsage)
	}
	id, err := idArg(args, 1, "ID")
	if err != nil {
		return err
	}

	var out models.Message
	switch args[0] {
	case "subjects":
		out, err = a.api.DeleteSubject(ctx, id)
	case "chapters":
		out, err = a.api.DeleteChapter(ctx, id)
	case "quizzes":
		out, err = a.api.DeleteQuiz(ctx, id)
	case "questions":
		out, err = a.api.DeleteQuestion(ctx, id)
	default:
		return fmt.Errorf("%w: unknown collection %q", ErrUsage, args[0])
	}
	if err != nil {
		return err
	}
	return a.print(out)
}

func runAdminExport(ctx context.Context, a *App, _ []string) error {
	out, err := a.api.ExportQuizzes(ctx)
	if err != nil {
		return err
	}
	return a.print(out)
}
