package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/octabyte/quizmaster-client/apiclient"
	"github.com/octabyte/quizmaster-client/models"
	"github.com/octabyte/quizmaster-client/utils"
	"github.com/octabyte/quizmaster-client/utils/logger"
)

var (
	ErrUsage          = errors.New("usage")
	ErrSessionExpired = errors.New("session expired, please log in again")
	ErrNotLoggedIn    = errors.New("not logged in")
)

type command struct {
	name    string
	usage   string
	summary string
	run     func(ctx context.Context, a *App, args []string) error
}

var commands []command

func init() {
	commands = []command{
		{"login", "login -email E -password P", "log in and store the access token", runLogin},
		{"register", "register -email E -password P -name N [-qualification Q] [-dob YYYY-MM-DD]", "create an account", runRegister},
		{"logout", "logout", "forget the stored access token", runLogout},
		{"whoami", "whoami", "show the logged-in user", runWhoami},
		{"route", "route PATH", "resolve a front-end location", runRoute},
		{"routes", "routes", "list front-end routes", runRoutes},
		{"subjects", "subjects", "list subjects", runSubjects},
		{"chapters", "chapters SUBJECT_ID", "list chapters of a subject", runChapters},
		{"quizzes", "quizzes CHAPTER_ID", "list quizzes of a chapter", runQuizzes},
		{"quiz", "quiz QUIZ_ID", "show a quiz with its questions", runQuiz},
		{"start", "start QUIZ_ID", "start an attempt", runStart},
		{"submit", "submit ATTEMPT_ID QUESTION_ID=OPTION...", "submit answers", runSubmit},
		{"attempt", "attempt ATTEMPT_ID", "show an attempt", runAttempt},
		{"attempts", "attempts [USER_ID]", "list attempts", runAttempts},
		{"export-attempts", "export-attempts [USER_ID]", "queue a CSV export of attempts", runExportAttempts},
		{"reports", "reports [USER_ID]", "list generated reports and exports", runReports},
		{"leaderboard", "leaderboard [-limit N] QUIZ_ID", "best scores of a quiz", runLeaderboard},
		{"ranking", "ranking [USER_ID]", "overall ranking of a user", runRanking},
		{"monthly", "monthly [USER_ID]", "average score per month", runMonthly},
		{"difficulty", "difficulty QUIZ_ID", "per-question success rate", runDifficulty},
		{"hardest", "hardest", "quizzes with the lowest average score", runHardest},
		{"summary", "summary", "dashboard summary for the current role", runSummary},
		{"admin", "admin SUBCOMMAND ...", "manage content (admin only)", runAdmin},
	}
}

// Run executes one command. A 401 from the API ends the local session.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.usage()
		return ErrUsage
	}

	cmd, ok := lookup(args[0])
	if !ok {
		a.usage()
		return fmt.Errorf("%w: unknown command %q", ErrUsage, args[0])
	}

	err := cmd.run(ctx, a, args[1:])
	if apiclient.IsUnauthorized(err) && a.session.Snapshot().Authenticated() {
		logger.LogInfo("api rejected the stored token, logging out", zap.String("command", cmd.name))
		if logoutErr := a.session.Logout(ctx); logoutErr != nil {
			return errors.Join(ErrSessionExpired, logoutErr)
		}
		return fmt.Errorf("%w: %v", ErrSessionExpired, err)
	}
	return err
}

func lookup(name string) (command, bool) {
	for _, cmd := range commands {
		if cmd.name == name {
			return cmd, true
		}
	}
	return command{}, false
}

func (a *App) usage() {
	fmt.Fprintln(a.out, "usage: quizctl [flags] COMMAND [args]")
	fmt.Fprintln(a.out)
	for _, cmd := range commands {
		fmt.Fprintf(a.out, "  %-68s %s\n", cmd.usage, cmd.summary)
	}
}

func (a *App) print(v any) error {
	data, err := utils.ToIndentedJSON(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.out, string(data))
	return err
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrUsage, fs.Name(), err)
	}
	return nil
}

func idArg(args []string, i int, name string) (int64, error) {
	if i >= len(args) {
		return 0, fmt.Errorf("%w: missing %s", ErrUsage, name)
	}
	v, err := strconv.ParseInt(args[i], 10, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer, got %q", ErrUsage, name, args[i])
	}
	return v, nil
}

// userArg returns the user id given at args[i], defaulting to the logged-in user.
func (a *App) userArg(args []string, i int) (int64, error) {
	if i < len(args) {
		return idArg(args, i, "USER_ID")
	}
	current := a.session.Snapshot()
	if current.User == nil {
		return 0, ErrNotLoggedIn
	}
	v, err := strconv.ParseInt(current.User.ID, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("token subject %q is not a numeric user id", current.User.ID)
	}
	return v, nil
}

func runLogin(ctx context.Context, a *App, args []string) error {
	fs := newFlagSet("login")
	var creds models.Credentials
	fs.StringVar(&creds.Email, "email", "", "account email")
	fs.StringVar(&creds.Password, "password", "", "account password")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	tok, err := a.api.Login(ctx, creds)
	if err != nil {
		return err
	}
	if err := a.session.Login(ctx, tok.AccessToken); err != nil {
		return err
	}

	current := a.session.Snapshot()
	if !current.Authenticated() {
		return errors.New("the server issued a token that could not be decoded")
	}
	return a.print(map[string]any{"user": current.User})
}

func runRegister(ctx context.Context, a *App, args []string) error {
	fs := newFlagSet("register")
	var in models.RegisterRequest
	fs.StringVar(&in.Email, "email", "", "account email")
	fs.StringVar(&in.Password, "password", "", "account password (at least 6 characters)")
	fs.StringVar(&in.FullName, "name", "", "full name")
	fs.StringVar(&in.Qualification, "qualification", "", "qualification")
	fs.StringVar(&in.DOB, "dob", "", "date of birth, YYYY-MM-DD")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	out, err := a.api.Register(ctx, in)
	if err != nil {
		return err
	}
	return a.print(out)
}

func runLogout(ctx context.Context, a *App, _ []string) error {
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	return a.print(models.Message{Msg: "logged out"})
}

func runWhoami(_ context.Context, a *App, _ []string) error {
	current := a.session.Snapshot()
	return a.print(map[string]any{"authenticated": current.Authenticated(), "user": current.User})
}

func runRoute(_ context.Context, a *App, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: route PATH", ErrUsage)
	}
	res, err := a.router.Follow(args[0], a.session.Snapshot())
	if err != nil {
		return err
	}
	return a.print(res)
}

func runRoutes(_ context.Context, a *App, _ []string) error {
	type row struct {
		Pattern  string `json:"pattern"`
		Name     string `json:"name,omitempty"`
		Page     string `json:"page,omitempty"`
		Props    bool   `json:"props,omitempty"`
		Redirect bool   `json:"redirect,omitempty"`
	}
	routes := a.router.Routes()
	rows := make([]row, 0, len(routes))
	for _, r := range routes {
		rows = append(rows, row{Pattern: r.Pattern, Name: r.Name, Page: string(r.Page), Props: r.Props, Redirect: r.Redirect != nil})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Pattern < rows[j].Pattern })
	return a.print(rows)
}

func runSubjects(ctx context.Context, a *App, _ []string) error {
	out, err := a.api.Subjects(ctx)
	if err != nil {
		return err
	}
	return a.print(out)
}

func runChapters(ctx context.Context, a *App, args []string) error {
	subjectID, err := idArg(args, 0, "SUBJECT_ID")
	if err != nil {
		return err
	}
	out, err := a.api.Chapters(ctx, subjectID)
	if err != nil {
		return err
	}
	return a.print(out)
}

func runQuizzes(ctx context.Context, a *App, args []string) error {
	chapterID, err := idArg(args, 0, "CHAPTER_ID")
	if err != nil {
		return err
	}
	out, err := a.api.Quizzes(ctx, chapterID)
	if err != nil {
		return err
	}
	for i := range out {
		if out[i].ScheduledAt != "" {
			out[i].ScheduledAt = utils.LocalizeBackendTime(out[i].ScheduledAt, a.cfg.Timezone)
		}
	}
	return a.print(out)
}

func runQuiz(ctx context.Context, a *App, args []string) error {
	quizID, err := idArg(args, 0, "QUIZ_ID")
	if err != nil {
		return err
	}
	out, err := a.api.FullQuiz(ctx, quizID)
	if err != nil {
		return err
	}
	return a.print(out)
}

func runStart(ctx context.Context, a *App, args []string) error {
	quizID, err := idArg(args, 0, "QUIZ_ID")
	if err != nil {
		return err
	}
	out, err := a.api.StartAttempt(ctx, quizID)
	if err != nil {
		return err
	}
	out.StartedAt = utils.LocalizeBackendTime(out.StartedAt, a.cfg.Timezone)
	return a.print(out)
}

func runSubmit(ctx context.Context, a *App, args []string) error {
	attemptID, err := idArg(args, 0, "ATTEMPT_ID")
	if err != nil {
		return err
	}

	answers := make([]models.AnswerInput, 0, len(args)-1)
	for _, arg := range args[1:] {
		q, opt, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("%w: answer %q is not QUESTION_ID=OPTION", ErrUsage, arg)
		}
		questionID, err := strconv.ParseInt(q, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: question id %q", ErrUsage, q)
		}
		option, err := strconv.Atoi(opt)
		if err != nil {
			return fmt.Errorf("%w: option %q", ErrUsage, opt)
		}
		answers = append(answers, models.AnswerInput{QuestionID: questionID, SelectedOption: option})
	}

	out, err := a.api.SubmitAttempt(ctx, attemptID, answers)
	if err != nil {
		return err
	}
	return a.print(out)
}

func runAttempt(ctx context.Context, a *App, args []string) error {
	attemptID, err := idArg(args, 0, "ATTEMPT_ID")
	if err != nil {
		return err
	}
	out, err := a.api.Attempt(ctx, attemptID)
	if err != nil {
		return err
	}
	if out.SubmittedAt != nil {
		local := utils.LocalizeBackendTime(*out.SubmittedAt, a.cfg.Timezone)
		out.SubmittedAt = &local
	}
	return a.print(out)
}

func runAttempts(ctx context.Context, a *App, args []string) error {
	userID, err := a.userArg(args, 0)
	if err != nil {
		return err
	}
	out, err := a.api.UserAttempts(ctx, userID)
	if err != nil {
		return err
	}
	for i := range out {
		if out[i].SubmittedAt != nil {
			local := utils.LocalizeBackendTime(*out[i].SubmittedAt, a.cfg.Timezone)
			out[i].SubmittedAt = &local
		}
	}
	return a.print(out)
}

func runExportAttempts(ctx context.Context, a *App, args []string) error {
	userID, err := a.userArg(args, 0)
	if err != nil {
		return err
	}
	out, err := a.api.ExportAttempts(ctx, userID)
	if err != nil {
		return err
	}
	return a.print(out)
}

func runReports(ctx context.Context, a *App, args []string) error {
	userID, err := a.userArg(args, 0)
	if err != nil {
		return err
	}
	out, err := a.api.Reports(ctx, userID)
	if err != nil {
		return err
	}
	return a.print(out)
}

func runLeaderboard(ctx context.Context, a *App, args []string) error {
	fs := newFlagSet("leaderboard")
	limit := fs.Int("limit", 0, "number of entries (backend default when 0)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	quizID, err := idArg(fs.Args(), 0, "QUIZ_ID")
	if err != nil {
		return err
	}
	out, err := a.api.QuizLeaderboard(ctx, quizID, *limit)
	if err != nil {
		return err
	}
	return a.print(out)
}

func runRanking(ctx context.Context, a *App, args []string) error {
	userID, err := a.userArg(args, 0)
	if err != nil {
		return err
	}
	out, err := a.api.UserRanking(ctx, userID)
	if err != nil {
		return err
	}
	return a.print(out)
}

func runMonthly(ctx context.Context, a *App, args []string) error {
	userID, err := a.userArg(args, 0)
	if err != nil {
		return err
	}
	out, err := a.api.MonthlyAnalytics(ctx, userID)
	if err != nil {
		return err
	}
	return a.print(out)
}

func runDifficulty(ctx context.Context, a *App, args []string) error {
	quizID, err := idArg(args, 0, "QUIZ_ID")
	if err != nil {
		return err
	}
	out, err := a.api.QuizDifficulty(ctx, quizID)
	if err != nil {
		return err
	}
	return a.print(out)
}

func runHardest(ctx context.Context, a *App, _ []string) error {
	out, err := a.api.HardestQuizzes(ctx)
	if err != nil {
		return err
	}
	return a.print(out)
}

func runSummary(ctx context.Context, a *App, _ []string) error {
	if a.session.Snapshot().IsAdmin() {
		out, err := a.api.AdminSummary(ctx)
		if err != nil {
			return err
		}
		return a.print(out)
	}
	out, err := a.api.UserSummary(ctx)
	if err != nil {
		return err
	}
	return a.print(out)
}
