// Package cli is the terminal front end: one person, one persisted session,
// and an interactive guided run.
package cli

import (
	"alcyxob/training-coach/internal/domain"
	"alcyxob/training-coach/internal/service"
	"alcyxob/training-coach/internal/session"
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrUsage        = errors.New("usage error")
	ErrUnknownInput = errors.New("no such item")
)

// RedirectError is returned when the route guard refuses a command.
type RedirectError struct {
	Location string
	Notice   *domain.Notification
}

func (e *RedirectError) Error() string {
	if e.Notice != nil {
		return fmt.Sprintf("%s: %s (go to %s)", e.Notice.Title, e.Notice.Description, e.Location)
	}
	return "please log in (go to " + e.Location + ")"
}

// App dispatches one command line against the session store and services.
type App struct {
	store    *session.Store
	services service.Services
	in       *bufio.Scanner
	out      io.Writer
}

func New(store *session.Store, services service.Services, in io.Reader, out io.Writer) *App {
	return &App{
		store:    store,
		services: services,
		in:       bufio.NewScanner(in),
		out:      out,
	}
}

type command struct {
	name    string
	usage   string
	role    domain.Role // RoleUnset: either role
	public  bool        // skips the guard
	self    bool        // only needs a session; the role may be unset
	handler func(a *App, ctx context.Context, args []string) error
}

var commands = []command{
	{name: "register", usage: "register --name N --email E --password P --role trainer|student", public: true, handler: (*App).register},
	{name: "login", usage: "login --email E --password P", public: true, handler: (*App).login},
	{name: "logout", usage: "logout", public: true, handler: (*App).logout},
	{name: "whoami", usage: "whoami", self: true, handler: (*App).whoami},
	{name: "workouts", usage: "workouts", handler: (*App).workouts},
	{name: "show", usage: "show <n|workout id>", handler: (*App).show},
	{name: "students", usage: "students", role: domain.RoleTrainer, handler: (*App).students},
	{name: "train", usage: "train <n|workout id>", role: domain.RoleStudent, handler: (*App).train},
	{name: "stats", usage: "stats", role: domain.RoleStudent, handler: (*App).stats},
	{name: "challenges", usage: "challenges", handler: (*App).challenges},
	{name: "join", usage: "join <n|challenge id>", handler: (*App).join},
	{name: "feed", usage: "feed", handler: (*App).feed},
	{name: "post", usage: "post [--workout n|id] [--performance TEXT] <text...>", handler: (*App).post},
	{name: "like", usage: "like <n|post id>", handler: (*App).like},
	{name: "share", usage: "share <n|post id>", handler: (*App).share},
}

// Run executes args[0] with the remaining arguments.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] == "help" {
		a.usage()
		if len(args) == 0 {
			return ErrUsage
		}
		return nil
	}
	for _, cmd := range commands {
		if cmd.name != args[0] {
			continue
		}
		switch {
		case cmd.public:
		case cmd.self:
			if a.store.Current() == nil {
				return &RedirectError{Location: session.LoginPath}
			}
		default:
			if err := a.guard(cmd.role); err != nil {
				return err
			}
		}
		return cmd.handler(a, ctx, args[1:])
	}
	a.usage()
	return fmt.Errorf("%w: unknown command %q", ErrUsage, args[0])
}

func (a *App) usage() {
	fmt.Fprintln(a.out, "Usage: coach [--config DIR] <command>")
	for _, cmd := range commands {
		fmt.Fprintln(a.out, "  "+cmd.usage)
	}
}

// guard applies the route guard. Role-agnostic commands still need a session
// with a role.
func (a *App) guard(required domain.Role) error {
	current := a.store.Current()
	var decision session.Decision
	if required == domain.RoleUnset {
		decision = session.GuardAnyRole(current)
	} else {
		decision = session.Guard(current, required)
	}
	if decision.Outcome == session.Allow {
		return nil
	}
	if decision.Notice != nil {
		printNotification(a.out, *decision.Notice)
	}
	return &RedirectError{Location: decision.Location, Notice: decision.Notice}
}

func (a *App) viewer() service.Viewer {
	u := a.store.Current()
	return service.Viewer{ID: u.ID, Role: u.Role}
}

func newFlagSet(name string, out io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(out)
	return fs
}

func (a *App) register(ctx context.Context, args []string) error {
	fs := newFlagSet("register", a.out)
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	role := fs.String("role", "", "trainer or student")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	parsed, _ := domain.ParseRole(*role)
	user, err := a.store.Register(ctx, *name, *email, *password, parsed)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Welcome, %s! You are registered as a %s.\n", user.Name, user.Role)
	fmt.Fprintf(a.out, "-> %s\n", user.Role.Home())
	return nil
}

func (a *App) login(ctx context.Context, args []string) error {
	fs := newFlagSet("login", a.out)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	user, err := a.store.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Logged in as %s (%s).\n", user.Name, user.Role)
	fmt.Fprintf(a.out, "-> %s\n", user.Role.Home())
	return nil
}

func (a *App) logout(ctx context.Context, _ []string) error {
	a.store.Logout(ctx)
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *App) whoami(_ context.Context, _ []string) error {
	u := a.store.Current()
	fmt.Fprintf(a.out, "%s <%s>\nrole: %s\nhome: %s\n", u.Name, u.Email, u.Role, u.Role.Home())
	return nil
}

func (a *App) workouts(ctx context.Context, _ []string) error {
	workouts, err := a.services.Catalog.ListWorkouts(ctx, a.viewer())
	if err != nil {
		return err
	}
	if len(workouts) == 0 {
		fmt.Fprintln(a.out, "No workouts yet.")
		return nil
	}
	for i, w := range workouts {
		fmt.Fprintf(a.out, "%d. %s [%s] %d exercises, %d pts  (%s)\n", i+1, w.Title, w.Type, len(w.Exercises), w.TotalPoints(), w.ID.Hex())
	}
	return nil
}

func (a *App) show(ctx context.Context, args []string) error {
	workout, err := a.pickWorkout(ctx, args)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s [%s]\n", workout.Title, workout.Type)
	if workout.Description != "" {
		fmt.Fprintln(a.out, workout.Description)
	}
	for i, ex := range workout.Exercises {
		fmt.Fprintf(a.out, "%d. %s  %sx%s  rest %s  +%d\n", i+1, ex.Name, ex.Sets, ex.Reps, ex.Rest, ex.Points)
		if ex.Instructions != "" {
			fmt.Fprintf(a.out, "   %s\n", ex.Instructions)
		}
	}
	fmt.Fprintf(a.out, "Total: %d pts\n", workout.TotalPoints())
	return nil
}

func (a *App) students(ctx context.Context, _ []string) error {
	students, err := a.services.Catalog.ListStudents(ctx, a.viewer().ID)
	if err != nil {
		return err
	}
	for _, s := range students {
		fmt.Fprintf(a.out, "- %s <%s>\n", s.Name, s.Email)
	}
	return nil
}

func (a *App) stats(ctx context.Context, _ []string) error {
	stats, err := a.services.Progress.Stats(ctx, a.viewer().ID)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Level %d  %d pts (%d to level %d, %.0f%%)\n",
		stats.Level.Level, stats.TotalPoints, stats.Level.PointsToNextLevel, stats.Level.Level+1, stats.Level.Percent)
	fmt.Fprintf(a.out, "Workouts completed: %d\nStreak: %d day(s)\n", stats.WorkoutsCompleted, stats.Streak)
	for _, ach := range stats.Achievements {
		mark := " "
		if ach.Unlocked {
			mark = "x"
		}
		fmt.Fprintf(a.out, "[%s] %s: %s\n", mark, ach.Title, ach.Description)
	}
	return nil
}

func (a *App) challenges(ctx context.Context, _ []string) error {
	views, err := a.services.Challenge.List(ctx, a.viewer().ID)
	if err != nil {
		return err
	}
	for i, v := range views {
		status := fmt.Sprintf("%d days left", v.RemainingDays)
		if v.Closed {
			status = "ended"
		}
		joined := ""
		if v.Joined {
			joined = "  (joined)"
		}
		fmt.Fprintf(a.out, "%d. %s: %s  %d participants, %s, reward: %s%s\n",
			i+1, v.Title, v.Description, v.Participants, status, v.Reward, joined)
	}
	return nil
}

func (a *App) join(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: join <n|challenge id>", ErrUsage)
	}
	id, err := primitive.ObjectIDFromHex(args[0])
	if err != nil {
		views, err := a.services.Challenge.List(ctx, a.viewer().ID)
		if err != nil {
			return err
		}
		n, convErr := strconv.Atoi(args[0])
		if convErr != nil || n < 1 || n > len(views) {
			return fmt.Errorf("%w: challenge %q", ErrUnknownInput, args[0])
		}
		id = views[n-1].ID
	}
	res, err := a.services.Challenge.Join(ctx, a.viewer().ID, id)
	if err != nil {
		return err
	}
	printNotification(a.out, res.Notification)
	return nil
}

// pickWorkout resolves a 1-based position in the user's list or a workout id.
func (a *App) pickWorkout(ctx context.Context, args []string) (*domain.Workout, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%w: expected one workout number or id", ErrUsage)
	}
	viewer := a.viewer()
	if id, err := primitive.ObjectIDFromHex(args[0]); err == nil {
		return a.services.Catalog.GetWorkoutFor(ctx, viewer, id)
	}
	workouts, err := a.services.Catalog.ListWorkouts(ctx, viewer)
	if err != nil {
		return nil, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil || n < 1 || n > len(workouts) {
		return nil, fmt.Errorf("%w: workout %q", ErrUnknownInput, args[0])
	}
	return &workouts[n-1], nil
}

func (a *App) feed(ctx context.Context, _ []string) error {
	posts, err := a.services.Feed.List(ctx, a.viewer())
	if err != nil {
		return err
	}
	if len(posts) == 0 {
		fmt.Fprintln(a.out, "Nothing posted yet.")
		return nil
	}
	now := time.Now()
	for i, p := range posts {
		printPost(a.out, i+1, p, now)
	}
	return nil
}

func (a *App) post(ctx context.Context, args []string) error {
	fs := newFlagSet("post", a.out)
	workout := fs.String("workout", "", "workout number or id to link")
	performance := fs.String("performance", "", "how the linked workout went")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	in := service.NewPost{Content: strings.Join(fs.Args(), " "), Performance: *performance}
	if *workout != "" {
		w, err := a.pickWorkout(ctx, []string{*workout})
		if err != nil {
			return err
		}
		in.WorkoutID = &w.ID
	}
	res, err := a.services.Feed.Publish(ctx, a.viewer(), in)
	if err != nil {
		return err
	}
	printNotification(a.out, *res.Notification)
	return nil
}

func (a *App) like(ctx context.Context, args []string) error {
	id, err := a.pickPost(ctx, "like", args)
	if err != nil {
		return err
	}
	res, err := a.services.Feed.ToggleLike(ctx, a.viewer(), id)
	if err != nil {
		return err
	}
	if res.Notification != nil {
		printNotification(a.out, *res.Notification)
	}
	fmt.Fprintf(a.out, "%d like(s)\n", res.Post.Likes)
	return nil
}

func (a *App) share(ctx context.Context, args []string) error {
	id, err := a.pickPost(ctx, "share", args)
	if err != nil {
		return err
	}
	res, err := a.services.Feed.Share(ctx, a.viewer(), id)
	if err != nil {
		return err
	}
	printNotification(a.out, res.Notification)
	fmt.Fprintln(a.out, res.Link)
	return nil
}

// pickPost resolves a 1-based position in the feed or a post id.
func (a *App) pickPost(ctx context.Context, verb string, args []string) (primitive.ObjectID, error) {
	if len(args) != 1 {
		return primitive.NilObjectID, fmt.Errorf("%w: %s <n|post id>", ErrUsage, verb)
	}
	if id, err := primitive.ObjectIDFromHex(args[0]); err == nil {
		return id, nil
	}
	posts, err := a.services.Feed.List(ctx, a.viewer())
	if err != nil {
		return primitive.NilObjectID, err
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > len(posts) {
		return primitive.NilObjectID, fmt.Errorf("%w: post %q", ErrUnknownInput, args[0])
	}
	return posts[n-1].ID, nil
}
