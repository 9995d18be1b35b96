package cli

import (
	"alcyxob/training-coach/internal/guided"
	"alcyxob/training-coach/internal/service"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const trainHelp = "commands: done, done <id>, prev, goto <n>, status, stop, start, quit"

// train runs an interactive guided session reading one command per line
// until quit or end of input.
func (a *App) train(ctx context.Context, args []string) error {
	workout, err := a.pickWorkout(ctx, args)
	if err != nil {
		return err
	}
	studentID := a.viewer().ID
	training := a.services.Training

	res, err := training.Start(ctx, studentID, workout.ID)
	if errors.Is(err, guided.ErrAlreadyTraining) {
		res, err = training.Current(ctx, studentID)
	}
	if err != nil {
		return err
	}
	a.report(res)
	fmt.Fprintln(a.out, trainHelp)

	for {
		fmt.Fprint(a.out, "> ")
		if !a.in.Scan() {
			fmt.Fprintln(a.out)
			return a.in.Err()
		}
		fields := strings.Fields(a.in.Text())
		if len(fields) == 0 {
			continue
		}

		var (
			res     *service.TrainingResult
			stepErr error
		)
		switch fields[0] {
		case "done":
			id := ""
			if len(fields) > 1 {
				id = fields[1]
			} else if id, stepErr = a.activeExerciseID(ctx); stepErr != nil {
				break
			}
			res, stepErr = training.Complete(ctx, studentID, id)
		case "prev":
			var cur int
			if cur, stepErr = a.activeIndex(ctx); stepErr == nil {
				res, stepErr = training.GoTo(ctx, studentID, cur-1)
			}
		case "goto":
			if len(fields) < 2 {
				stepErr = fmt.Errorf("%w: goto <n>", ErrUsage)
				break
			}
			n, convErr := strconv.Atoi(fields[1])
			if convErr != nil {
				stepErr = fmt.Errorf("%w: goto <n>", ErrUsage)
				break
			}
			res, stepErr = training.GoTo(ctx, studentID, n-1)
		case "status":
			res, stepErr = training.Current(ctx, studentID)
		case "stop":
			res, stepErr = training.Stop(ctx, studentID)
		case "start":
			res, stepErr = training.Start(ctx, studentID, workout.ID)
		case "quit", "exit":
			return nil
		default:
			fmt.Fprintln(a.out, trainHelp)
			continue
		}

		if stepErr != nil {
			fmt.Fprintf(a.out, "! %v\n", stepErr)
			continue
		}
		if res.Noop {
			continue
		}
		a.report(res)
	}
}

func (a *App) report(res *service.TrainingResult) {
	for _, n := range res.Notifications {
		printNotification(a.out, n)
	}
	printSession(a.out, res.Session)
}

func (a *App) activeIndex(ctx context.Context) (int, error) {
	res, err := a.services.Training.Current(ctx, a.viewer().ID)
	if err != nil {
		return 0, err
	}
	if res.Session.CurrentIndex == nil {
		return 0, guided.ErrNotTraining
	}
	return *res.Session.CurrentIndex, nil
}

func (a *App) activeExerciseID(ctx context.Context) (string, error) {
	res, err := a.services.Training.Current(ctx, a.viewer().ID)
	if err != nil {
		return "", err
	}
	if res.Session.CurrentIndex == nil {
		return "", guided.ErrNotTraining
	}
	return res.Session.Exercises[*res.Session.CurrentIndex].ID, nil
}
