package cli

import (
	"alcyxob/training-coach/internal/domain"
	"alcyxob/training-coach/internal/guided"
	"alcyxob/training-coach/internal/service"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

func printNotification(out io.Writer, n domain.Notification) {
	mark := "*"
	if n.Severity == domain.SeverityError {
		mark = "!"
	}
	fmt.Fprintf(out, "%s %s: %s\n", mark, n.Title, n.Description)
}

func printSession(out io.Writer, v guided.View) {
	fmt.Fprintf(out, "%s [%s] %d/%d pts, %d/%d done (%.0f%%)\n",
		v.Title, v.State, v.EarnedPoints, v.TotalPossiblePoints, v.CompletedCount, v.TotalExercises, v.ProgressPercent)
	for _, ex := range v.Exercises {
		mark := "[ ]"
		switch {
		case ex.Completed:
			mark = "[x]"
		case ex.Active:
			mark = "[>]"
		case !ex.Unlocked:
			mark = "[-]"
		}
		fmt.Fprintf(out, "  %s %d. %s  %sx%s  +%d\n", mark, ex.Index+1, ex.Name, ex.Sets, ex.Reps, ex.Points)
	}
}

func printPost(out io.Writer, n int, p service.PostView, now time.Time) {
	badge := ""
	if p.Author.FireMaster {
		badge = " [FIRE MASTER]"
	}
	fmt.Fprintf(out, "%d. %s%s, %s\n", n, p.Author.Name, badge, humanize.RelTime(p.CreatedAt, now, "ago", "from now"))
	for _, line := range strings.Split(p.Content, "\n") {
		fmt.Fprintf(out, "   %s\n", line)
	}
	if p.Workout != nil {
		fmt.Fprintf(out, "   > %s", p.Workout.Title)
		if p.Workout.Performance != "" {
			fmt.Fprintf(out, ": %s", p.Workout.Performance)
		}
		fmt.Fprintln(out)
	}
	liked := ""
	if p.Liked {
		liked = " (you)"
	}
	fmt.Fprintf(out, "   %d like(s)%s, %d comment(s)\n", p.Likes, liked, p.Comments)
}
