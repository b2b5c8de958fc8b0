// Package tips rotates one-line hints about habit commands on the dashboard.
package tips

import "time"

var all = []string{
	"`habit done --date yesterday` to log a day you forgot to check off.",
	"`habit add Gym --days mon,wed,fri` to schedule a habit on specific days.",
	"`habit add \"Long run\" --days weekends` covers Saturday and Sunday.",
	"`habit show <habit>` draws a heatmap of the last few months.",
	"`habit undo` removes today's check-in if you marked the wrong habit.",
	"`habit remind --watch` nudges you on a schedule until Ctrl-C.",
	"`habit config set reminders.schedule \"0 30 20 * * *\"` moves reminders to 8:30pm.",
	"`habit export --format json` dumps every habit with its streaks.",
	"`habit export --encrypt -o habits.age` writes a passphrase-protected backup.",
	"`habit archive <habit>` pauses a habit without losing its history.",
	"`habit stats` shows your record streak and average completion rate.",
	"`habit list --all` includes archived habits.",
	"`habit edit <habit> --days weekdays` reschedules without resetting history.",
	"`habit done` with no argument lets you pick from today's habits.",
	"`habit config set habits.default_frequency weekdays` changes the default for new habits.",
	"Streaks only count days a habit is due, so rest days never break them.",
	"Milestones land at 7, 14, 21, 30, 60, 90, 100 and 365 days.",
	"Any unique 4+ character id prefix works wherever a habit title does.",
	"`HABIT_DB=/path/to/file.db habit list` points habit at another database.",
	"`habit done <habit> --note \"felt great\"` attaches a note to the check-in.",
}

// All returns all tips in the pool.
func All() []string {
	return all
}

// Daily returns a deterministic tip for the given day.
// The same tip is returned all day; it changes each day.
func Daily(t time.Time) string {
	return all[t.YearDay()%len(all)]
}
