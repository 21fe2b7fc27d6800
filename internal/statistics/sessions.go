package statistics

import (
	"time"

	"github.com/at-ishikawa/quickcards/internal/flashcard"
)

func calendarDay(t time.Time, loc *time.Location) time.Time {
	year, month, day := t.In(loc).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

// DayStreak counts consecutive calendar days, walking back from today in
// now's location, that have at least one session. The walk stops at the first
// day without a session, so no session today means a streak of 0.
func DayStreak(sessions []flashcard.StudySession, now time.Time) int {
	loc := now.Location()
	days := make(map[time.Time]struct{}, len(sessions))
	for _, s := range sessions {
		if s.StartTime.IsZero() {
			continue
		}
		days[calendarDay(s.StartTime.Time, loc)] = struct{}{}
	}

	streak := 0
	for day := calendarDay(now, loc); ; day = day.AddDate(0, 0, -1) {
		if _, ok := days[day]; !ok {
			return streak
		}
		streak++
	}
}

// TotalStudyTime sums the duration of completed sessions.
func TotalStudyTime(sessions []flashcard.StudySession) time.Duration {
	var total time.Duration
	for _, s := range sessions {
		total += s.Duration()
	}
	return total
}

// CardsStudiedOn sums the cards studied in sessions started on day's calendar date.
func CardsStudiedOn(sessions []flashcard.StudySession, day time.Time) int {
	loc := day.Location()
	target := calendarDay(day, loc)
	count := 0
	for _, s := range sessions {
		if s.StartTime.IsZero() {
			continue
		}
		if calendarDay(s.StartTime.Time, loc).Equal(target) {
			count += s.CardsStudied
		}
	}
	return count
}

// ActivityDays is the length of the activity chart.
const ActivityDays = 7

// DayActivity is the number of cards studied on one calendar day.
type DayActivity struct {
	Day          time.Time
	CardsStudied int
}

// RecentActivity returns the cards studied on each of the last days calendar
// days in now's location, oldest first and ending with today.
func RecentActivity(sessions []flashcard.StudySession, now time.Time, days int) []DayActivity {
	if days <= 0 {
		return nil
	}
	today := calendarDay(now, now.Location())
	activity := make([]DayActivity, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		activity = append(activity, DayActivity{
			Day:          day,
			CardsStudied: CardsStudiedOn(sessions, day),
		})
	}
	return activity
}
