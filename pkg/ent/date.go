package ent

import (
	"fmt"
	"time"
)

var (
	frenchWeekdays = [...]string{"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi"}
	frenchMonths   = [...]string{
		"janvier", "février", "mars", "avril", "mai", "juin",
		"juillet", "août", "septembre", "octobre", "novembre", "décembre",
	}
)

// FormatFrenchDate renders t the way the portal's web mail quotes dates,
// e.g. "lundi 2 janvier 2006 à 15:04".
func FormatFrenchDate(t time.Time) string {
	return fmt.Sprintf("%s %d %s %d à %02d:%02d",
		frenchWeekdays[t.Weekday()], t.Day(), frenchMonths[t.Month()-1], t.Year(), t.Hour(), t.Minute())
}
