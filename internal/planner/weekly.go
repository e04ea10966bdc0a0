// Package planner holds the client-side weekly meal plan. The plan lives
// only for the life of the client process and is never sent to the server as
// a unit; each assignment is validated against the server's recipe list on
// its own.
package planner

import (
	"fmt"
	"strings"
)

// Day is a day of the week.
type Day int

const (
	Monday Day = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var dayNames = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

func (d Day) String() string {
	if d < Monday || d > Sunday {
		return fmt.Sprintf("Day(%d)", int(d))
	}
	return dayNames[d]
}

// ParseDay matches a day name case-insensitively.
func ParseDay(s string) (Day, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range dayNames {
		if s == strings.ToLower(name) {
			return Day(i), nil
		}
	}
	return 0, fmt.Errorf("not a day of the week: %q", s)
}

// WeeklyMealPlan is a fixed seven-slot mapping of day to recipe name. Empty
// slots hold "".
type WeeklyMealPlan struct {
	slots [7]string
}

func NewWeeklyMealPlan() *WeeklyMealPlan {
	return &WeeklyMealPlan{}
}

// Assign puts a recipe name in the day's slot, replacing whatever was there.
func (p *WeeklyMealPlan) Assign(day Day, recipe string) {
	p.slots[day] = recipe
}

// Unassign clears the day's slot.
func (p *WeeklyMealPlan) Unassign(day Day) {
	p.slots[day] = ""
}

// Recipe returns the recipe assigned to the day, or "".
func (p *WeeklyMealPlan) Recipe(day Day) string {
	return p.slots[day]
}

// String renders the week one day per line, in the layout the terminal
// frontend prints.
func (p *WeeklyMealPlan) String() string {
	var b strings.Builder
	b.WriteString("Your current weekly plan is:\n")
	for d := Monday; d <= Sunday; d++ {
		fmt.Fprintf(&b, "%s: %s\n", d, p.slots[d])
	}
	return b.String()
}
