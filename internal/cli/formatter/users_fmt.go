package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/akozyreva/somnus/internal/domain"
)

// FormatUsers renders the registered-users table for the admin CLI.
func FormatUsers(users []*domain.User) string {
	var b strings.Builder

	b.WriteString(Header(fmt.Sprintf("Users (%d)", len(users))))
	b.WriteString("\n\n")

	if len(users) == 0 {
		b.WriteString(Dim("No users registered yet.") + "\n")
		return b.String()
	}

	rows := make([][]string, 0, len(users))
	for _, u := range users {
		goal := "-"
		if u.SleepGoal != nil {
			goal = strconv.FormatFloat(*u.SleepGoal, 'g', -1, 64) + "h"
		}
		wake := "-"
		if u.WakeTime != nil {
			wake = *u.WakeTime
		}
		city := u.CityName
		if city == "" {
			city = "-"
		}
		zone := u.Timezone
		if zone == "" {
			zone = "UTC"
		}
		rows = append(rows, []string{
			strconv.FormatInt(u.ID, 10),
			displayName(u),
			city,
			zone,
			goal,
			wake,
		})
	}

	b.WriteString(RenderTable(
		[]string{"ID", "Name", "City", "Timezone", "Goal", "Wake"},
		rows,
	))

	return b.String()
}

func displayName(u *domain.User) string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	switch {
	case name != "" && u.Username != "":
		return fmt.Sprintf("%s (@%s)", name, u.Username)
	case name != "":
		return name
	case u.Username != "":
		return "@" + u.Username
	default:
		return "-"
	}
}
