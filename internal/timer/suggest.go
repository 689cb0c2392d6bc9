package timer

import "fmt"

var breakSuggestions = map[string][]string{
	"short": {
		"Stretch your arms and neck",
		"Look 20 feet away for 20 seconds",
		"Take 3 deep breaths",
		"Hydrate! Drink some water",
		"Stand up and shake it out",
	},
	"medium": {
		"Walk around the room",
		"Do 10 jumping jacks",
		"Refill your water bottle",
		"Clear your desk clutter",
		"Check the weather outside",
	},
	"long": {
		"Go for a short walk outside",
		"Eat a healthy snack",
		"Do a quick meditation session",
		"Call a friend or family member",
		"Listen to your favorite song",
	},
}

// BreakSuggestion returns a cycle-aware break idea for the given number of
// completed pomodoros: every fourth gets a long-break idea, every second a
// medium one.
func BreakSuggestion(completed int) string {
	category := "short"
	switch {
	case completed > 0 && completed%4 == 0:
		category = "long"
	case completed > 0 && completed%2 == 0:
		category = "medium"
	}
	list := breakSuggestions[category]
	idx := completed / 4
	if idx < 0 {
		idx = -idx
	}
	return fmt.Sprintf("(%s break) %s", category, list[idx%len(list)])
}
