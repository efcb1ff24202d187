package bot

import (
	_ "embed"
	"math/rand"
	"strings"
)

//go:embed sleep_tips.txt
var sleepTipsRaw string

var sleepTips = parseTips(sleepTipsRaw)

func parseTips(raw string) []string {
	var tips []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			tips = append(tips, line)
		}
	}
	return tips
}

func randomTip() string {
	if len(sleepTips) == 0 {
		return "Keep a consistent sleep schedule."
	}
	return sleepTips[rand.Intn(len(sleepTips))]
}
