package param

import (
	"fmt"
	"strings"
)

// Display text for KindBool parameters. Any plain value above the
// midpoint of the normalized range reads as enabled.
const (
	boolOnText  = "On"
	boolOffText = "Off"
)

var boolWords = map[string]float64{
	"on": 1, "true": 1, "yes": 1, "1": 1,
	"off": 0, "false": 0, "no": 0, "0": 0,
}

func formatBool(plain float64) string {
	if plain > 0.5 {
		return boolOnText
	}
	return boolOffText
}

func parseBool(text string) (float64, error) {
	if v, ok := boolWords[strings.ToLower(strings.TrimSpace(text))]; ok {
		return v, nil
	}
	return 0, fmt.Errorf("not a switch state: %q", text)
}
