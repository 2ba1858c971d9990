package normalize

import "strings"

const (
	IsoGreen  = "green"
	IsoBlue   = "blue"
	IsoPurple = "purple"
)

var isoColorAliases = map[string]string{
	"vert":   IsoGreen,
	"bleu":   IsoBlue,
	"violet": IsoPurple,
	"green":  IsoGreen,
	"blue":   IsoBlue,
	"purple": IsoPurple,
}

// IsoClass trims and lower-cases an ISO class name ("Striker " -> "striker").
func IsoClass(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// IsoColor maps an ISO matrix color to green, blue or purple.
// Empty and unrecognized values are green.
func IsoColor(s string) string {
	if c, ok := isoColorAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return c
	}
	return IsoGreen
}
