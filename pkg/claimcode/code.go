package claimcode

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/veleo-lab/backend/pkg/crypto"
)

const prefix = "LEO"

var codePattern = regexp.MustCompile(`^LEO-[A-Z0-9]+-[A-Z0-9]+-[A-Z0-9]+$`)

// Generate creates a claim code bound to an event. The code carries a short
// event prefix and a millisecond timestamp, so collisions are only possible
// between codes generated for the same event in the same millisecond.
func Generate(eventID string) string {
	eventPart := strings.ToUpper(eventID)
	eventPart = strings.ReplaceAll(eventPart, "-", "")
	if len(eventPart) > 4 {
		eventPart = eventPart[:4]
	}

	timePart := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	randomPart := crypto.GenerateRandomUpperAlphameric(6)

	return fmt.Sprintf("%s-%s-%s-%s", prefix, eventPart, timePart, randomPart)
}

// IsValid reports whether s has the shape of a claim code. It says nothing
// about whether the code exists or is still usable.
func IsValid(s string) bool {
	return codePattern.MatchString(s)
}
