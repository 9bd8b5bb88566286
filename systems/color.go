package systems

import (
	"fmt"
	"math/rand"
	"strconv"
)

// colorNudge bounds the per-channel change applied by NudgeColor.
const colorNudge = 16

// RandomColor returns a random "#rrggbb" color.
func RandomColor(rng *rand.Rand) string {
	return fmt.Sprintf("#%02x%02x%02x", rng.Intn(256), rng.Intn(256), rng.Intn(256))
}

// NudgeColor shifts each channel of a "#rrggbb" color by at most colorNudge.
// Unparseable input is replaced with a random color.
func NudgeColor(rng *rand.Rand, hex string) string {
	r, g, b, ok := parseHex(hex)
	if !ok {
		return RandomColor(rng)
	}
	shift := func(c int) int {
		return int(clamp(float64(c+rng.Intn(2*colorNudge+1)-colorNudge), 0, 255))
	}
	return fmt.Sprintf("#%02x%02x%02x", shift(r), shift(g), shift(b))
}

func parseHex(hex string) (r, g, b int, ok bool) {
	if len(hex) != 7 || hex[0] != '#' {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff), true
}
