package frameprompt

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidTarget is returned for input that is not a frame, an offset or
// a timecode.
var ErrInvalidTarget = errors.New("expected a frame, +/-offset or HH:MM:SS:FF")

// ParseTarget resolves input to an absolute frame. Accepted forms:
//
//	120          absolute frame
//	+12, -3      offset from current
//	01:02:03     MM:SS:FF timecode
//	00:01:02:03  HH:MM:SS:FF timecode
//
// Timecode frames count at the nominal (rounded) rate. The result is not
// clamped.
func ParseTarget(input string, current int, frameRate float64) (int, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, ErrInvalidTarget
	}

	if strings.Contains(input, ":") {
		return parseTimecode(input, frameRate)
	}

	n, err := strconv.Atoi(strings.TrimPrefix(input, "+"))
	if err != nil {
		return 0, fmt.Errorf("%q: %w", input, ErrInvalidTarget)
	}
	if input[0] == '+' || input[0] == '-' {
		return current + n, nil
	}
	return n, nil
}

func parseTimecode(input string, frameRate float64) (int, error) {
	parts := strings.Split(input, ":")
	if len(parts) < 3 || len(parts) > 4 {
		return 0, fmt.Errorf("%q: %w", input, ErrInvalidTarget)
	}
	fps := int(math.Round(frameRate))
	if fps <= 0 {
		return 0, fmt.Errorf("%q: %w", input, ErrInvalidTarget)
	}

	values := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 {
			return 0, fmt.Errorf("%q: %w", input, ErrInvalidTarget)
		}
		values[i] = v
	}
	if len(values) == 3 {
		values = append([]int{0}, values...)
	}
	h, m, s, f := values[0], values[1], values[2], values[3]
	if m >= 60 || s >= 60 || f >= fps {
		return 0, fmt.Errorf("%q: %w", input, ErrInvalidTarget)
	}
	return ((h*60+m)*60+s)*fps + f, nil
}
