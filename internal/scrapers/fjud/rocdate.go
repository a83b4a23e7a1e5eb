package fjud

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrBadROCDate means a date token did not split into three numeric,
// dot-separated components.
var ErrBadROCDate = errors.New("fjud: malformed ROC date")

// ConvertROCDate converts a ROC calendar date token like "111.02.15" into a
// Gregorian "YYYYMMDD" string ("20220215"). The export endpoint only
// understands the Gregorian form.
func ConvertROCDate(roc string) (string, error) {
	parts := strings.Split(roc, ".")
	if len(parts) != 3 {
		return "", fmt.Errorf("%w: %q", ErrBadROCDate, roc)
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrBadROCDate, roc)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrBadROCDate, roc)
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrBadROCDate, roc)
	}

	return fmt.Sprintf("%04d%02d%02d", year+1911, month, day), nil
}
