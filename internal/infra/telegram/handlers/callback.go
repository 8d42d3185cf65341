package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xavierca1/alboomx-bot/internal/entity"
)

const statusCallbackPrefix = "status_"

// EncodeStatusCallback builds the button payload "status_<row>_<status>".
func EncodeStatusCallback(row int, status entity.LeadStatus) string {
	return fmt.Sprintf("%s%d_%s", statusCallbackPrefix, row, status)
}

// DecodeStatusCallback splits into at most three parts, so a status that
// itself contains "_" survives. The status is not validated here.
func DecodeStatusCallback(data string) (int, entity.LeadStatus, error) {
	parts := strings.SplitN(data, "_", 3)
	if len(parts) != 3 || parts[0]+"_" != statusCallbackPrefix {
		return 0, "", fmt.Errorf("malformed status callback %q", data)
	}

	row, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, "", fmt.Errorf("malformed row in %q: %w", data, err)
	}

	return row, entity.LeadStatus(parts[2]), nil
}
