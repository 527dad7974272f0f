package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano

// EncodeToken creates a base64 encoded continuation token from an entry date
// and creation time. Used for keyset pagination across repositories.
func EncodeToken(entryDate time.Time, createdAt time.Time) string {
	tokenStr := fmt.Sprintf("%s|%s", entryDate.Format(timeFormat), createdAt.Format(timeFormat))
	return base64.StdEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses the base64 encoded token back into entry date and creation time.
func DecodeToken(token string) (time.Time, time.Time, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 2)
	if len(parts) != 2 {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid pagination token format (split)")
	}

	entryDate, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid pagination token format (entry date parse): %w", err)
	}

	createdAt, err := time.Parse(timeFormat, parts[1])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid pagination token format (created_at parse): %w", err)
	}

	return entryDate, createdAt, nil
}
