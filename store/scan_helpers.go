package store

import "time"

// scanTime parses the SQLite localtime text format used throughout the schema.
func scanTime(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04:05", s, time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}
