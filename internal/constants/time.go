package constants

const (
	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// DisplayDateFormat is used for headings ("January 2, 2006")
	DisplayDateFormat = "January 2, 2006"

	// ClockFormat is used for completion times in the history view
	ClockFormat = "3:04 PM"
)
