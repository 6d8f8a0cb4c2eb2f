package repository

// Aliases so black-box tests can reach unexported helpers.
var (
	NullableString = nullableString
	NullableTime   = nullableTime
	BoolToInt      = boolToInt
	FormatTime     = formatTime
	ParseTime      = parseTime
	FTSQuery       = ftsQuery
)
