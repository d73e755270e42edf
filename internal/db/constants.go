package db

// timeLayout is how timestamps are stored so SQLite date functions can read them.
const timeLayout = "2006-01-02 15:04:05"

// defaultListLimit caps ListExports when the caller passes a non-positive limit.
const defaultListLimit = 50

var pragmas = []string{
	"journal_mode(WAL)",
	"synchronous(NORMAL)",
	"busy_timeout(5000)",
	"foreign_keys(ON)",
}
