package logger

// Permission implementations indicate whether the caller making a log
// request is allowed to create new log entries.
type Permission interface {
	AllowLogging() bool
}

type allow bool

func (a allow) AllowLogging() bool {
	return bool(a)
}

var (
	// Allow always permits logging.
	Allow Permission = allow(true)

	// Deny never permits logging.
	Deny Permission = allow(false)
)
