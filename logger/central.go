package logger

import (
	"fmt"
	"io"
)

// capacity of the process-wide log
const maxCentral = 256

var central = newRing(maxCentral)

// Log records detail under tag if perm allows it.
func Log(perm Permission, tag, detail string) {
	if perm.AllowLogging() {
		central.add(tag, detail)
	}
}

// Logf is Log with a format string.
func Logf(perm Permission, tag, format string, args ...any) {
	if perm.AllowLogging() {
		central.add(tag, fmt.Sprintf(format, args...))
	}
}

func Clear() {
	central.reset()
}

// Write writes every retained entry to output.
func Write(output io.Writer) {
	central.dump(output, maxCentral)
}

// Tail writes the newest n entries to output.
func Tail(output io.Writer, n int) {
	central.dump(output, n)
}

// SetEcho mirrors every new entry to output. A nil output stops echoing.
func SetEcho(output io.Writer) {
	central.setEcho(output)
}
