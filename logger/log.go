package logger

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// Entry is one log line. Count is the number of consecutive times the same
// tag and detail were logged.
type Entry struct {
	Tag    string
	Detail string
	Count  int
}

func (e Entry) String() string {
	if e.Count > 1 {
		return fmt.Sprintf("%s: %s (repeat x%d)\n", e.Tag, e.Detail, e.Count)
	}
	return fmt.Sprintf("%s: %s\n", e.Tag, e.Detail)
}

// ring holds the most recent entries. Once full, the oldest entry is
// overwritten.
type ring struct {
	mu    sync.Mutex
	slots []Entry
	first int
	used  int
	echo  io.Writer
}

func newRing(size int) *ring {
	return &ring{slots: make([]Entry, size)}
}

func (r *ring) at(i int) *Entry {
	return &r.slots[(r.first+i)%len(r.slots)]
}

func (r *ring) add(tag, detail string) {
	tag = strings.ReplaceAll(tag, "\n", "")
	detail = strings.ReplaceAll(detail, "\n", "")

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.used == 0 || r.at(r.used-1).Tag != tag || r.at(r.used-1).Detail != detail {
		if r.used < len(r.slots) {
			r.used++
		} else {
			r.first = (r.first + 1) % len(r.slots)
		}
		*r.at(r.used - 1) = Entry{Tag: tag, Detail: detail}
	}
	e := r.at(r.used - 1)
	e.Count++

	if r.echo != nil {
		io.WriteString(r.echo, e.String())
	}
}

func (r *ring) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.first, r.used = 0, 0
}

// dump writes the newest n entries, oldest first.
func (r *ring) dump(output io.Writer, n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n = max(0, min(n, r.used))
	for i := r.used - n; i < r.used; i++ {
		io.WriteString(output, r.at(i).String())
	}
}

func (r *ring) setEcho(output io.Writer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.echo = output
}
