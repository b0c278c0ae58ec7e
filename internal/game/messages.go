package game

import "github.com/spacehole-rogue/spacehole_tactical/internal/render"

// statusDuration is how long a status line stays up, in ticks.
const statusDuration = 180

// Message is a single line in the message log.
type Message struct {
	Text string
	Hue  render.Hue
}

// Messages holds the status line, the paged long message and a bounded
// log of everything shown.
type Messages struct {
	Log     []Message
	maxSize int

	status      Message
	statusUntil int64

	pages []string
	page  int
}

// NewMessages creates message state that keeps the most recent maxSize
// log lines.
func NewMessages(maxSize int) *Messages {
	return &Messages{
		Log:     make([]Message, 0, maxSize),
		maxSize: maxSize,
	}
}

// Add appends a log line, evicting the oldest if full.
func (m *Messages) Add(text string, hue render.Hue) {
	msg := Message{Text: text, Hue: hue}
	if len(m.Log) >= m.maxSize {
		copy(m.Log, m.Log[1:])
		m.Log[len(m.Log)-1] = msg
	} else {
		m.Log = append(m.Log, msg)
	}
}

// SetStatus shows text on the status line from now.
func (m *Messages) SetStatus(text string, hue render.Hue, now int64) {
	m.status = Message{Text: text, Hue: hue}
	m.statusUntil = now + statusDuration
	m.Add(text, hue)
}

// Status returns the status line if it is still showing at now.
func (m *Messages) Status(now int64) (Message, bool) {
	if m.status.Text == "" || now >= m.statusUntil {
		return Message{}, false
	}
	return m.status, true
}

// StartPages begins a long message. It replaces any message in progress.
func (m *Messages) StartPages(pages []string) {
	m.pages = append(m.pages[:0], pages...)
	m.page = 0
}

// Page returns the page of the long message being shown.
func (m *Messages) Page() (string, bool) {
	if m.page >= len(m.pages) {
		return "", false
	}
	return m.pages[m.page], true
}

// Advance moves the long message to its next page, ending it after the last.
func (m *Messages) Advance() {
	if m.page < len(m.pages) {
		m.page++
	}
}

// Clear drops the status line and the long message. The log is kept.
func (m *Messages) Clear() {
	m.status = Message{}
	m.statusUntil = 0
	m.pages = m.pages[:0]
	m.page = 0
}

// Reset clears everything, the log included.
func (m *Messages) Reset() {
	m.Clear()
	m.Log = m.Log[:0]
}

// Recent returns the last n log lines (or fewer if the log is shorter).
func (m *Messages) Recent(n int) []Message {
	if n > len(m.Log) {
		n = len(m.Log)
	}
	return m.Log[len(m.Log)-n:]
}
