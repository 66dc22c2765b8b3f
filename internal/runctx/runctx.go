// File: internal/runctx/runctx.go (complete file)

package runctx

import "time"

type Context struct {
	RunID     string
	StartedAt time.Time
}

func New() *Context {
	return At(time.Now())
}

func At(now time.Time) *Context {
	return &Context{
		RunID:     now.UTC().Format("20060102_150405"),
		StartedAt: now,
	}
}

// Header is the first stdout line of a run, stamped in local time with offset.
func (c *Context) Header() string {
	return "-----------------" + c.StartedAt.Format("2006-01-02 15:04:05 -07:00")
}
