// Package nav holds the top-level page routing state.
package nav

import "sync"

// Page names a top-level screen.
type Page string

// Known pages.
const (
	PageHome         Page = "home"
	PageInterview    Page = "interview"
	PageHRInterview  Page = "hr-interview"
	PageResumeUpload Page = "resume-upload"
	PageProgress     Page = "progress"
	PageReport       Page = "report"
)

var known = map[Page]bool{
	PageHome:         true,
	PageInterview:    true,
	PageHRInterview:  true,
	PageResumeUpload: true,
	PageProgress:     true,
	PageReport:       true,
}

// Known reports whether p is a routable page.
func Known(p Page) bool {
	return known[p]
}

// SessionPayload is carried to pages that show one finished session.
type SessionPayload struct {
	SessionID string
	Answered  int
	Total     int
}

// Controller owns the current page and the last payload received.
type Controller struct {
	mu      sync.Mutex
	page    Page
	payload any
	version uint64
}

// New returns a controller on the home page.
func New() *Controller {
	return &Controller{page: PageHome}
}

// Navigate replaces page and payload together and returns the page actually
// selected. Unknown names route home.
func (c *Controller) Navigate(p Page, payload any) Page {
	if !known[p] {
		p = PageHome
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.page = p
	c.payload = payload
	c.version++
	return p
}

// Current returns the active page and its payload.
func (c *Controller) Current() (Page, any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page, c.payload
}

// Version increases by one on every Navigate.
func (c *Controller) Version() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version
}
