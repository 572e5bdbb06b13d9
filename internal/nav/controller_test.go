package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStartsHome(t *testing.T) {
	c := New()
	p, payload := c.Current()
	assert.Equal(t, PageHome, p)
	assert.Nil(t, payload)
	assert.Equal(t, uint64(0), c.Version())
}

func TestNavigateReplacesPageAndPayload(t *testing.T) {
	c := New()
	got := c.Navigate(PageReport, SessionPayload{SessionID: "S1"})
	assert.Equal(t, PageReport, got)

	p, payload := c.Current()
	assert.Equal(t, PageReport, p)
	assert.Equal(t, SessionPayload{SessionID: "S1"}, payload)

	c.Navigate(PageHome, nil)
	p, payload = c.Current()
	assert.Equal(t, PageHome, p)
	assert.Nil(t, payload)
	assert.Equal(t, uint64(2), c.Version())
}

func TestUnknownPageRoutesHome(t *testing.T) {
	c := New()
	c.Navigate(PageProgress, nil)

	got := c.Navigate(Page("dashboard"), "x")
	assert.Equal(t, PageHome, got)
	p, payload := c.Current()
	assert.Equal(t, PageHome, p)
	assert.Equal(t, "x", payload)
	assert.False(t, Known("dashboard"))
	assert.True(t, Known(PageHRInterview))
}
