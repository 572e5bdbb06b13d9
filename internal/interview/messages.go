package interview

import (
	"github.com/mockround/mockround/internal/exchange"
	"github.com/mockround/mockround/internal/nav"
)

// Results of asynchronous calls. Each carries the generation that was
// current when the call was issued; Update drops any whose generation no
// longer matches.

type sessionCreatedMsg struct {
	gen uint64
	ref exchange.SessionRef
	err error
}

type questionMsg struct {
	gen     uint64
	ordinal int
	q       exchange.Question
	err     error
}

type answerMsg struct {
	gen     uint64
	ordinal int
	res     exchange.SubmitResult
	err     error
}

type finalizedMsg struct {
	gen uint64
	err error
}

type redirectMsg struct {
	gen     uint64
	page    nav.Page
	payload any
}
