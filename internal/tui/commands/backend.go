// Package commands provides Bubble Tea commands for TUI operations.
package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mockround/mockround/internal/exchange"
	"github.com/mockround/mockround/internal/tui"
)

// MaxResumeBytes caps the size of an uploaded resume file.
const MaxResumeBytes = 512 << 10

// Backend is the part of the exchange client the pages outside an
// interview call.
type Backend interface {
	FetchReport(ctx context.Context, sessionID string) (exchange.Report, error)
	UploadResume(ctx context.Context, req exchange.UploadResumeRequest) (exchange.Resume, error)
	LatestResume(ctx context.Context, userID string) (exchange.Resume, error)
}

// FetchReportCmd loads the report for a finished session.
func FetchReportCmd(b Backend, sessionID string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		rep, err := b.FetchReport(ctx, sessionID)
		return tui.ReportLoadedMsg{SessionID: sessionID, Report: rep, Err: err}
	}
}

// CheckResumeCmd looks up the user's latest resume. Having none is not an
// error: the message carries a nil Resume.
func CheckResumeCmd(b Backend, userID string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		if strings.TrimSpace(userID) == "" {
			return tui.ResumeStatusMsg{}
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		res, err := b.LatestResume(ctx, userID)
		if errors.Is(err, exchange.ErrNoResume) {
			return tui.ResumeStatusMsg{}
		}
		if err != nil {
			return tui.ResumeStatusMsg{Err: err}
		}
		return tui.ResumeStatusMsg{Resume: &res}
	}
}

// UploadResumeCmd reads the file named in msg and uploads it for userID.
func UploadResumeCmd(b Backend, userID string, msg tui.UploadResumeMsg, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		text, err := ReadResumeFile(msg.Path)
		if err != nil {
			return tui.ResumeUploadedMsg{Err: err}
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		res, err := b.UploadResume(ctx, exchange.UploadResumeRequest{
			UserID:         userID,
			JobRole:        strings.TrimSpace(msg.JobRole),
			JobDescription: strings.TrimSpace(msg.JobDescription),
			RawText:        text,
		})
		return tui.ResumeUploadedMsg{Resume: res, Err: err}
	}
}

// ReadResumeFile loads a plain-text resume from path.
func ReadResumeFile(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", errors.New("resume path is empty")
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("read resume: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("read resume: %s is a directory", path)
	}
	if info.Size() > MaxResumeBytes {
		return "", fmt.Errorf("read resume: %s is larger than %d KB", path, MaxResumeBytes>>10)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read resume: %w", err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("read resume: %s is not a text file", path)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", fmt.Errorf("read resume: %s is empty", path)
	}
	return text, nil
}
