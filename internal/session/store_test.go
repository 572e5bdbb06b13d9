package session

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "data", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestResumeLatestPerUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.LatestResume(ctx, "u1")
	require.ErrorIs(t, err, ErrNotFound)

	first, err := s.CreateResume(ctx, "u1", "Backend", "Go services", "resume one")
	require.NoError(t, err)
	second, err := s.CreateResume(ctx, "u1", "Backend", "Go services", "resume two")
	require.NoError(t, err)
	_, err = s.CreateResume(ctx, "u2", "", "", "other user")
	require.NoError(t, err)

	latest, err := s.LatestResume(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, second.ID, latest.ID)
	assert.NotEqual(t, first.ID, latest.ID)

	got, err := s.GetResume(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "resume one", got.RawText)
	assert.Equal(t, "Go services", got.JobDescription)
}

func TestSessionLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	sess := &Session{
		UserID:          "u1",
		ResumeID:        "r1",
		Kind:            KindTechnical,
		Difficulty:      "hard",
		DurationSeconds: 900,
		Topics:          []string{"Databases"},
	}
	require.NoError(t, s.CreateSession(ctx, sess))
	require.NotEmpty(t, sess.ID)
	assert.Equal(t, StatusActive, sess.Status)

	got, err := s.GetSession(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Databases"}, got.Topics)
	assert.Equal(t, 900, got.DurationSeconds)
	assert.Nil(t, got.EndTime)

	require.NoError(t, s.CompleteSession(ctx, sess.ID))
	got, err = s.GetSession(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, got.Status)
	require.NotNil(t, got.EndTime)

	assert.ErrorIs(t, s.CompleteSession(ctx, "missing"), ErrNotFound)
	_, err = s.GetSession(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMessagesKeepOrderAndSummarize(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	sess := &Session{UserID: "u1", Kind: KindHR, Difficulty: "medium"}
	require.NoError(t, s.CreateSession(ctx, sess))

	for _, m := range []struct{ role, content string }{
		{RoleAI, "Q1"}, {RoleUser, "A1"}, {RoleAI, "Q2"}, {RoleUser, "A2"}, {RoleAI, "Q3"},
	} {
		_, err := s.AddMessage(ctx, sess.ID, m.role, m.content)
		require.NoError(t, err)
	}

	msgs, err := s.Messages(ctx, sess.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 5)
	assert.Equal(t, "Q1", msgs[0].Content)
	assert.Equal(t, "Q3", msgs[4].Content)

	qs, err := s.QuestionTexts(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Q1", "Q2", "Q3"}, qs)

	sum, err := s.Summarize(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, Summary{QuestionsAsked: 3, AnswersGiven: 2}, sum)
	assert.Equal(t, 66.67, sum.CompletionRate())
}

func TestAddMessageRequiresSession(t *testing.T) {
	s := newTestStore(t)
	_, err := s.AddMessage(context.Background(), "nope", RoleAI, "Q")
	assert.Error(t, err)
}

func TestCompletionRateEmpty(t *testing.T) {
	assert.Equal(t, 0.0, Summary{}.CompletionRate())
	assert.Equal(t, 100.0, Summary{QuestionsAsked: 4, AnswersGiven: 4}.CompletionRate())
}
