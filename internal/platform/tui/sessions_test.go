package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockfall/internal/storage"
)

type memStore struct {
	sessions  []storage.SessionSummary
	deleteErr error
}

func (s *memStore) RecentSessions(limit int) ([]storage.SessionSummary, error) {
	return s.sessions[:min(limit, len(s.sessions))], nil
}

func (s *memStore) DeleteSession(id string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	for i, sess := range s.sessions {
		if sess.ID == id {
			s.sessions = append(s.sessions[:i], s.sessions[i+1:]...)
			return nil
		}
	}
	return storage.ErrSessionNotFound
}

func testSessions() []storage.SessionSummary {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return []storage.SessionSummary{
		{ID: "aaaaaaaa-1111", GameID: "blocks", FinalScore: 300, Lines: 3, Steps: 9000, StartedAt: start, EndedAt: start.Add(150 * time.Second)},
		{ID: "bbbbbbbb-2222", GameID: "blocks", FinalScore: 100, Lines: 1, Steps: 1200, StartedAt: start.Add(-time.Hour), EndedAt: start.Add(-time.Hour + 20*time.Second)},
	}
}

func TestSessionRow(t *testing.T) {
	row := SessionRow(testSessions()[0])

	require.Len(t, row, 6)
	assert.Equal(t, "aaaaaaaa", row[0])
	assert.Equal(t, "300", row[1])
	assert.Equal(t, "3", row[2])
	assert.Equal(t, "9000", row[3])
	assert.Equal(t, "2m30s", row[4])
}

func TestSessionsModelReplaySelection(t *testing.T) {
	m := NewSessionsModel(&memStore{sessions: testSessions()}, 100, 30)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(SessionsModel)

	assert.Equal(t, "aaaaaaaa-1111", m.Selected())
	assert.NotNil(t, cmd)
	assert.Empty(t, m.View())
}

func TestSessionsModelDelete(t *testing.T) {
	store := &memStore{sessions: testSessions()}
	m := NewSessionsModel(store, 100, 30)

	updated, _ := m.Update(runeKey('d'))
	m = updated.(SessionsModel)

	require.Len(t, store.sessions, 1)
	assert.Equal(t, "bbbbbbbb-2222", store.sessions[0].ID)
	assert.Contains(t, m.View(), "deleted aaaaaaaa-1111")
}

func TestSessionsModelDeleteFailure(t *testing.T) {
	store := &memStore{sessions: testSessions(), deleteErr: errors.New("disk full")}
	m := NewSessionsModel(store, 100, 30)

	updated, _ := m.Update(runeKey('d'))
	m = updated.(SessionsModel)

	assert.Len(t, store.sessions, 2)
	assert.Contains(t, m.View(), "delete failed: disk full")
}

func TestSessionsModelEmpty(t *testing.T) {
	m := NewSessionsModel(&memStore{}, 100, 30)

	assert.Contains(t, m.View(), "No sessions recorded yet.")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(SessionsModel)
	assert.Empty(t, m.Selected())

	updated, cmd := m.Update(runeKey('q'))
	m = updated.(SessionsModel)
	assert.NotNil(t, cmd)
	assert.Empty(t, m.Selected())
}
