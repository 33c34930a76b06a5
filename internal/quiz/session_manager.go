package quiz

import (
	"sync"

	"github.com/google/uuid"
)

type SessionManager struct {
	source          QuestionSource
	stats           StatisticsRecorder
	questionsAmount int

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewSessionManager(source QuestionSource, stats StatisticsRecorder, questionsAmount int) *SessionManager {
	return &SessionManager{
		source:          source,
		stats:           stats,
		questionsAmount: questionsAmount,
		sessions:        make(map[string]*Session),
	}
}

func (sm *SessionManager) CreateSession() *Session {
	s := NewSession(uuid.NewString(), sm.source, sm.stats, sm.questionsAmount)

	sm.mu.Lock()
	sm.sessions[s.ID] = s
	sm.mu.Unlock()

	return s
}

func (sm *SessionManager) GetSession(id string) (*Session, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	s, ok := sm.sessions[id]
	return s, ok
}

func (sm *SessionManager) RemoveSession(id string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	delete(sm.sessions, id)
}
