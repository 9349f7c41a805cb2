package state

import (
	"sync"
)

// Manager управляет состояниями диалогов по ID чата
type Manager struct {
	mu     sync.RWMutex
	states map[int64]*UserData // chatID -> UserData
}

// NewManager создаёт новый менеджер состояний
func NewManager() *Manager {
	return &Manager{
		states: make(map[int64]*UserData),
	}
}

// GetState получает текущее состояние чата
func (sm *Manager) GetState(chatID int64) UserState {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, exists := sm.states[chatID]; exists {
		return userData.State
	}
	return StateNone
}

// SetState устанавливает состояние чата, сохраняя черновик
func (sm *Manager) SetState(chatID int64, state UserState) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if state == StateNone {
		delete(sm.states, chatID)
		return
	}

	if userData, exists := sm.states[chatID]; exists {
		userData.State = state
		return
	}
	sm.states[chatID] = &UserData{State: state}
}

// Draft возвращает черновик текущего диалога, создавая его при первом
// обращении. Указатель остаётся валидным до ClearState.
func (sm *Manager) Draft(chatID int64) *Draft {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	userData, exists := sm.states[chatID]
	if !exists {
		userData = &UserData{State: StateNone}
		sm.states[chatID] = userData
	}
	if userData.Draft == nil {
		userData.Draft = &Draft{}
	}
	return userData.Draft
}

// ClearState очищает состояние и черновик чата
func (sm *Manager) ClearState(chatID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	delete(sm.states, chatID)
}
