package datastore

import (
	"sync"
)

// TargetMutexManager hands out one mutex per target identifier so record
// writes serialize per target without cross-target contention.
type TargetMutexManager struct {
	mutexes map[string]*sync.Mutex
	mapLock sync.RWMutex
}

// NewTargetMutexManager creates a new target mutex manager.
func NewTargetMutexManager() *TargetMutexManager {
	return &TargetMutexManager{
		mutexes: make(map[string]*sync.Mutex),
	}
}

// GetMutex returns the mutex for the given target identifier, creating it on
// first use.
func (tmm *TargetMutexManager) GetMutex(targetID string) *sync.Mutex {
	tmm.mapLock.RLock()
	mutex, exists := tmm.mutexes[targetID]
	tmm.mapLock.RUnlock()

	if exists {
		return mutex
	}

	tmm.mapLock.Lock()
	defer tmm.mapLock.Unlock()

	// Double-check after acquiring write lock
	if mutex, exists := tmm.mutexes[targetID]; exists {
		return mutex
	}

	mutex = &sync.Mutex{}
	tmm.mutexes[targetID] = mutex
	return mutex
}
