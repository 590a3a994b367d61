// Package store persists game templates and play sessions across SQL backends.
package store

import (
	"fmt"
	"sync"

	"github.com/louieddxu2/BoardGameScorePad-sub001/internal/contract"
	"github.com/louieddxu2/BoardGameScorePad-sub001/schema"
)

// StoreManagerImpl manages the template and session store instances.
type StoreManagerImpl struct {
	sync.RWMutex // Protects the store pointers during initialization
	templates    contract.TemplateStore
	sessions     contract.SessionStore
}

var _ contract.StoreManager = &StoreManagerImpl{} // Compile-time check

// GetTemplateStore returns the template store.
func (mgr *StoreManagerImpl) GetTemplateStore() contract.TemplateStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.templates
}

// GetSessionStore returns the session store.
func (mgr *StoreManagerImpl) GetSessionStore() contract.SessionStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.sessions
}

// Global Manager instance for main logic.
var (
	Manager   = &StoreManagerImpl{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// InitStores initializes the global store manager. Both stores share one
// database handle so SQLite keeps its single-connection guarantee.
func InitStores(backend schema.DatabaseBackend, connStr string) error {
	var initErr error

	initOnce.Do(func() {
		// This function body runs exactly once, even with concurrent calls.
		db, err := openDatabase(backend, connStr)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize store: %w", err)
			return
		}

		Manager.Lock()
		defer Manager.Unlock()
		Manager.templates = NewTemplateStore(db, backend)
		Manager.sessions = NewSessionStore(db, backend)
	})

	// After once.Do, initErr will contain any error from the initialization block.
	return initErr
}

// CloseStores should be called on application shutdown.
func CloseStores() { // called in main defer
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.templates != nil {
			_ = Manager.templates.Close()
		}
		if Manager.sessions != nil {
			_ = Manager.sessions.Close()
		}
	})
}
