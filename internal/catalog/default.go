package catalog

import "sync"

var (
	defMu    sync.RWMutex
	defStore *Store
)

// Init registra el Store del proceso. Se llama una vez al arrancar.
func Init(s *Store) {
	defMu.Lock()
	defer defMu.Unlock()
	defStore = s
}

// Default devuelve el Store registrado con Init, o nil.
func Default() *Store {
	defMu.RLock()
	defer defMu.RUnlock()
	return defStore
}

// Reset suelta el Store del proceso (shutdown y tests).
func Reset() {
	defMu.Lock()
	defer defMu.Unlock()
	defStore = nil
}
