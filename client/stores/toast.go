package stores

import "sync"

// Toast is a single-slot transient notification; a new one overwrites the
// last. Dismissal timing is the view layer's business.
type Toast struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

type ToastStore struct {
	mu      sync.Mutex
	current *Toast
}

func NewToastStore() *ToastStore {
	return &ToastStore{}
}

// Show replaces the current toast. An empty type defaults to "info".
func (s *ToastStore) Show(message, toastType string) {
	if toastType == "" {
		toastType = "info"
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = &Toast{Message: message, Type: toastType}
}

// Current returns the active toast, nil when nothing is shown
func (s *ToastStore) Current() *Toast {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}
