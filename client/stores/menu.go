package stores

import (
	"fmt"
	"sync"

	"github.com/MangoYoun/aidlc-workshop-tableorder/client/api"
	"github.com/MangoYoun/aidlc-workshop-tableorder/models"
)

type MenuStore struct {
	mu                 sync.Mutex
	client             *api.Client
	menus              []models.Menu
	categories         []models.Category
	selectedCategoryID uint
	loading            bool
	lastError          string
}

func NewMenuStore(client *api.Client) *MenuStore {
	return &MenuStore{client: client}
}

type menusResponse struct {
	Menus      []models.Menu     `json:"menus"`
	Categories []models.Category `json:"categories"`
}

// LoadMenus fetches menus and categories for a store. storeID is always
// required; both apps know which store they are looking at. The first
// category is auto-selected on first successful load and never overridden
// once a selection exists.
func (s *MenuStore) LoadMenus(storeID uint) error {
	s.mu.Lock()
	s.loading = true
	s.lastError = ""
	s.mu.Unlock()

	var resp menusResponse
	err := s.client.Get(fmt.Sprintf("/api/menus?store_id=%d", storeID), &resp)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastError = err.Error()
		return err
	}

	s.menus = resp.Menus
	s.categories = resp.Categories
	if len(s.categories) > 0 && s.selectedCategoryID == 0 {
		s.selectedCategoryID = s.categories[0].ID
	}
	return nil
}

// SelectCategory sets the active category filter; no fetch
func (s *MenuStore) SelectCategory(categoryID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedCategoryID = categoryID
}

// FilteredMenus returns all menus when no category is selected, otherwise
// only the selected category's menus. Recomputed on every read.
func (s *MenuStore) FilteredMenus() []models.Menu {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selectedCategoryID == 0 {
		out := make([]models.Menu, len(s.menus))
		copy(out, s.menus)
		return out
	}
	var out []models.Menu
	for _, m := range s.menus {
		if m.CategoryID == s.selectedCategoryID {
			out = append(out, m)
		}
	}
	return out
}

func (s *MenuStore) Menus() []models.Menu {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Menu, len(s.menus))
	copy(out, s.menus)
	return out
}

func (s *MenuStore) Categories() []models.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Category, len(s.categories))
	copy(out, s.categories)
	return out
}

func (s *MenuStore) SelectedCategoryID() uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedCategoryID
}

func (s *MenuStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// LastError returns the most recent load failure message, empty when the
// last load succeeded
func (s *MenuStore) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}
