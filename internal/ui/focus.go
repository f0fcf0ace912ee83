package ui

// Focus targets on the users screen, in tab order.
const (
	FocusFilterID   = "filter-id"
	FocusFilterName = "filter-name"
	FocusTable      = "table"
)

// FocusManager tracks and rotates focus across the users screen.
type FocusManager struct {
	Current  string   // ID of the currently focused region
	Order    []string // Tab order for focus rotation
	OnChange func(from, to string)
}

// NewUsersFocus returns a FocusManager over the filter inputs and table,
// starting on the table.
func NewUsersFocus() *FocusManager {
	return &FocusManager{
		Current: FocusTable,
		Order:   []string{FocusFilterID, FocusFilterName, FocusTable},
	}
}

// Next advances focus to the next region in order.
// Returns the new current focus ID.
func (f *FocusManager) Next() string {
	return f.step(1)
}

// Prev moves focus to the previous region in order.
func (f *FocusManager) Prev() string {
	return f.step(-1)
}

func (f *FocusManager) step(delta int) string {
	if len(f.Order) == 0 {
		return ""
	}
	idx := f.index(f.Current)
	if idx < 0 {
		idx = 0
		if delta > 0 {
			idx = -1
		}
	}
	next := (idx + delta + len(f.Order)) % len(f.Order)
	f.set(f.Order[next])
	return f.Current
}

// SetFocus sets focus to the given region ID.
// Returns true if the ID exists in order.
func (f *FocusManager) SetFocus(id string) bool {
	if f.index(id) < 0 {
		return false
	}
	f.set(id)
	return true
}

func (f *FocusManager) index(id string) int {
	for i, o := range f.Order {
		if o == id {
			return i
		}
	}
	return -1
}

func (f *FocusManager) set(id string) {
	from := f.Current
	f.Current = id
	if f.OnChange != nil && from != id {
		f.OnChange(from, id)
	}
}
