package users

import (
	"maps"
	"slices"
)

// Summary is the minimal record shown in the users list.
// ID and Name are empty when the API omitted them.
type Summary struct {
	ID     string
	Name   string
	Fields map[string]any // every field as received, including ID and Name
}

// Selectable reports whether the record can be opened in the detail modal.
func (s Summary) Selectable() bool {
	return s.ID != ""
}

// Detail is the full profile record. Its shape is owned by the API; the
// controller never looks inside it.
type Detail map[string]any

// Keys returns the record's field names in sorted order.
func (d Detail) Keys() []string {
	return slices.Sorted(maps.Keys(d))
}

// ListState is the lifecycle of the users list.
type ListState int

const (
	ListLoading ListState = iota
	ListReady
	ListEmpty
)

func (s ListState) String() string {
	switch s {
	case ListLoading:
		return "Loading"
	case ListReady:
		return "Ready"
	case ListEmpty:
		return "Empty"
	default:
		return "Unknown"
	}
}

// ModalState is the lifecycle of the detail modal. It is independent of ListState.
type ModalState int

const (
	ModalClosed ModalState = iota
	ModalLoading
	ModalShown
	// ModalFailed is passed through when a profile fetch fails; the modal
	// settles in ModalClosed straight after.
	ModalFailed
)

func (s ModalState) String() string {
	switch s {
	case ModalClosed:
		return "Closed"
	case ModalLoading:
		return "Loading"
	case ModalShown:
		return "Shown"
	case ModalFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Open reports whether the modal is visible.
func (s ModalState) Open() bool {
	return s == ModalLoading || s == ModalShown
}
