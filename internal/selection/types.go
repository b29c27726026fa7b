package selection

// SelectionState holds the currently selected element. A nil SelectedID
// means nothing is selected.
type SelectionState struct {
	SelectedID *string `json:"selected_id"`
}

// receives selection changes
type Listener func(state SelectionState)

// a preview surface that emits pointer events. An empty element ID
// means the click landed outside any selectable element.
// AddPointerListener returns a remove function that unregisters the
// handler; Detach calls it.
type Surface interface {
	AddPointerListener(handler func(elementID string)) (remove func(), err error)
}
