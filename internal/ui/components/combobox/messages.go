package combobox

// SearchMsg is emitted when the query settles and no OnSearch callback is set
type SearchMsg struct {
	ID    int
	Query string
}

// SelectedMsg is emitted on commit when no OnSelect callback is set
type SelectedMsg[K comparable] struct {
	ID   int
	Item Item[K]
}
