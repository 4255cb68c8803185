package components

// QueryChangedMsg is sent on every edit of the search input.
type QueryChangedMsg struct {
	Query string
}

// ToggleFavoriteMsg is sent when the user flips a character's favorite status.
type ToggleFavoriteMsg struct {
	ID int
}

// RemoveFavoriteMsg is sent when the user removes a character from favorites.
type RemoveFavoriteMsg struct {
	ID int
}

// OpenDetailsMsg is sent when a character is selected.
type OpenDetailsMsg struct {
	ID int
}

// CloseDetailsMsg is sent when the details view is dismissed.
type CloseDetailsMsg struct{}

// ReloadFavoritesMsg asks for the favorites to be loaded again.
type ReloadFavoritesMsg struct{}

// CopyMsg is sent when content should be copied to the clipboard.
type CopyMsg struct {
	Content string
}
