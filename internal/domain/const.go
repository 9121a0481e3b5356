package domain

// Context keys set by the auth middleware.
const (
	ViewerCtxKey = "fg-viewer"
	TokenCtxKey  = "fg-token"
)
