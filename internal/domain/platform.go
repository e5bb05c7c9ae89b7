package domain

// Platform names as stored and as accepted by the discover filter.
const (
	PlatformYouTube   = "YouTube"
	PlatformInstagram = "Instagram"
)
