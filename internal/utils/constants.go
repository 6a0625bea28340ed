package utils

const (
	OrganizationName = "Ceus"

	CORSLowSecurityAllowedOriginLocalhost = "http://localhost:*"

	// Mailbox that receives marketplace cross-post notifications.
	MarketplaceNotificationEmail = "listings@ceusmarketplace.com"

	// Presigned upload credentials stay valid this many minutes.
	UploadURLExpiryMinutes = 15

	// Per-photo confirmation attempts before the item is skipped.
	MediaUploadMaxAttempts = 3
)

// VideoHostTokens are the substrings a video link URL must contain to be
// accepted as pointing at a known platform.
var VideoHostTokens = []string{"youtube.com", "youtu.be", "vimeo.com"}
