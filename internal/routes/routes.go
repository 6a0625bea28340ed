package routes

const (
	// Health
	Health = "/health"

	// Properties
	Properties        = "/api/v1/properties"
	PropertyByID      = "/api/v1/properties/{id}"
	PropertyNotes     = "/api/v1/properties/{id}/notes"
	MediaUploadURLs   = "/api/v1/properties/media/upload-urls"

	// Clients
	Clients     = "/api/v1/clients"
	ClientByID  = "/api/v1/clients/{id}"
	ClientNotes = "/api/v1/clients/{id}/notes"

	// Notes
	Notes    = "/api/v1/notes"
	NoteByID = "/api/v1/notes/{id}"

	// Agents
	Agents    = "/api/v1/agents"
	AgentByID = "/api/v1/agents/{id}"

	// Custom web domains
	Domains      = "/api/v1/domains"
	DomainByID   = "/api/v1/domains/{id}"
	DomainVerify = "/api/v1/domains/{id}/verify"
)
