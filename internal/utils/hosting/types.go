package hosting

import "time"

// Domain is the provider's record for a custom domain attached to the
// CRM's public-site project.
type Domain struct {
	Name      string    `json:"name"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"created_at"`
}

// DomainStatus is the provider's DNS/certificate view of a domain.
type DomainStatus struct {
	Name          string   `json:"name"`
	Verified      bool     `json:"verified"`
	Misconfigured bool     `json:"misconfigured"`
	CertIssued    bool     `json:"cert_issued"`
	Conflicts     []string `json:"conflicts,omitempty"`
}
