package hosting

import (
	"context"
	"net/http"
)

// AddDomain registers a custom domain with the provider. A 409 from the
// provider (domain claimed by another account) surfaces as *ConflictError.
func (c *Client) AddDomain(ctx context.Context, name string) (*Domain, error) {
	var out Domain
	err := c.doRequest(ctx, http.MethodPost, "domains", map[string]string{"name": name}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetDomainStatus fetches the provider's current DNS/certificate view.
func (c *Client) GetDomainStatus(ctx context.Context, name string) (*DomainStatus, error) {
	var out DomainStatus
	err := c.doRequest(ctx, http.MethodGet, "domains/"+name+"/status", nil, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// RemoveDomain detaches the domain from the provider. Unknown domains
// return *NotFoundError, which callers may treat as already removed.
func (c *Client) RemoveDomain(ctx context.Context, name string) error {
	return c.doRequest(ctx, http.MethodDelete, "domains/"+name, nil, nil)
}
