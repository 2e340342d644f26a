package orderdesk

import (
	"regexp"

	"github.com/cartsync/backend/internal/domain/datastore"
)

// OrderDeskConfig holds configuration for the OrderDesk API integration.
// Credentials come in one of two shapes: a single combined string of the form
// "Store ID 12345 API Key abc123", or the two discrete StoreID/APIKey fields.
type OrderDeskConfig struct {
	// Credentials is the combined credentials string, when configured
	Credentials string
	// StoreID is the discrete store ID field, when configured
	StoreID string
	// APIKey is the discrete API key field, when configured
	APIKey string
	// APIBaseURL is the base URL for the OrderDesk API
	APIBaseURL string
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
}

// OrderDeskProductionAPIURL is the production API endpoint
const OrderDeskProductionAPIURL = "https://app.orderdesk.me/api/v2"

// combinedCredentialsPattern matches the combined credentials string, anchored
// at the end so trailing garbage cannot slip through.
var combinedCredentialsPattern = regexp.MustCompile(`Store ID (\d{5}) API Key ([A-Za-z0-9]+)$`)

// credentialResolver attempts to produce credentials from one configuration
// shape. Resolvers are tried in priority order; the first full match wins.
type credentialResolver func(*OrderDeskConfig) (datastore.Credentials, bool)

var credentialResolvers = []credentialResolver{
	resolveCombinedString,
	resolveDiscreteFields,
}

// resolveCombinedString parses the single combined credentials string.
func resolveCombinedString(c *OrderDeskConfig) (datastore.Credentials, bool) {
	if c.Credentials == "" {
		return datastore.Credentials{}, false
	}
	m := combinedCredentialsPattern.FindStringSubmatch(c.Credentials)
	if len(m) != 3 {
		return datastore.Credentials{}, false
	}
	return datastore.Credentials{ID: m[1], Key: m[2]}, true
}

// resolveDiscreteFields reads the two separately configured fields.
func resolveDiscreteFields(c *OrderDeskConfig) (datastore.Credentials, bool) {
	if c.StoreID == "" || c.APIKey == "" {
		return datastore.Credentials{}, false
	}
	return datastore.Credentials{ID: c.StoreID, Key: c.APIKey}, true
}

// NewOrderDeskConfig creates a configuration from discrete credentials with
// production defaults.
func NewOrderDeskConfig(storeID, apiKey string) *OrderDeskConfig {
	return &OrderDeskConfig{
		StoreID:        storeID,
		APIKey:         apiKey,
		APIBaseURL:     OrderDeskProductionAPIURL,
		TimeoutSeconds: 30,
	}
}

// ResolveCredentials walks the resolver chain and returns the first full
// match. When neither shape yields credentials it fails with
// datastore.ErrCredentialsMissing; the adapter must not be usable without
// valid credentials.
func (c *OrderDeskConfig) ResolveCredentials() (datastore.Credentials, error) {
	for _, resolve := range credentialResolvers {
		if creds, ok := resolve(c); ok {
			return creds, nil
		}
	}
	return datastore.Credentials{}, datastore.ErrCredentialsMissing
}

// Validate validates the OrderDesk configuration and fills defaults.
func (c *OrderDeskConfig) Validate() error {
	creds, err := c.ResolveCredentials()
	if err != nil {
		return err
	}
	if err := creds.Validate(); err != nil {
		return err
	}
	if c.APIBaseURL == "" {
		c.APIBaseURL = OrderDeskProductionAPIURL
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	return nil
}
