package orderdesk

import (
	"testing"

	"github.com/cartsync/backend/internal/domain/datastore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderDeskConfig_ResolveCredentials(t *testing.T) {
	tests := []struct {
		name    string
		config  *OrderDeskConfig
		want    datastore.Credentials
		wantErr error
	}{
		{
			name:   "combined string",
			config: &OrderDeskConfig{Credentials: "Store ID 12345 API Key abcDEF123"},
			want:   datastore.Credentials{ID: "12345", Key: "abcDEF123"},
		},
		{
			name:   "combined string with leading label text",
			config: &OrderDeskConfig{Credentials: "OrderDesk Store ID 54321 API Key k3y"},
			want:   datastore.Credentials{ID: "54321", Key: "k3y"},
		},
		{
			name:   "discrete fields",
			config: &OrderDeskConfig{StoreID: "67890", APIKey: "secret"},
			want:   datastore.Credentials{ID: "67890", Key: "secret"},
		},
		{
			name: "combined string takes priority over discrete fields",
			config: &OrderDeskConfig{
				Credentials: "Store ID 11111 API Key fromcombined",
				StoreID:     "22222",
				APIKey:      "fromfields",
			},
			want: datastore.Credentials{ID: "11111", Key: "fromcombined"},
		},
		{
			name: "malformed combined string falls through to discrete fields",
			config: &OrderDeskConfig{
				Credentials: "Store ID 123 API Key short-id",
				StoreID:     "33333",
				APIKey:      "fallback",
			},
			want: datastore.Credentials{ID: "33333", Key: "fallback"},
		},
		{
			name:    "combined string with trailing garbage does not match",
			config:  &OrderDeskConfig{Credentials: "Store ID 12345 API Key abc extra"},
			wantErr: datastore.ErrCredentialsMissing,
		},
		{
			name:    "store id only",
			config:  &OrderDeskConfig{StoreID: "12345"},
			wantErr: datastore.ErrCredentialsMissing,
		},
		{
			name:    "api key only",
			config:  &OrderDeskConfig{APIKey: "abc"},
			wantErr: datastore.ErrCredentialsMissing,
		},
		{
			name:    "nothing configured",
			config:  &OrderDeskConfig{},
			wantErr: datastore.ErrCredentialsMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creds, err := tt.config.ResolveCredentials()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, creds)
		})
	}
}

func TestOrderDeskConfig_Validate(t *testing.T) {
	t.Run("defaults filled", func(t *testing.T) {
		config := &OrderDeskConfig{StoreID: "12345", APIKey: "abc"}
		require.NoError(t, config.Validate())
		assert.Equal(t, OrderDeskProductionAPIURL, config.APIBaseURL)
		assert.Equal(t, 30, config.TimeoutSeconds)
	})

	t.Run("explicit values kept", func(t *testing.T) {
		config := &OrderDeskConfig{
			StoreID:        "12345",
			APIKey:         "abc",
			APIBaseURL:     "https://sandbox.example.com/api/v2",
			TimeoutSeconds: 5,
		}
		require.NoError(t, config.Validate())
		assert.Equal(t, "https://sandbox.example.com/api/v2", config.APIBaseURL)
		assert.Equal(t, 5, config.TimeoutSeconds)
	})

	t.Run("unresolvable credentials", func(t *testing.T) {
		config := &OrderDeskConfig{Credentials: "not a credentials string"}
		assert.ErrorIs(t, config.Validate(), datastore.ErrCredentialsMissing)
	})
}

func TestNewOrderDeskConfig(t *testing.T) {
	config := NewOrderDeskConfig("12345", "abc")
	assert.Equal(t, "12345", config.StoreID)
	assert.Equal(t, "abc", config.APIKey)
	assert.Equal(t, OrderDeskProductionAPIURL, config.APIBaseURL)
	assert.Equal(t, 30, config.TimeoutSeconds)
}
