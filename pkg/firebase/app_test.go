package firebase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/portfolio-api/pkg/config"
)

func TestClientOptions(t *testing.T) {
	assert.Nil(t, ClientOptions(config.FirebaseConfig{}))
	assert.Len(t, ClientOptions(config.FirebaseConfig{CredentialsFile: "/secrets/sa.json"}), 1)
	assert.Len(t, ClientOptions(config.FirebaseConfig{CredentialsJSON: `{"type":"service_account"}`, CredentialsFile: "/x"}), 1)
}
