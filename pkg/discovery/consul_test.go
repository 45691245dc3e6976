package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistration(t *testing.T) {
	reg, err := Registration("nodesvc", "10.0.0.7", "8181", "8180")
	require.NoError(t, err)

	assert.Equal(t, "nodesvc-10.0.0.7-8181", reg.ID)
	assert.Equal(t, "nodesvc", reg.Name)
	assert.Equal(t, "10.0.0.7", reg.Address)
	assert.Equal(t, 8181, reg.Port)
	assert.Equal(t, []string{Tag}, reg.Tags)
	require.NotNil(t, reg.Check)
	assert.Equal(t, "http://10.0.0.7:8180/health", reg.Check.HTTP)
}

func TestRegistrationRejectsBadPort(t *testing.T) {
	_, err := Registration("scenesvc", "localhost", "grpc", "8280")
	assert.Error(t, err)
}

func TestNewClient(t *testing.T) {
	client, err := NewClient("127.0.0.1:8500")
	require.NoError(t, err)
	assert.NotNil(t, client)
}
