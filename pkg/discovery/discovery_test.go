package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstanceKey(t *testing.T) {
	inst := &ServiceInstance{Name: "storefront", Host: "10.0.0.5", Port: 8080}

	assert.Equal(t, "/services/storefront/10.0.0.5:8080", instanceKey("/services/", inst))
	assert.Equal(t, "10.0.0.5:8080", inst.Addr())
}

func TestInstanceKey_IPv6(t *testing.T) {
	inst := &ServiceInstance{Name: "storefront", Host: "::1", Port: 8080}

	assert.Equal(t, "[::1]:8080", inst.Addr())
}

func TestParseInstance(t *testing.T) {
	inst, err := parseInstance("storefront", "10.0.0.5:8080")

	require.NoError(t, err)
	assert.Equal(t, &ServiceInstance{Name: "storefront", Host: "10.0.0.5", Port: 8080}, inst)
}

func TestParseInstance_Malformed(t *testing.T) {
	for _, v := range []string{"", "10.0.0.5", "host:port"} {
		_, err := parseInstance("storefront", v)
		assert.Error(t, err, v)
	}
}
