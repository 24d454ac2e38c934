package nginx_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ali--/jupyterhub-nginx-chp/nginx"
)

func writeResolvConf(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "resolv.conf")
	err := os.WriteFile(path, []byte(content), 0644)
	require.NoError(t, err)

	return path
}

func TestShouldDiscoverFirstNameserver(t *testing.T) {
	path := writeResolvConf(t, "nameserver 10.0.0.53\nnameserver 10.0.0.54\n")

	resolver, err := nginx.DiscoverResolver(path)
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.53", resolver)
}

func TestShouldFailWithoutNameservers(t *testing.T) {
	path := writeResolvConf(t, "search example.com\n")

	_, err := nginx.DiscoverResolver(path)
	assert.ErrorIs(t, err, nginx.ErrNoNameservers)
}

func TestShouldFailOnMissingResolvConf(t *testing.T) {
	_, err := nginx.DiscoverResolver(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
