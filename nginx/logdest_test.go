package nginx_test

import (
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ali--/jupyterhub-nginx-chp/nginx"
)

func TestShouldUsePlainPathForRegularFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stdout")
	err := os.WriteFile(path, nil, 0644)
	require.NoError(t, err)

	assert.Equal(t, path, nginx.AccessLogDestination(path))
}

func TestShouldUseSyslogForSocketBackedStdout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stdout.sock")

	l, err := net.Listen("unix", path)
	require.NoError(t, err)
	defer l.Close()

	assert.Equal(t, "syslog:server=unix:"+path+",nohostname", nginx.AccessLogDestination(path))
}

func TestShouldFallBackToPathWhenStatFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist")

	assert.Equal(t, path, nginx.AccessLogDestination(path))
}
