package nginx

import (
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"github.com/ali--/jupyterhub-nginx-chp/share/logger"
)

type Server struct {
	cfg    *Config
	logger *logger.Logger
}

func NewServer(cfg *Config, l *logger.Logger) *Server {
	return &Server{
		cfg:    cfg,
		logger: l,
	}
}

// Start renders the configuration document, writes it to a transient file and
// replaces the current process image with nginx. On success it never returns;
// any return value is a launch failure.
func (s *Server) Start() error {
	conf, err := s.cfg.BuildConfig()
	if err != nil {
		return err
	}

	confFile, err := writeConfFile(conf)
	if err != nil {
		return err
	}

	s.logger.Debugf("nginx exec path: %s", s.cfg.NginxPath)
	s.logger.Debugf("nginx config: %s", confFile)

	return Exec(s.cfg.NginxPath, confFile)
}

// Exec replaces the current process with the nginx binary, passing the config
// file as its only argument. The environment is emptied on purpose: nginx
// needs nothing from ours. The config file outlives us by construction, the
// process image is replaced before any cleanup could run.
func Exec(nginxPath, confFile string) error {
	err := unix.Exec(nginxPath, []string{nginxPath, "-c", confFile}, []string{})
	return errors.Wrapf(err, "failed to exec %s", nginxPath)
}

func writeConfFile(conf []byte) (path string, err error) {
	f, err := os.CreateTemp("", "nchp-*.conf")
	if err != nil {
		return "", errors.Wrap(err, "failed to create nginx config file")
	}

	if _, err = f.Write(conf); err != nil {
		f.Close()
		return "", errors.Wrap(err, "failed to write nginx config file")
	}
	if err = f.Sync(); err != nil {
		f.Close()
		return "", errors.Wrap(err, "failed to flush nginx config file")
	}
	if err = f.Close(); err != nil {
		return "", errors.Wrap(err, "failed to close nginx config file")
	}

	return f.Name(), nil
}
