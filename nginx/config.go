package nginx

import (
	"bytes"
	"errors"
	"strings"
	"text/template"

	"github.com/ali--/jupyterhub-nginx-chp/share/files"
	"github.com/ali--/jupyterhub-nginx-chp/share/logger"
)

const (
	DefaultPublicHost = "0.0.0.0"
	DefaultPublicPort = 8000
	DefaultAPIHost    = "127.0.0.1"
	DefaultAPIPort    = 8001
	DefaultNginxPath  = "/usr/sbin/nginx"
	DefaultMaxBody    = "256M"

	// an empty host means listen on all interfaces, for compatibility with
	// the python/nodejs proxies this replaces
	anyAddress = "0.0.0.0"
)

// strong ciphers as of 2016-02-13, taken from Wikimedia's TLS config
var DefaultSSLCiphers = strings.Join([]string{
	"ECDHE-ECDSA-AES128-GCM-SHA256",
	"ECDHE-RSA-AES128-GCM-SHA256",
	"ECDHE-ECDSA-AES256-GCM-SHA384",
	"ECDHE-RSA-AES256-GCM-SHA384",
	"DHE-RSA-AES128-GCM-SHA256",
	"DHE-RSA-AES256-GCM-SHA384",
}, ":")

var (
	ErrNginxExecPathMissing   = errors.New("nginx executable path missing")
	ErrNginxExecNotFound      = errors.New("nginx executable not found")
	ErrFailedCheckingExecPath = errors.New("failed checking nginx exec path")
	ErrPublicTLSKeyMissing    = errors.New("public ssl certificate set but ssl key missing")
	ErrAPITLSKeyMissing       = errors.New("api ssl certificate set but ssl key missing")
)

type Config struct {
	PublicHost string `mapstructure:"public_host"`
	PublicPort int    `mapstructure:"public_port"`
	APIHost    string `mapstructure:"api_host"`
	APIPort    int    `mapstructure:"api_port"`

	DefaultTarget string `mapstructure:"default_target"`
	ExtraStreams  string `mapstructure:"extra_streams"`
	AuthToken     string `mapstructure:"auth_token"`
	DNSResolver   string `mapstructure:"dns_resolver"`
	NginxPath     string `mapstructure:"nginx_path"`

	PublicSSLCert    string `mapstructure:"public_ssl_cert"`
	PublicSSLKey     string `mapstructure:"public_ssl_key"`
	PublicSSLCiphers string `mapstructure:"public_ssl_ciphers"`
	PublicSSLDHParam string `mapstructure:"public_ssl_dhparam"`

	APISSLCert    string `mapstructure:"api_ssl_cert"`
	APISSLKey     string `mapstructure:"api_ssl_key"`
	APISSLCiphers string `mapstructure:"api_ssl_ciphers"`
	APISSLDHParam string `mapstructure:"api_ssl_dhparam"`

	ClientMaxBodySize string `mapstructure:"client_max_body_size"`
	ExtraConfig       string `mapstructure:"extra_config"`

	LogOutput logger.LogOutput `mapstructure:"log_file"`
	LogLevel  logger.LogLevel  `mapstructure:"log_level"`

	// populated by ParseAndValidate, never read from the raw option sources
	Streams []StreamRoute `mapstructure:"-"`
}

// ParseAndValidate turns the raw option values into the validated
// configuration snapshot used for one rendering pass. The raw extra-streams
// string never travels past this point; any malformed entry rejects the whole
// configuration instead of launching with a partial route table.
func (c *Config) ParseAndValidate(filesAPI files.FileAPI) error {
	if c.NginxPath == "" {
		return ErrNginxExecPathMissing
	}

	exists, err := filesAPI.Exist(c.NginxPath)
	if err != nil {
		return ErrFailedCheckingExecPath
	}
	if !exists {
		return ErrNginxExecNotFound
	}

	if c.PublicHost == "" {
		c.PublicHost = anyAddress
	}
	if c.APIHost == "" {
		c.APIHost = anyAddress
	}

	c.Streams, err = ParseStreamSpecs(c.ExtraStreams)
	if err != nil {
		return err
	}

	c.DefaultTarget, err = NormalizeTarget(c.DefaultTarget)
	if err != nil {
		return err
	}

	if c.DNSResolver == "" {
		c.DNSResolver, err = DefaultResolver()
		if err != nil {
			return err
		}
	}

	return nil
}

// MakeRenderContext assembles the statically shaped template context. TLS is
// enabled for a listener iff its certificate path is set; a certificate
// without a key is refused here rather than rendered into a broken server
// block.
func (c *Config) MakeRenderContext() (ctx *RenderContext, err error) {
	public := &PublicServer{
		ListenHost:        c.PublicHost,
		ListenPort:        c.PublicPort,
		DefaultTarget:     c.DefaultTarget,
		ClientMaxBodySize: c.ClientMaxBodySize,
		ExtraConfig:       c.ExtraConfig,
	}

	if c.PublicSSLCert != "" {
		if c.PublicSSLKey == "" {
			return nil, ErrPublicTLSKeyMissing
		}
		public.TLS = &TLSSettings{
			CertFile:    c.PublicSSLCert,
			KeyFile:     c.PublicSSLKey,
			Ciphers:     cipherList(c.PublicSSLCiphers),
			DHParamFile: c.PublicSSLDHParam,
		}
	}

	api := &APIServer{
		ListenHost: c.APIHost,
		ListenPort: c.APIPort,
		AuthToken:  c.AuthToken,
		Resolver:   c.DNSResolver,
	}

	if c.APISSLCert != "" {
		if c.APISSLKey == "" {
			return nil, ErrAPITLSKeyMissing
		}
		api.TLS = &TLSSettings{
			CertFile:    c.APISSLCert,
			KeyFile:     c.APISSLKey,
			Ciphers:     cipherList(c.APISSLCiphers),
			DHParamFile: c.APISSLDHParam,
		}
	}

	ctx = &RenderContext{
		GlobalSettings: &GlobalSettings{
			AccessLog: AccessLogDestination(DefaultStdoutPath),
		},
		PublicServer: public,
		APIServer:    api,
		Streams:      c.Streams,
	}

	return ctx, nil
}

func cipherList(ciphers string) string {
	if ciphers == "" {
		return DefaultSSLCiphers
	}
	return ciphers
}

// RenderConfig renders the complete nginx configuration document. The output
// is deterministic: identical contexts produce byte-identical documents.
func RenderConfig(ctx *RenderContext) (text []byte, err error) {
	tmpl := template.New("ALL")

	for _, fragment := range []string{
		globalSettingsTemplate,
		publicServerTemplate,
		apiServerTemplate,
		streamForwardsTemplate,
	} {
		tmpl, err = tmpl.Parse(fragment)
		if err != nil {
			return nil, err
		}
	}

	tmpl, err = tmpl.Parse(combinedTemplates)
	if err != nil {
		return nil, err
	}

	var b bytes.Buffer
	err = tmpl.Execute(&b, ctx)
	if err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}

// BuildConfig is the one-shot synthesis path: context assembly plus render.
func (c *Config) BuildConfig() ([]byte, error) {
	ctx, err := c.MakeRenderContext()
	if err != nil {
		return nil, err
	}

	return RenderConfig(ctx)
}
