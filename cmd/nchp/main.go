package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ali--/jupyterhub-nginx-chp/nginx"
	"github.com/ali--/jupyterhub-nginx-chp/share"
	"github.com/ali--/jupyterhub-nginx-chp/share/files"
	"github.com/ali--/jupyterhub-nginx-chp/share/logger"
)

var nchpHelp = `
  Usage: nchp [options]

  nginx based configurable HTTP proxy for JupyterHub. Synthesizes an nginx
  configuration from the options below and replaces itself with nginx, so on
  success this command never returns.

  Examples:

    ./nchp --port=8000 --default-target=http://127.0.0.1:8081
    routes all public traffic on port 8000 to the hub at 8081

    NCHP_EXTRA_STREAMS="8022=10.0.0.5:22" ./nchp --default-target=http://127.0.0.1:8081
    additionally forwards raw TCP on port 8022 to 10.0.0.5:22

  Options:

    --ip, Public facing IP of the proxy. An empty string means listen on
    all interfaces. Defaults to 0.0.0.0.

    --port, Public facing port of the proxy. Defaults to 8000.

    --api-ip, Inward facing IP for API requests. Defaults to 127.0.0.1.

    --api-port, Inward facing port for API requests. Defaults to 8001.

    --default-target, Default proxy target (proto://host[:port]). Traffic
    that matches no other route goes here. A "localhost" host is rewritten
    to 127.0.0.1 so nginx never depends on the resolver for it.

    --extra-streams, Extra raw TCP forwards as "port=host:port" pairs
    separated by ";" (defaults to the environment variable
    NCHP_EXTRA_STREAMS).

    --auth-token, Token the REST API requires in the Authorization header
    (defaults to the environment variable CONFIGPROXY_AUTH_TOKEN, empty
    disables the check).

    --dns-resolver, DNS resolver for nginx to use. Defaults to the first
    nameserver in /etc/resolv.conf.

    --nginx-path, Full path to the nginx executable. Defaults to
    /usr/sbin/nginx.

    --ssl-cert, --ssl-key, --ssl-ciphers, --ssl-dhparam, TLS material for
    the public listener. TLS is enabled iff a certificate is set.

    --api-ssl-cert, --api-ssl-key, --api-ssl-ciphers, --api-ssl-dhparam,
    TLS material for the API listener, same rules.

    --client-max-body-size, Maximum size of client uploads, this limits
    notebook sizes. Accepts common byte suffixes (k/M/G), 0 disables the
    limit. Defaults to 256M.

    --extra-config, Raw nginx directives injected verbatim into the public
    server block.

    --verbose, -v, Specify log level. Values: "error", "info", "debug"
    (defaults to "error")

    --log-file, -l, Specifies log file path. (defaults to empty string:
    log printed to stderr)

    --config, -c, An optional arg to define a path to a config file. If it
    is set then configuration will be loaded from the file. Note: command
    arguments will override file values. Config file should be in TOML
    format.

    --help, -h, This help text

    --version, Print version info and exit

`

var (
	RootCmd = &cobra.Command{
		Version: share.BuildVersion,
		Run:     runMain,
	}

	cfgPath  *string
	viperCfg *viper.Viper
	cfg      = &nginx.Config{}
)

func init() {
	pFlags := RootCmd.PersistentFlags()

	pFlags.String("ip", "", "")
	pFlags.Int("port", 0, "")
	pFlags.String("api-ip", "", "")
	pFlags.Int("api-port", 0, "")
	pFlags.String("default-target", "", "")
	pFlags.String("extra-streams", "", "")
	pFlags.String("auth-token", "", "")
	pFlags.String("dns-resolver", "", "")
	pFlags.String("nginx-path", "", "")
	pFlags.String("ssl-cert", "", "")
	pFlags.String("ssl-key", "", "")
	pFlags.String("ssl-ciphers", "", "")
	pFlags.String("ssl-dhparam", "", "")
	pFlags.String("api-ssl-cert", "", "")
	pFlags.String("api-ssl-key", "", "")
	pFlags.String("api-ssl-ciphers", "", "")
	pFlags.String("api-ssl-dhparam", "", "")
	pFlags.String("client-max-body-size", "", "")
	pFlags.String("extra-config", "", "")
	pFlags.StringP("log-file", "l", "", "")
	pFlags.StringP("verbose", "v", "", "")

	cfgPath = pFlags.StringP("config", "c", "", "")

	RootCmd.SetUsageFunc(func(*cobra.Command) error {
		fmt.Print(nchpHelp)
		os.Exit(1)
		return nil
	})

	viperCfg = viper.New()
	viperCfg.SetConfigType("toml")

	viperCfg.SetDefault("public_host", nginx.DefaultPublicHost)
	viperCfg.SetDefault("public_port", nginx.DefaultPublicPort)
	viperCfg.SetDefault("api_host", nginx.DefaultAPIHost)
	viperCfg.SetDefault("api_port", nginx.DefaultAPIPort)
	viperCfg.SetDefault("nginx_path", nginx.DefaultNginxPath)
	viperCfg.SetDefault("client_max_body_size", nginx.DefaultMaxBody)
	viperCfg.SetDefault("public_ssl_ciphers", nginx.DefaultSSLCiphers)
	viperCfg.SetDefault("api_ssl_ciphers", nginx.DefaultSSLCiphers)
	viperCfg.SetDefault("log_level", "error")

	// environment seeds the defaults only: config file and CLI win
	viperCfg.SetDefault("auth_token", os.Getenv("CONFIGPROXY_AUTH_TOKEN"))
	viperCfg.SetDefault("extra_streams", os.Getenv("NCHP_EXTRA_STREAMS"))

	// map config fields to CLI args:
	// _ is used to ignore errors to pass linter check
	_ = viperCfg.BindPFlag("public_host", pFlags.Lookup("ip"))
	_ = viperCfg.BindPFlag("public_port", pFlags.Lookup("port"))
	_ = viperCfg.BindPFlag("api_host", pFlags.Lookup("api-ip"))
	_ = viperCfg.BindPFlag("api_port", pFlags.Lookup("api-port"))
	_ = viperCfg.BindPFlag("default_target", pFlags.Lookup("default-target"))
	_ = viperCfg.BindPFlag("extra_streams", pFlags.Lookup("extra-streams"))
	_ = viperCfg.BindPFlag("auth_token", pFlags.Lookup("auth-token"))
	_ = viperCfg.BindPFlag("dns_resolver", pFlags.Lookup("dns-resolver"))
	_ = viperCfg.BindPFlag("nginx_path", pFlags.Lookup("nginx-path"))
	_ = viperCfg.BindPFlag("public_ssl_cert", pFlags.Lookup("ssl-cert"))
	_ = viperCfg.BindPFlag("public_ssl_key", pFlags.Lookup("ssl-key"))
	_ = viperCfg.BindPFlag("public_ssl_ciphers", pFlags.Lookup("ssl-ciphers"))
	_ = viperCfg.BindPFlag("public_ssl_dhparam", pFlags.Lookup("ssl-dhparam"))
	_ = viperCfg.BindPFlag("api_ssl_cert", pFlags.Lookup("api-ssl-cert"))
	_ = viperCfg.BindPFlag("api_ssl_key", pFlags.Lookup("api-ssl-key"))
	_ = viperCfg.BindPFlag("api_ssl_ciphers", pFlags.Lookup("api-ssl-ciphers"))
	_ = viperCfg.BindPFlag("api_ssl_dhparam", pFlags.Lookup("api-ssl-dhparam"))
	_ = viperCfg.BindPFlag("client_max_body_size", pFlags.Lookup("client-max-body-size"))
	_ = viperCfg.BindPFlag("extra_config", pFlags.Lookup("extra-config"))
	_ = viperCfg.BindPFlag("log_file", pFlags.Lookup("log-file"))
	_ = viperCfg.BindPFlag("log_level", pFlags.Lookup("verbose"))
}

func main() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func tryDecodeConfig() error {
	if *cfgPath != "" {
		viperCfg.SetConfigFile(*cfgPath)
	} else {
		viperCfg.AddConfigPath(".")
		viperCfg.SetConfigName("nchp.conf")
	}

	return share.DecodeViperConfig(viperCfg, cfg)
}

func runMain(*cobra.Command, []string) {
	err := tryDecodeConfig()
	if err != nil {
		log.Fatal(err)
	}

	err = cfg.ParseAndValidate(files.NewFileSystem())
	if err != nil {
		log.Fatal(err)
	}

	err = cfg.LogOutput.Start()
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		cfg.LogOutput.Shutdown()
	}()

	l := logger.NewLogger("nchp", cfg.LogOutput, cfg.LogLevel)

	s := nginx.NewServer(cfg, l)

	// Start execs nginx and never returns on success
	if err = s.Start(); err != nil {
		l.Errorf("%v", err)
		os.Exit(1)
	}
}
