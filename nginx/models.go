package nginx

type RenderContext struct {
	GlobalSettings *GlobalSettings
	PublicServer   *PublicServer
	APIServer      *APIServer
	Streams        []StreamRoute
}

type GlobalSettings struct {
	AccessLog string
}

type PublicServer struct {
	ListenHost        string
	ListenPort        int
	TLS               *TLSSettings
	DefaultTarget     string
	ClientMaxBodySize string
	ExtraConfig       string
}

type APIServer struct {
	ListenHost string
	ListenPort int
	TLS        *TLSSettings
	AuthToken  string
	Resolver   string
}

type TLSSettings struct {
	CertFile    string
	KeyFile     string
	Ciphers     string
	DHParamFile string
}

// StreamRoute is one raw TCP forward: public listen port to an opaque
// host:port destination.
type StreamRoute struct {
	ListenPort  string
	Destination string
}
