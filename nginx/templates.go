package nginx

const combinedTemplates = `
{{- template "GS" .GlobalSettings }}
http {
	access_log {{.GlobalSettings.AccessLog}};

	map $http_upgrade $connection_upgrade {
		default upgrade;
		'' close;
	}
{{ template "PUB" .PublicServer }}
{{- template "API" .APIServer }}
}
{{- if .Streams}}
{{ template "STREAM" .Streams }}
{{- end}}`

const globalSettingsTemplate = `
{{- define "GS"}}
daemon off;
pid /tmp/nchp.pid;
error_log stderr;
worker_processes 1;

events {
	worker_connections 1024;
}
{{end}}`

const publicServerTemplate = `
{{- define "PUB"}}
	server {
		listen {{.ListenHost}}:{{.ListenPort}}{{if .TLS}} ssl{{end}};
{{- if .TLS}}
		ssl_certificate {{.TLS.CertFile}};
		ssl_certificate_key {{.TLS.KeyFile}};
		ssl_ciphers {{.TLS.Ciphers}};
{{- if .TLS.DHParamFile}}
		ssl_dhparam {{.TLS.DHParamFile}};
{{- end}}
{{- end}}
		client_max_body_size {{.ClientMaxBodySize}};
{{- if .ExtraConfig}}

		{{.ExtraConfig}}
{{- end}}
{{- if .DefaultTarget}}

		location / {
			proxy_pass {{.DefaultTarget}};
			proxy_http_version 1.1;
			proxy_set_header Upgrade $http_upgrade;
			proxy_set_header Connection $connection_upgrade;
			proxy_set_header Host $host;
			proxy_set_header X-Forwarded-For $proxy_add_x_forwarded_for;
		}
{{- end}}
	}
{{end}}`

const apiServerTemplate = `
{{- define "API"}}
	server {
		listen {{.ListenHost}}:{{.ListenPort}}{{if .TLS}} ssl{{end}};
{{- if .TLS}}
		ssl_certificate {{.TLS.CertFile}};
		ssl_certificate_key {{.TLS.KeyFile}};
		ssl_ciphers {{.TLS.Ciphers}};
{{- if .TLS.DHParamFile}}
		ssl_dhparam {{.TLS.DHParamFile}};
{{- end}}
{{- end}}
		resolver {{.Resolver}};
{{- if .AuthToken}}

		if ($http_authorization != "token {{.AuthToken}}") {
			return 403;
		}
{{- end}}

		location / {
			return 501;
		}
	}
{{end}}`

const streamForwardsTemplate = `
{{- define "STREAM"}}
stream {
{{- range .}}
	server {
		listen {{.ListenPort}};
		proxy_pass {{.Destination}};
	}
{{- end}}
}
{{end}}`
