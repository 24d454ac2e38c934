package nginx

import "os"

const DefaultStdoutPath = "/dev/stdout"

// AccessLogDestination decides the access_log sink for the generated config.
// Some process supervisors (systemd, s6) back stdout with a stream socket
// rather than a file or pipe. nginx opens the access log path itself and
// cannot open() a socket, so in that case we hand it a syslog descriptor
// pointing at the same socket. The error log is unaffected since nginx has
// native "error_log stderr" support.
//
// The check runs at synthesis time on purpose: the nature of stdout depends
// on how this process was launched.
func AccessLogDestination(stdoutPath string) string {
	info, err := os.Stat(stdoutPath)
	if err != nil {
		// let nginx report the real problem with the path
		return stdoutPath
	}

	if info.Mode()&os.ModeSocket != 0 {
		return "syslog:server=unix:" + stdoutPath + ",nohostname"
	}

	return stdoutPath
}
