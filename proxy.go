package twocaptcha

// Proxy routes the solving infrastructure through a caller-supplied proxy.
// Setting it on a solver request switches the task to the proxy-routed
// variant of its type.
type Proxy struct {
	// Type is the proxy protocol: "http", "socks4" or "socks5".
	Type string
	// Address is the proxy host, IP or hostname.
	Address string
	// Port is the proxy port.
	Port int
	// Login and Password are optional proxy credentials.
	Login    string
	Password string
}

// apply merges the proxy fields into a task payload.
func (p *Proxy) apply(payload map[string]any) {
	payload["proxyType"] = p.Type
	payload["proxyAddress"] = p.Address
	payload["proxyPort"] = p.Port
	if p.Login != "" {
		payload["proxyLogin"] = p.Login
	}
	if p.Password != "" {
		payload["proxyPassword"] = p.Password
	}
}
