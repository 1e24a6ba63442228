package webhook

// SecurityConfig holds webhook security settings
type SecurityConfig struct {
	ChannelToken    string   // Shared token set when registering Drive watch channels
	AllowedIPs      []string // IP whitelist (optional)
	RateLimitPerMin int      // Max requests per minute per source IP
}
