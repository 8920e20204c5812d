package torcs

// registry is the process-wide routing table the exported callbacks use.
var registry *Registry

// SetRegistry installs the registry the host callbacks route through.
func SetRegistry(r *Registry) {
	registry = r
}

// GetRegistry returns the configured registry, or nil if not set
func GetRegistry() *Registry {
	return registry
}
