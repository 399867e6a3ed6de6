// Package agentgcp provides the version information for agent-gcp.
package agentgcp

// Version is the current version of agent-gcp.
const Version = "0.1.0"

// GetVersion returns the current version string.
func GetVersion() string {
	return Version
}
