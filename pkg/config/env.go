package config

import "strings"

// envTransform maps BLEND_SERVER_PORT to server_port and so on.
func envTransform(key string) string {
	return strings.ToLower(strings.TrimPrefix(key, envPrefix))
}
