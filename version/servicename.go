package version

import "os"

const serviceNameEnv = "FACTORY_SERVICE_NAME"

// ServiceName returns the name this module reports to telemetry backends,
// FACTORY_SERVICE_NAME or "factory" when the variable is unset.
func ServiceName() string {
	if name := os.Getenv(serviceNameEnv); name != "" {
		return name
	}

	return "factory"
}
