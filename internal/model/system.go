package model

// Version is the application version reported by the system endpoints.
const Version = "1.2.0"

// VersionInfo is the response body for the version endpoint.
type VersionInfo struct {
	Version   string `json:"version"`
	GoVersion string `json:"goVersion"`
}

// HealthStatus is the response body for the health endpoint.
type HealthStatus struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}
