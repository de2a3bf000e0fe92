package model

// VersionInfo contains version information for the application.
type VersionInfo struct {
	AppVersion string `json:"appVersion"`
}
