package types

const (
	// AppName is the application name used in logs and user agent strings
	AppName = "shiprel"

	// Version is the application version
	Version = "0.1.0"
)
