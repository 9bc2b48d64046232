// internal/version/version.go
package version

// Version is stamped at release; "dev" for local builds.
var Version = "dev"
