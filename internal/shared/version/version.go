package version

// Version is overridden at build time via -ldflags "-X typefold/internal/shared/version.Version=...".
var Version = "dev"
