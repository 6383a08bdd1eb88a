package wanderplan

// Version is the library version, overridable at build time with
// -ldflags "-X github.com/wanderplan/wanderplan.Version=...".
var Version = "0.1.0"
