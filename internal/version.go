package internal

// Version is the fanyi release, reported by --version.
const Version = "0.1.0"
