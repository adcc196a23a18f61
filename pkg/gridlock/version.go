package gridlock

// Version is the gridlock release version.
const Version = "v0.1.0"
