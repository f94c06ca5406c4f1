package types

// Version is the canonical project version.
// The CLI, the session event payloads, and the probe cache record format
// share this version under the lockstep versioning policy.
const Version = "0.3.0"
