// Package ssh checks whether a freshly booted host accepts key-based SSH
// logins.
//
// A probe dials the host, completes the handshake including public-key
// authentication, and disconnects without opening a session. Host keys are
// accepted on first contact by default because every probed host was created
// seconds earlier by the same run.
package ssh
