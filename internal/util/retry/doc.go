// Package retry runs operations that may fail transiently.
//
// [Fixed] retries at a constant interval and is used for readiness polling
// (address resolution, SSH reachability, download verification).
// [WithExponentialBackoff] grows the delay between attempts and is used for
// calls to third-party HTTP services. Both stop early on errors wrapped with
// [Fatal] and return the last error unchanged once attempts are exhausted.
package retry
