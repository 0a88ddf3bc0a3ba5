// Package config holds the settings for a deployment run.
//
// Settings come from three layers, later ones winning: built-in defaults for
// the selected provider, an optional dropvpn.yaml file, and command-line
// flags. API tokens are never stored in the file and are read from the
// environment instead. Polling intervals and attempt counts can be tuned
// through DROPVPN_* environment variables (see LoadTimeouts).
package config
