// Command lrcloud is the command line interface for the cloud
// photo-catalog integration.
//
// It authenticates with a caller-supplied access token, reads account
// and catalog state, manages the integration's project albums, and
// uploads images through the two-stage revision-plus-master workflow.
// Successful uploads are recorded in a local history ledger when
// enabled in the configuration.
package main
