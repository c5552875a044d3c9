// Package itbl implements the SDK engine.
//
// An SDK is built from a config.Config and wires the components defined in
// the other packages:
//
//	api.Client     sends requests to the API and maps their outcome to the
//	               OnSuccessHandler / OnFailureHandler callbacks.
//	inapp.Store    holds the synced in-app messages, in memory or in badger.
//	action.Router  hands clicked URLs to the ActionBlock and URLCallback
//	               of the configuration.
//	service        optionally serves the store over HTTP for inspection.
//
// Requests need an identity. SetEmail and SetUserID each replace the other;
// when neither is set, operations fail with the reason "Both email and userId
// are nil" without reaching the network.
//
// Every operation delivers its callbacks on the calling goroutine before it
// returns.
package itbl
