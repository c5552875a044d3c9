// Package constants groups the string constants shared across the SDK. It
// declares no types and has no behaviour.
package constants
