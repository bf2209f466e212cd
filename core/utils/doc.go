// Package utils provides loose type conversion helpers for decoding JSON
// payloads whose field types vary between storage providers.
package utils
