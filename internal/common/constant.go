// Package common contains shared constants and sentinel errors used across
// client components.
package common

// Keys under which the client persists local state in the metadata store.
// MetaKeyUsername survives restarts so the identity outlives a reload,
// matching the web client's localStorage behavior.
const (
	MetaKeyUsername = "username"
	MetaKeyDeviceID = "device_id"

	// MetaKeyReadNotificationsPrefix is followed by the identity name, so
	// read-state is tracked per user.
	MetaKeyReadNotificationsPrefix = "read-notifications-"
)
