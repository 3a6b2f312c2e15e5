package models

import "sort"

// Notification is a broadcast message pushed by the realtime store.
// Read state is local-only and tracked per identity.
type Notification struct {
	ID        string `json:"id"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
	Read      bool   `json:"-"`
}

// SortNotificationsByNewest orders notifications newest first, in place.
func SortNotificationsByNewest(ns []Notification) {
	sort.SliceStable(ns, func(i, j int) bool {
		return ns[i].Timestamp > ns[j].Timestamp
	})
}
