// Package models defines the data shapes exchanged with the workspace API
// and displayed by the client.
package models

import "sort"

// Presence status values as reported by the roster endpoint.
const (
	StatusOnline  = "Online"
	StatusOffline = "Offline"
)

// OnlineUser is one row of the remote roster. The record is owned entirely by
// the remote service; the client never mutates it directly, it only requests
// changes (status text, rename) and sees them reflected in a later poll.
type OnlineUser struct {
	Username          string `json:"username"`
	Status            string `json:"status,omitempty"`
	StatusText        string `json:"status_text,omitempty"`
	LastSeen          int64  `json:"last_seen,omitempty"`
	TotalStudyMinutes int    `json:"total_minutes"`
}

// TotalStudySeconds converts the whole-minute server total into seconds for
// display. It is an approximation of minutes, not a measured duration.
func (u OnlineUser) TotalStudySeconds() int {
	return u.TotalStudyMinutes * 60
}

// SortByStudyTime orders users by descending total study time, in place.
// Ties keep their original (remote) order.
func SortByStudyTime(users []OnlineUser) {
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].TotalStudyMinutes > users[j].TotalStudyMinutes
	})
}
