package entity

import "time"

// RecentSearch is one entry of the recent searches history.
type RecentSearch struct {
	ID        string     `json:"id"`
	Type      SearchType `json:"type"`
	Value     string     `json:"value"`
	Timestamp time.Time  `json:"timestamp"`
	Entity    *Entity    `json:"entity,omitempty"`
}

// SameQuery reports whether both entries refer to the same (type, value) pair.
func (r *RecentSearch) SameQuery(t SearchType, value string) bool {
	return r.Type == t && r.Value == value
}
