package olink

import "strings"

// CreateMemberId joins an object id and a member name into a single
// dotted identifier. It is total: either argument may be empty.
func CreateMemberId(objectId, member string) string {
	return objectId + "." + member
}

// GetObjectId returns the object-id portion of id, i.e. everything
// before the first dot. If id contains no dot, id is returned as-is.
func GetObjectId(id string) string {
	if i := strings.IndexByte(id, '.'); i >= 0 {
		return id[:i]
	}
	return id
}

// GetMemberName returns the member portion of id, i.e. everything
// after the first dot. If id contains no dot, the empty string is
// returned.
func GetMemberName(id string) string {
	if i := strings.IndexByte(id, '.'); i >= 0 {
		return id[i+1:]
	}
	return ""
}
