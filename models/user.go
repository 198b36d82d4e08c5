package models

// RoomGeneral is the shared room every identity can read and post to.
const RoomGeneral = "general"

// User represents a registered identity. The username is the normalized
// (lowercased, trimmed) primary key; DisplayName keeps the original casing.
type User struct {
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Avatar      string `json:"avatar"`
	School      string `json:"school"`
	CreatedAt   int64  `json:"createdAt"`
}

// AllowedRooms returns the rooms this user may join, post to, and read:
// the general room plus the user's own school room.
func (u User) AllowedRooms() []string {
	if u.School == "" || u.School == RoomGeneral {
		return []string{RoomGeneral}
	}
	return []string{RoomGeneral, u.School}
}

// CanAccess reports whether the user may act on the given room.
func (u User) CanAccess(room string) bool {
	return room == RoomGeneral || room == u.School
}
