package realtime

import (
	"encoding/json"

	"github.com/oseikofi/campusfeed/models"
)

// Inbound event names (client -> server).
const (
	EventAuthenticate = "authenticate"
	EventJoinRoom     = "join_room"
	EventNewPost      = "new_post"
	EventReplyToPost  = "reply_to_post"
	EventDeletePost   = "delete_post"
)

// Outbound event names (server -> client).
const (
	EventAuthenticated = "authenticated"
	EventAuthError     = "auth_error"
	EventInitialPosts  = "initial_posts"
	EventRoomJoined    = "room_joined"
	EventPostReplied   = "post_replied"
	EventPostDeleted   = "post_deleted"
	EventError         = "error"
)

// Envelope is the wire frame for both directions: a tagged event name and a
// payload whose schema depends on the tag. Payloads are validated before any
// business logic runs.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// AuthenticateData carries the username to bind to the connection.
type AuthenticateData struct {
	Username string `json:"username"`
}

// JoinRoomData names the room the client wants to join.
type JoinRoomData struct {
	Room string `json:"room"`
}

// NewPostData carries a post submission. Content may be empty when an image
// is attached.
type NewPostData struct {
	Room     string `json:"room"`
	Content  string `json:"content"`
	ImageURL string `json:"imageUrl"`
}

// ReplyData carries a reply submission for an existing post.
type ReplyData struct {
	PostID   string `json:"postId"`
	Content  string `json:"content"`
	ImageURL string `json:"imageUrl"`
}

// DeletePostData identifies the post to delete. Room is sent by the web
// client but the stored post's room is authoritative.
type DeletePostData struct {
	PostID string `json:"postId"`
	Room   string `json:"room"`
}

// AuthenticatedData acknowledges a successful bind.
type AuthenticatedData struct {
	Success bool `json:"success"`
}

// MessageData is the payload of auth_error and error events.
type MessageData struct {
	Message string `json:"message"`
}

// PostRepliedData is the fan-out payload for a new reply.
type PostRepliedData struct {
	PostID string       `json:"postId"`
	Reply  models.Reply `json:"reply"`
}

// encodeEvent marshals an outbound envelope. Marshalling our own payload
// types cannot fail in practice; a nil return is simply dropped by senders.
func encodeEvent(event string, data any) []byte {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil
	}
	frame, err := json.Marshal(Envelope{Event: event, Data: payload})
	if err != nil {
		return nil
	}
	return frame
}
