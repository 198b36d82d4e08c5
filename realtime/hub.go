package realtime

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/oseikofi/campusfeed/media"
	"github.com/oseikofi/campusfeed/models"
	"github.com/oseikofi/campusfeed/store"
	"github.com/oseikofi/campusfeed/utils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// frame is one raw inbound message paired with its connection.
type frame struct {
	client *Client
	raw    []byte
}

// Hub is the broadcast engine. A single Run goroutine drains registration,
// disconnection, and inbound events one at a time, so every mutating event
// is fully applied before the next begins and all connections observe
// room-visible events in one globally consistent order.
type Hub struct {
	directory *store.Directory
	posts     *store.Posts
	registry  *Registry
	media     *media.Store

	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	inbound    chan frame

	log *zap.SugaredLogger
}

// NewHub wires the broadcast engine to its collaborators. The media store
// may be nil, in which case deletions skip file cleanup.
func NewHub(directory *store.Directory, posts *store.Posts, registry *Registry, mediaStore *media.Store) *Hub {
	log := utils.Sugar
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Hub{
		directory:  directory,
		posts:      posts,
		registry:   registry,
		media:      mediaStore,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		inbound:    make(chan frame, 256),
		log:        log,
	}
}

// Run is the hub's event loop. It must run in exactly one goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.log.Infof("connection %s opened, %d total", client.ID, len(h.clients))

		case client := <-h.unregister:
			h.drop(client)
			h.log.Infof("connection %s closed, %d total", client.ID, len(h.clients))

		case f := <-h.inbound:
			h.dispatch(f.client, f.raw)
		}
	}
}

// HandleWS upgrades an HTTP request to a websocket connection and hands the
// resulting client to the hub loop.
func (h *Hub) HandleWS(ctx *gin.Context) {
	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		h.log.Warnf("websocket upgrade failed: %v", err)
		return
	}

	client := newClient(h, conn)
	h.register <- client

	go client.writePump()
	go client.readPump()
}

// drop removes a client from the hub and the registry. Unbind only clears
// the identity's reverse mapping when this connection is still its current
// binding, so a stale disconnect never evicts a fresh reconnect.
func (h *Hub) drop(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.send)
	h.registry.Unbind(client.ID)
}

func (h *Hub) dispatch(client *Client, raw []byte) {
	// Frames from a connection already dropped by the loop are ignored; its
	// send channel is closed.
	if _, ok := h.clients[client]; !ok {
		return
	}

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		h.sendError(client, "invalid message format")
		return
	}

	switch env.Event {
	case EventAuthenticate:
		var data AuthenticateData
		if err := json.Unmarshal(env.Data, &data); err != nil {
			h.sendError(client, "invalid authenticate payload")
			return
		}
		h.handleAuthenticate(client, data)

	case EventJoinRoom:
		var data JoinRoomData
		if err := json.Unmarshal(env.Data, &data); err != nil {
			h.sendError(client, "invalid join_room payload")
			return
		}
		h.handleJoinRoom(client, data)

	case EventNewPost:
		var data NewPostData
		if err := json.Unmarshal(env.Data, &data); err != nil {
			h.sendError(client, "invalid new_post payload")
			return
		}
		h.handleNewPost(client, data)

	case EventReplyToPost:
		var data ReplyData
		if err := json.Unmarshal(env.Data, &data); err != nil {
			h.sendError(client, "invalid reply_to_post payload")
			return
		}
		h.handleReply(client, data)

	case EventDeletePost:
		var data DeletePostData
		if err := json.Unmarshal(env.Data, &data); err != nil {
			h.sendError(client, "invalid delete_post payload")
			return
		}
		h.handleDelete(client, data)

	default:
		h.sendError(client, "unknown event")
	}
}

// handleAuthenticate binds the connection to an identity. A second
// authenticate on a live connection simply rebinds; the previous connection
// of the same identity goes stale without being closed. On success the
// client receives an acknowledgment and a snapshot of the posts visible to
// it: the general room plus its own school room.
func (h *Hub) handleAuthenticate(client *Client, data AuthenticateData) {
	user, err := h.registry.Bind(client.ID, data.Username)
	if err != nil {
		h.sendTo(client, EventAuthError, MessageData{Message: "Invalid user"})
		return
	}

	h.sendTo(client, EventAuthenticated, AuthenticatedData{Success: true})
	h.sendTo(client, EventInitialPosts, h.posts.SnapshotFor(user))
	h.log.Infof("connection %s authenticated as @%s", client.ID, user.Username)
}

// handleJoinRoom adds the client to a room it is allowed in. A disallowed or
// unauthenticated join is silently ignored, mirroring the observed behavior
// of the web client's server; other failures in this protocol are explicit.
func (h *Hub) handleJoinRoom(client *Client, data JoinRoomData) {
	username, ok := h.registry.Resolve(client.ID)
	if !ok {
		return
	}
	user, ok := h.directory.Lookup(username)
	if !ok {
		return
	}

	room := strings.ToLower(strings.TrimSpace(data.Room))
	if !user.CanAccess(room) {
		return
	}

	client.rooms[room] = true
	h.sendTo(client, EventRoomJoined, room)
}

func (h *Hub) handleNewPost(client *Client, data NewPostData) {
	username, ok := h.registry.Resolve(client.ID)
	if !ok {
		h.sendError(client, "Not authenticated")
		return
	}
	user, ok := h.directory.Lookup(username)
	if !ok {
		h.sendError(client, "User not found")
		return
	}

	room := strings.ToLower(strings.TrimSpace(data.Room))
	if !user.CanAccess(room) {
		h.sendError(client, "You can only post to General or your school room")
		return
	}

	content := utils.SanitizeAndTrim(data.Content)
	if content == "" && data.ImageURL == "" {
		h.sendError(client, "Post must have content or an image")
		return
	}

	post := models.Post{
		ID:          uuid.NewString(),
		Sender:      username,
		DisplayName: user.DisplayName,
		Avatar:      user.Avatar,
		Content:     content,
		ImageURL:    data.ImageURL,
		Room:        room,
		Timestamp:   time.Now().UnixMilli(),
		Replies:     []models.Reply{},
	}
	h.posts.Append(post)

	h.log.Infof("@%s posted to %s (id %s)", username, room, post.ID)
	h.fanOut(room, encodeEvent(EventNewPost, post))
}

func (h *Hub) handleReply(client *Client, data ReplyData) {
	username, ok := h.registry.Resolve(client.ID)
	if !ok {
		h.sendError(client, "Not authenticated")
		return
	}
	user, ok := h.directory.Lookup(username)
	if !ok {
		h.sendError(client, "User not found")
		return
	}

	post, found := h.posts.FindByID(data.PostID)
	if !found {
		h.sendError(client, "Post not found")
		return
	}
	if !user.CanAccess(post.Room) {
		h.sendError(client, "You cannot reply to this post")
		return
	}

	reply := models.Reply{
		ID:          uuid.NewString(),
		Sender:      username,
		DisplayName: user.DisplayName,
		Avatar:      user.Avatar,
		Content:     utils.Sanitize(data.Content),
		ImageURL:    data.ImageURL,
		Timestamp:   time.Now().UnixMilli(),
	}

	updated, err := h.posts.AppendReply(data.PostID, reply)
	if err != nil {
		h.sendError(client, "Post not found")
		return
	}

	h.log.Infof("@%s replied to post %s", username, data.PostID)
	h.fanOut(updated.Room, encodeEvent(EventPostReplied, PostRepliedData{PostID: updated.ID, Reply: reply}))
}

// handleDelete removes a post owned by the sender, broadcasts the deletion,
// then cleans up attached media. An absent post or an unauthenticated sender
// is a silent no-op, so re-sending a delete for an already-deleted id never
// produces a duplicate broadcast. Cleanup runs after the broadcast and its
// outcome never affects the deletion.
func (h *Hub) handleDelete(client *Client, data DeletePostData) {
	username, ok := h.registry.Resolve(client.ID)
	if !ok {
		return
	}

	removed, err := h.posts.Remove(data.PostID, username)
	if err != nil {
		if err == store.ErrNotOwner {
			h.sendError(client, "You can only delete your own posts")
		}
		return
	}

	h.log.Infof("post %s deleted by @%s", removed.ID, username)
	h.fanOut(removed.Room, encodeEvent(EventPostDeleted, removed.ID))

	if h.media != nil {
		go h.media.RemoveAll(removed)
	}
}

// fanOut delivers a frame according to the room visibility rules: a general
// post reaches every open connection, while a school post reaches
// connections joined to that school room and, additionally, connections
// joined to general. General observers see all school posts; school rooms
// never see each other.
func (h *Hub) fanOut(room string, payload []byte) {
	if payload == nil {
		return
	}

	var failed []*Client
	for client := range h.clients {
		if room != models.RoomGeneral && !client.rooms[room] && !client.rooms[models.RoomGeneral] {
			continue
		}
		if !client.trySend(payload) {
			failed = append(failed, client)
		}
	}
	for _, client := range failed {
		h.log.Warnf("connection %s dropped: send buffer full", client.ID)
		h.drop(client)
	}
}

func (h *Hub) sendTo(client *Client, event string, data any) {
	if !client.trySend(encodeEvent(event, data)) {
		h.log.Warnf("connection %s dropped: send buffer full", client.ID)
		h.drop(client)
	}
}

func (h *Hub) sendError(client *Client, message string) {
	h.sendTo(client, EventError, MessageData{Message: message})
}
