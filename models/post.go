package models

// Post is a room-scoped feed entry. DisplayName and Avatar are snapshots
// copied from the sender's profile at creation time; later profile edits do
// not rewrite history. A post always carries non-empty trimmed content or an
// image.
type Post struct {
	ID          string  `json:"id"`
	Sender      string  `json:"sender"`
	DisplayName string  `json:"displayName"`
	Avatar      string  `json:"avatar"`
	Content     string  `json:"content"`
	ImageURL    string  `json:"imageUrl"`
	Room        string  `json:"room"`
	Timestamp   int64   `json:"timestamp"`
	Replies     []Reply `json:"replies"`
}

// Reply belongs to exactly one post and is only ever removed together with
// its parent.
type Reply struct {
	ID          string `json:"id"`
	Sender      string `json:"sender"`
	DisplayName string `json:"displayName"`
	Avatar      string `json:"avatar"`
	Content     string `json:"content"`
	ImageURL    string `json:"imageUrl"`
	Timestamp   int64  `json:"timestamp"`
}

// ImageURLs collects the image references attached to the post and all of
// its replies, for cascading media cleanup on deletion.
func (p Post) ImageURLs() []string {
	var urls []string
	if p.ImageURL != "" {
		urls = append(urls, p.ImageURL)
	}
	for _, r := range p.Replies {
		if r.ImageURL != "" {
			urls = append(urls, r.ImageURL)
		}
	}
	return urls
}
