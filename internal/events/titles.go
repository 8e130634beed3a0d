// internal/events/titles.go
package events

// MediaAdded is emitted when a title starts being tracked.
type MediaAdded struct {
	BaseEvent
	Title string `json:"title"`
	Kind  string `json:"kind"`
}

// TitleSeen is emitted for every recorded seen entry.
type TitleSeen struct {
	BaseEvent
	UserID     string `json:"user_id"`
	RawTitle   string `json:"raw_title"`
	BaseTitle  string `json:"base_title"`
	MediaID    *int64 `json:"media_id,omitempty"`
	MediaTitle string `json:"media_title,omitempty"`
	Season     *int   `json:"season,omitempty"`
	Episode    *int   `json:"episode,omitempty"`
	Confidence string `json:"confidence"`
}
