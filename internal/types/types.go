package types

// Video is a video metadata record. ThumbnailURL is empty until a
// thumbnail has been attached.
type Video struct {
	ID           string `json:"id"`
	UserID       string `json:"user_id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

type VideoCreateRequest struct {
	Title       string `validate:"required,max=256" json:"title"`
	Description string `json:"description"`
}
