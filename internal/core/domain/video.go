package domain

// Video represents published video metadata. The media files themselves live
// in external storage; only their URLs are recorded here.
type Video struct {
	VideoID         string `json:"videoID"`
	OwnerID         string `json:"ownerID"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	VideoFileURL    string `json:"videoFileURL"`
	ThumbnailURL    string `json:"thumbnailURL"`
	DurationSeconds int64  `json:"durationSeconds"`
	Views           int64  `json:"views"`
	IsPublished     bool   `json:"isPublished"`
	AuditFields
}
