package models

// Video is the database representation of video metadata.
type Video struct {
	VideoID         string `db:"video_id"`
	OwnerID         string `db:"owner_id"`
	Title           string `db:"title"`
	Description     string `db:"description"`
	VideoFileURL    string `db:"video_file_url"`
	ThumbnailURL    string `db:"thumbnail_url"`
	DurationSeconds int64  `db:"duration_seconds"`
	Views           int64  `db:"views"`
	IsPublished     bool   `db:"is_published"`
	AuditFields
}
