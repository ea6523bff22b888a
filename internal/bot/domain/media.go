package domain

import "strings"

// allowedImageTypes is the attachment content-type allow-list.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
	"image/heic": true,
}

// MediaResult reports what a batch of attachments did to the photo sequence.
type MediaResult struct {
	// Added is how many attachments from this batch were accepted.
	Added int
	// Total is the accumulated photo count after the batch.
	Total int
	// QuotaMet is true once the accumulated count reaches the quota.
	QuotaMet bool
}

// AccumulateMedia filters a batch of attachments to the image allow-list and
// appends survivors to the session's photo sequence. A batch with no accepted
// attachments mutates nothing. The quota check uses accumulated length only,
// so re-delivered batches count exactly the attachments they carry.
func AccumulateMedia(s *Session, batch []Attachment, quota int) MediaResult {
	accepted := make([]string, 0, len(batch))
	for _, att := range batch {
		if att.URL == "" {
			continue
		}
		contentType := strings.ToLower(strings.TrimSpace(att.ContentType))
		if idx := strings.Index(contentType, ";"); idx >= 0 {
			contentType = strings.TrimSpace(contentType[:idx])
		}
		if allowedImageTypes[contentType] {
			accepted = append(accepted, att.URL)
		}
	}

	if len(accepted) == 0 {
		return MediaResult{Added: 0, Total: len(s.Photos), QuotaMet: false}
	}

	s.Photos = append(s.Photos, accepted...)
	return MediaResult{
		Added:    len(accepted),
		Total:    len(s.Photos),
		QuotaMet: len(s.Photos) >= quota,
	}
}
