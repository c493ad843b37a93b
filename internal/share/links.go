package share

import (
	"fmt"
	"net/url"

	qrcode "github.com/skip2/go-qrcode"
)

const qrSizePixels = 300

// Links is everything a client needs to share one video URL.
type Links struct {
	VideoURL  string            `json:"videoUrl"`
	ShortURL  string            `json:"shortUrl"`
	Platforms map[string]string `json:"platforms"`
}

// BuildLinks assembles the per-platform share links around an issued short
// URL. publicBase is the externally reachable base of this service.
func BuildLinks(publicBase, shortID, videoURL, title string) Links {
	shortURL := fmt.Sprintf("%s/s/%s", publicBase, shortID)
	enc := url.QueryEscape(shortURL)
	text := url.QueryEscape(title)

	return Links{
		VideoURL: videoURL,
		ShortURL: shortURL,
		Platforms: map[string]string{
			"whatsapp": fmt.Sprintf("https://wa.me/?text=%s%%20%s", text, enc),
			"telegram": fmt.Sprintf("https://t.me/share/url?url=%s&text=%s", enc, text),
			"x":        fmt.Sprintf("https://twitter.com/intent/tweet?url=%s&text=%s", enc, text),
			"facebook": fmt.Sprintf("https://www.facebook.com/sharer/sharer.php?u=%s", enc),
			"reddit":   fmt.Sprintf("https://www.reddit.com/submit?url=%s&title=%s", enc, text),
		},
	}
}

// QRCodePNG renders the short URL as a PNG suitable for inline serving.
func QRCodePNG(shortURL string) ([]byte, error) {
	png, err := qrcode.Encode(shortURL, qrcode.Medium, qrSizePixels)
	if err != nil {
		return nil, fmt.Errorf("encode qr code: %w", err)
	}
	return png, nil
}
