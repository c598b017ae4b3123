package dto

import (
	"net/url"
	"regexp"
	"strings"
)

var bareID = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// ExtractVideoID accepts youtube.com/watch?v=, youtu.be/, /embed/ and /shorts/
// links, or a bare 11-character id. It returns "" when nothing matches.
func ExtractVideoID(raw string) string {
	raw = strings.TrimSpace(raw)
	if bareID.MatchString(raw) {
		return raw
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	host = strings.TrimPrefix(host, "m.")
	path := strings.Trim(u.Path, "/")

	var id string
	switch host {
	case "youtu.be":
		id, _, _ = strings.Cut(path, "/")
	case "youtube.com", "youtube-nocookie.com":
		switch {
		case path == "watch":
			id = u.Query().Get("v")
		case strings.HasPrefix(path, "embed/"), strings.HasPrefix(path, "shorts/"), strings.HasPrefix(path, "live/"):
			_, rest, _ := strings.Cut(path, "/")
			id, _, _ = strings.Cut(rest, "/")
		}
	}
	if !bareID.MatchString(id) {
		return ""
	}
	return id
}

func EmbedURL(id string) string {
	return "https://www.youtube.com/embed/" + id + "?rel=0&modestbranding=1"
}

func ThumbnailURL(id string) string {
	return "https://img.youtube.com/vi/" + id + "/hqdefault.jpg"
}
