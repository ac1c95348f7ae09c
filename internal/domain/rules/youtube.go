package rules

import (
	"net/url"
	"regexp"
	"strings"
)

var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

var youtubeHosts = map[string]bool{
	"youtube.com":              true,
	"www.youtube.com":          true,
	"m.youtube.com":            true,
	"youtube-nocookie.com":     true,
	"www.youtube-nocookie.com": true,
}

// ExtractVideoID derives the video id from a pasted YouTube url. ok is false
// when the url matches none of the recognised shapes: watch?v=, embed/ and
// youtu.be/.
func ExtractVideoID(rawURL string) (id string, ok bool) {
	raw := strings.TrimSpace(rawURL)
	if raw == "" || strings.ContainsAny(raw, " \t\n") {
		return "", false
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return "", false
	}
	host := strings.ToLower(u.Hostname())
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")

	switch {
	case host == "youtu.be" || host == "www.youtu.be":
		if len(segments) >= 1 {
			id = segments[0]
		}
	case youtubeHosts[host] && len(segments) >= 2 && segments[0] == "embed":
		id = segments[1]
	case youtubeHosts[host] && u.Path == "/watch":
		id = u.Query().Get("v")
	}

	if !videoIDPattern.MatchString(id) {
		return "", false
	}
	return id, true
}
