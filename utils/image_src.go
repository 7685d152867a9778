package utils

import (
	"net/url"
	"regexp"
	"strings"

	"board-customizer/models"
)

// DriveScheme prefixes texture references stored in Google Drive (drive://FILE_ID)
const DriveScheme = "drive://"

var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ImageSrc returns a renderable URL for a CMS image field
// Accepts absolute http(s) URLs, site-relative paths and drive:// references
// Returns false when the field is empty or the reference cannot be rendered
func ImageSrc(field models.ImageField) (string, bool) {
	src := strings.TrimSpace(field.URL)
	if src == "" {
		return "", false
	}

	if strings.HasPrefix(src, DriveScheme) {
		if DriveFileID(src) == "" {
			return "", false
		}
		return src, true
	}

	if strings.HasPrefix(src, "/") && !strings.HasPrefix(src, "//") {
		return src, true
	}

	u, err := url.Parse(src)
	if err != nil {
		return "", false
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", false
	}
	return u.String(), true
}

// DriveFileID extracts the file ID from a drive:// reference
func DriveFileID(src string) string {
	if !strings.HasPrefix(src, DriveScheme) {
		return ""
	}
	id := strings.TrimPrefix(src, DriveScheme)
	if strings.ContainsAny(id, "/?#") {
		return ""
	}
	return id
}

// IsHexColor reports whether s is a #rgb or #rrggbb color
func IsHexColor(s string) bool {
	return hexColorRegex.MatchString(s)
}

// NormalizeHexColor trims and uppercases a hex color, returning "" when invalid
func NormalizeHexColor(s string) string {
	s = strings.TrimSpace(s)
	if s != "" && !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if !IsHexColor(s) {
		return ""
	}
	return strings.ToUpper(s)
}
