package utils

import "regexp"

var dataURIPattern = regexp.MustCompile(`^data:(image/\w+);base64,(.+)$`)

// ParseImageInput splits an uploaded image field into its base64 payload and
// MIME type. Inputs of the form "data:image/png;base64,AAA" are decomposed;
// anything else is assumed to be a bare jpeg payload.
func ParseImageInput(image string) (payload, mimeType string) {
	if m := dataURIPattern.FindStringSubmatch(image); m != nil {
		return m[2], m[1]
	}
	return image, "image/jpeg"
}
