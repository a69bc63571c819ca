package base64

import (
	stdBase64 "encoding/base64"
	"strings"
)

func GetContentType(file string) string {
	start := len("data:")
	end := strings.Index(file, ";base64,")

	if end == -1 || end < start {
		return ""
	}

	return file[start:end]
}

// ToDataURL wraps raw bytes into a data URL with the given content type.
func ToDataURL(contentType string, data []byte) string {
	return "data:" + contentType + ";base64," + stdBase64.StdEncoding.EncodeToString(data)
}

// Decode strips the data URL prefix, if present, and decodes the payload.
func Decode(file string) ([]byte, error) {
	if idx := strings.Index(file, ";base64,"); idx != -1 {
		file = file[idx+len(";base64,"):]
	}

	return stdBase64.StdEncoding.DecodeString(file)
}
