package openaicompat

// ExtensionForMime maps a common audio MIME type to a file extension for
// multipart upload filenames, generalized across every vendor that speaks
// OpenAI's multipart transcription wire shape.
func ExtensionForMime(mimeType string) string {
	switch mimeType {
	case "audio/mpeg", "audio/mp3":
		return ".mp3"
	case "audio/wav":
		return ".wav"
	case "audio/webm":
		return ".webm"
	case "audio/mp4", "audio/m4a":
		return ".m4a"
	default:
		return ".audio"
	}
}
