package relaymsgs

// IsValidReference reports whether a message body resolves to at least one
// actionable object reference: either a notification with an aws:s3 record
// carrying a populated bucket/key, or a direct reference with both fields
// set. Useful as a pre-filter; the processing path does its own decoding.
func IsValidReference(body []byte) bool {
	decoded, err := Decode(body)
	if err != nil {
		return false
	}

	switch decoded.Shape {
	case ShapeNotification:
		for _, record := range decoded.Notification.Records {
			if record.EventSource == EventSourceS3 && record.Reference().Complete() {
				return true
			}
		}
		return false
	case ShapeDirect:
		return decoded.Direct.Reference().Complete()
	}

	return false
}
