package relaymsgs

import (
	"encoding/json"
)

// Shape identifies which of the two supported message encodings a body
// carries.
type Shape int

const (
	ShapeNotification Shape = iota
	ShapeDirect
)

// DecodedMessage is the result of structurally probing a message body.
// Exactly one of Notification or Direct is set, matching Shape.
type DecodedMessage struct {
	Shape        Shape
	Notification *Notification
	Direct       *DirectReference
}

// Decode parses a message body into one of the two supported shapes. The
// presence of a top-level "Records" collection selects the notification
// form; anything else that parses as a JSON object is treated as a direct
// reference. Unparsable bodies return an error.
func Decode(body []byte) (*DecodedMessage, error) {
	var probe struct {
		Records json.RawMessage `json:"Records"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return nil, err
	}

	if probe.Records != nil {
		var notification Notification
		if err := json.Unmarshal(body, &notification); err != nil {
			return nil, err
		}
		return &DecodedMessage{
			Shape:        ShapeNotification,
			Notification: &notification,
		}, nil
	}

	var direct DirectReference
	if err := json.Unmarshal(body, &direct); err != nil {
		return nil, err
	}
	return &DecodedMessage{
		Shape:  ShapeDirect,
		Direct: &direct,
	}, nil
}
