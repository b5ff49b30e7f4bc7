package relaymsgs

// EventSourceS3 is the only event source that triggers a copy. Inner
// records tagged with anything else are skipped without being counted.
const EventSourceS3 = "aws:s3"

// Notification is the multi-record shape emitted by S3 bucket
// notifications, one inner record per object event.
//
// Example:
//
// {
//   "Records": [
//     {
//       "eventSource": "aws:s3",
//       "eventName": "ObjectCreated:Put",
//       "s3": {
//         "bucket": { "name": "uploads" },
//         "object": { "key": "folder/a.txt" }
//       }
//     }
//   ]
// }
type Notification struct {
	Records []NotificationRecord `json:"Records"`
}

type NotificationRecord struct {
	EventSource string   `json:"eventSource"`
	EventName   string   `json:"eventName,omitempty"`
	S3          S3Entity `json:"s3"`
}

type S3Entity struct {
	Bucket S3Bucket `json:"bucket"`
	Object S3Object `json:"object"`
}

type S3Bucket struct {
	Name string `json:"name"`
	ARN  string `json:"arn,omitempty"`
}

type S3Object struct {
	Key  string `json:"key"`
	Size int64  `json:"size,omitempty"`
	ETag string `json:"eTag,omitempty"`
}

// DirectReference is the alternate flat shape, a single bucket/object pair
// with no wrapper.
//
// Example:
//
// {
//   "bucket": { "name": "uploads" },
//   "object": { "key": "folder/a.txt" }
// }
type DirectReference struct {
	Bucket S3Bucket `json:"bucket"`
	Object S3Object `json:"object"`
}

// ObjectReference is a resolved source object. Both fields must be
// non-empty for the reference to be actionable.
type ObjectReference struct {
	Bucket string
	Key    string
}

func (r ObjectReference) Complete() bool {
	return r.Bucket != "" && r.Key != ""
}

func (rec NotificationRecord) Reference() ObjectReference {
	return ObjectReference{
		Bucket: rec.S3.Bucket.Name,
		Key:    rec.S3.Object.Key,
	}
}

func (d DirectReference) Reference() ObjectReference {
	return ObjectReference{
		Bucket: d.Bucket.Name,
		Key:    d.Object.Key,
	}
}
