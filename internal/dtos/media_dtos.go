package dtos

// UploadURLsRequest asks for presigned upload slots ahead of a property
// save.
type UploadURLsRequest struct {
	Count int `json:"count" validate:"required,gt=0,lte=20"`
}

// UploadSlot pairs the storage key the client must echo back as the
// photo's remote id with the presigned URL to PUT the bytes to.
type UploadSlot struct {
	RemoteID  string `json:"remote_id"`
	UploadURL string `json:"upload_url"`
}

type UploadURLsResponse struct {
	Slots []UploadSlot `json:"slots"`
}
