package access

// TrustedSource is an authorization record for an upload client. Records
// are provisioned out-of-band and immutable once issued, except for the
// upload counter.
type TrustedSource struct {
	// APIKeyHash is the hashed API key the source authenticates with.
	APIKeyHash string `gorm:"column:api_key_hash;primaryKey" json:"-"`
	// Name is the display name used for upload attribution.
	Name string `gorm:"column:source_name" json:"name"`
	// UploadCount is the number of accepted uploads from this source.
	UploadCount uint64 `gorm:"column:upload_count" json:"upload_count"`
}

// TableName implements the gorm table naming contract.
func (TrustedSource) TableName() string {
	return "trusted_sources"
}

// SuppressedUploader is a presence-only record. Its existence means every
// upload from the hashed uploader identifier is silently discarded.
type SuppressedUploader struct {
	// UploaderIDHash is the hashed uploader identifier.
	UploaderIDHash string `gorm:"column:uploader_id_hash;primaryKey" json:"-"`
}

// TableName implements the gorm table naming contract.
func (SuppressedUploader) TableName() string {
	return "suppressed_uploaders"
}
