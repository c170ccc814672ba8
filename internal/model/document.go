package model

import "time"

// Document is the metadata record for one uploaded medical file.
// This is a pure domain model with no database-specific dependencies or tags.
// The blob itself is addressed by OwnerID + FileName through the storage
// layer; a full filesystem path is never stored.
type Document struct {
	ID           string     `json:"id"`
	OwnerID      string     `json:"owner_id"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	CategoryID   *string    `json:"category_id,omitempty"`
	CategoryName string     `json:"category_name,omitempty"`
	FileName     string     `json:"file_name"`
	ContentType  string     `json:"content_type"`
	FileSize     int64      `json:"file_size"`
	DoctorName   string     `json:"doctor_name,omitempty"`
	HospitalName string     `json:"hospital_name,omitempty"`
	DocumentDate *time.Time `json:"document_date,omitempty"`
	UploadDate   time.Time  `json:"upload_date"`
	LastModified time.Time  `json:"last_modified"`
}
