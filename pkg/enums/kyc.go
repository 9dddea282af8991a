package enums

import "fmt"

// KYCDocumentType lists the identity documents accepted for verification.
type KYCDocumentType string

const (
	KYCDocumentAadhaar        KYCDocumentType = "aadhaar"
	KYCDocumentPAN            KYCDocumentType = "pan"
	KYCDocumentPassport       KYCDocumentType = "passport"
	KYCDocumentDrivingLicense KYCDocumentType = "driving_license"
)

var validKYCDocumentTypes = []KYCDocumentType{
	KYCDocumentAadhaar,
	KYCDocumentPAN,
	KYCDocumentPassport,
	KYCDocumentDrivingLicense,
}

// String implements fmt.Stringer.
func (d KYCDocumentType) String() string {
	return string(d)
}

// IsValid reports whether the value is a known KYCDocumentType.
func (d KYCDocumentType) IsValid() bool {
	for _, candidate := range validKYCDocumentTypes {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseKYCDocumentType converts raw input into a KYCDocumentType.
func ParseKYCDocumentType(value string) (KYCDocumentType, error) {
	for _, candidate := range validKYCDocumentTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid KYC document type %q", value)
}

// KYCStatus captures the application review workflow.
type KYCStatus string

const (
	KYCStatusPending  KYCStatus = "pending"
	KYCStatusAccepted KYCStatus = "accepted"
	KYCStatusRejected KYCStatus = "rejected"
)

var validKYCStatuses = []KYCStatus{
	KYCStatusPending,
	KYCStatusAccepted,
	KYCStatusRejected,
}

// String implements fmt.Stringer.
func (s KYCStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known KYCStatus.
func (s KYCStatus) IsValid() bool {
	for _, candidate := range validKYCStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseKYCStatus converts raw input into a KYCStatus.
func ParseKYCStatus(value string) (KYCStatus, error) {
	for _, candidate := range validKYCStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid KYC status %q", value)
}
