package model

// User is the person an asset is assigned to. Empty fields mean unassigned.
type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// IsZero reports whether the reference names nobody.
func (u User) IsZero() bool {
	return u.Name == "" && u.Email == ""
}

// Asset is a single tracked piece of equipment or software.
type Asset struct {
	ID                  string          `json:"id"`
	AssetTag            string          `json:"assetTag"`
	Name                string          `json:"name"`
	Category            AssetCategory   `json:"category"`
	Status              AssetStatus     `json:"status"`
	PurchaseDate        string          `json:"purchaseDate"`
	ReimageDate         string          `json:"reimageDate"`
	Value               float64         `json:"value"`
	AssignedTo          User            `json:"assignedTo"`
	Department          string          `json:"department"`
	Location            string          `json:"location"`
	Description         string          `json:"description"`
	SerialNumber        string          `json:"serialNumber"`
	AuditLog            []AuditLogEntry `json:"auditLog"`
	AssignmentSignature string          `json:"assignmentSignature,omitempty"`
	DisposalSignature   string          `json:"disposalSignature,omitempty"`
}

// Clone returns a copy whose audit log does not alias the receiver's.
func (a Asset) Clone() Asset {
	if a.AuditLog != nil {
		log := make([]AuditLogEntry, len(a.AuditLog))
		copy(log, a.AuditLog)
		a.AuditLog = log
	}
	return a
}

// HasAssignmentSignature reports whether a signature is on file and meaningful
// for the current status.
func (a Asset) HasAssignmentSignature() bool {
	return a.Status == StatusAssigned && a.AssignmentSignature != ""
}

// HasDisposalSignature reports whether a disposal signature is on file and
// meaningful for the current status.
func (a Asset) HasDisposalSignature() bool {
	return a.Status == StatusDisposed && a.DisposalSignature != ""
}
