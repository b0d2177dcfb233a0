package api

import (
	"time"

	"github.com/surveydesk/go-console/users"
)

// Profile is the wire shape of an authenticated user.
type Profile struct {
	ID             int64  `json:"id"`
	Email          string `json:"email"`
	Mobile         string `json:"mobile,omitempty"`
	RoleIdentifier string `json:"roleIdentifier"`
	RoleName       string `json:"roleName,omitempty"`
	FirstName      string `json:"firstName,omitempty"`
	LastName       string `json:"lastName,omitempty"`
}

// User maps the profile onto the canonical user model, remapping the wire
// role identifier to the session role.
func (p *Profile) User() *users.User {
	return &users.User{
		ID:        p.ID,
		Email:     p.Email,
		Mobile:    p.Mobile,
		Role:      users.RoleFromIdentifier(p.RoleIdentifier),
		RoleName:  p.RoleName,
		FirstName: p.FirstName,
		LastName:  p.LastName,
	}
}

// LoginRequest carries the credentials plus advisory client context. The
// device fields come from local introspection and are display metadata for
// the approval prompt, not a security boundary.
type LoginRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	DeviceName      string `json:"deviceName"`
	OperatingSystem string `json:"operatingSystem"`
	Browser         string `json:"browser"`
}

// TwoFactorChallenge describes a login attempt parked on out-of-band approval.
type TwoFactorChallenge struct {
	ID     string `json:"id"`
	Method string `json:"method,omitempty"`
}

// LoginResponse is either a direct-login outcome (Token set) or a two-factor
// descriptor (TwoFactor set); never both.
type LoginResponse struct {
	User      *Profile            `json:"user,omitempty"`
	Token     string              `json:"token,omitempty"`
	TwoFactor *TwoFactorChallenge `json:"twoFactor,omitempty"`
}

// TwoFactorStatus is the approval state of a pending login request.
type TwoFactorStatus string

const (
	TwoFactorPending  TwoFactorStatus = "pending"
	TwoFactorApproved TwoFactorStatus = "approved"
	TwoFactorDeclined TwoFactorStatus = "declined"
	TwoFactorExpired  TwoFactorStatus = "expired"
)

// Terminal reports whether the status ends the approval wait.
func (s TwoFactorStatus) Terminal() bool {
	return s == TwoFactorApproved || s == TwoFactorDeclined || s == TwoFactorExpired
}

// TwoFactorStatusResponse carries the outcome of a status check. User and
// Token are populated only when Status is approved.
type TwoFactorStatusResponse struct {
	Status TwoFactorStatus `json:"status"`
	User   *Profile        `json:"user,omitempty"`
	Token  string          `json:"token,omitempty"`
}

// Task is an assigned work item shown on the task board.
type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	AssigneeID  int64     `json:"assigneeId,omitempty"`
	DueDate     time.Time `json:"dueDate,omitzero"`
}

// Record is a submitted survey record.
type Record struct {
	ID                int64     `json:"id"`
	Reference         string    `json:"reference"`
	ApplicationTypeID int64     `json:"applicationTypeId"`
	Status            string    `json:"status"`
	SubmittedBy       string    `json:"submittedBy,omitempty"`
	CreatedAt         time.Time `json:"createdAt,omitzero"`
}

// ApplicationType categorizes survey records.
type ApplicationType struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Code   string `json:"code,omitempty"`
	Active bool   `json:"active"`
}

// Attachment is file metadata linked to a record. Content transfer is not
// part of this client.
type Attachment struct {
	ID          int64     `json:"id"`
	RecordID    int64     `json:"recordId"`
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType,omitempty"`
	Size        int64     `json:"size,omitempty"`
	UploadedAt  time.Time `json:"uploadedAt,omitzero"`
}
