package api

import "time"

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type Document struct {
	ID         string     `json:"id"`
	OwnerID    string     `json:"owner_id"`
	Name       string     `json:"name"`
	Size       int64      `json:"size"`
	Status     string     `json:"status"`
	UploadedAt time.Time  `json:"uploaded_at"`
	RejectedAt *time.Time `json:"rejected_at,omitempty"`
	SignedAt   *time.Time `json:"signed_at,omitempty"`
}

type Signature struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"document_id"`
	SignerID   string    `json:"signer_id"`
	Order      int       `json:"order"`
	Digest     string    `json:"sha256"`
	SignedAt   time.Time `json:"signed_at"`
}

type Notification struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

type Empty struct{}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type UserResponse struct {
	User User `json:"user"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}

type DeleteUserRequest struct {
	UserID string `json:"user_id"`
}

// UploadRequest carries the whole file; Data is base64 on the wire.
type UploadRequest struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"data"`
}

// DocumentRequest addresses a single document.
type DocumentRequest struct {
	DocumentID string `json:"document_id"`
}

type ChangeStateRequest struct {
	DocumentID string `json:"document_id"`
	Status     string `json:"status"`
}

type DocumentResponse struct {
	Document Document `json:"document"`
}

type ListDocumentsResponse struct {
	Documents []Document `json:"documents"`
}

type AllowedTransitionsResponse struct {
	Statuses []string `json:"statuses"`
}

type SignatureResponse struct {
	Signature Signature `json:"signature"`
}

type ListSignaturesResponse struct {
	Signatures []Signature `json:"signatures"`
}

type DownloadResponse struct {
	Document    Document `json:"document"`
	ContentType string   `json:"content_type"`
	Digest      string   `json:"sha256"`
	Data        []byte   `json:"data"`
}

type ListNotificationsResponse struct {
	Notifications []Notification `json:"notifications"`
}

type NotificationRequest struct {
	NotificationID string `json:"notification_id"`
}

type NotificationResponse struct {
	Notification Notification `json:"notification"`
}
