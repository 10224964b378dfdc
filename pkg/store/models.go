package store

import (
	"time"

	"gorm.io/datatypes"
)

// GORM models used for persistence.
type UserModel struct {
	ID                     string `gorm:"primaryKey"`
	FirstName              string `gorm:"not null"`
	LastName               string `gorm:"not null"`
	Email                  string `gorm:"uniqueIndex;not null"`
	PasswordHash           string
	Role                   string `gorm:"not null;index"`
	LanguagePreference     string
	NotificationPreference string
	IsActive               bool
	TenantApproval         string
	FCMToken               string
	CreatedAt              time.Time `gorm:"not null"`
}

type PropertyModel struct {
	ID           string `gorm:"primaryKey"`
	ManagerID    string `gorm:"not null;index"`
	Title        string `gorm:"not null"`
	Description  string
	Address      string
	City         string
	Province     string
	Country      string
	RentAmount   float64
	Bedrooms     int
	Bathrooms    int
	ParkingType  string
	ParkingSpots int
	PetFriendly  bool
	Status       string    `gorm:"not null;index"`
	ListingDate  time.Time `gorm:"not null"`
}

type PropertyImageModel struct {
	ID          string    `gorm:"primaryKey"`
	PropertyID  string    `gorm:"not null;index"`
	StorageKey  string    `gorm:"not null"`
	ContentType string    `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null"`
}

type LeaseModel struct {
	ID           string    `gorm:"primaryKey"`
	PropertyID   string    `gorm:"not null;index"`
	TenantID     string    `gorm:"not null;index"`
	StartDate    time.Time `gorm:"not null"`
	EndDate      time.Time `gorm:"not null;index"`
	Deposit      float64
	Status       string `gorm:"not null"`
	DocumentKey  string
	DocumentType string
	IsArchived   bool `gorm:"not null;index"`
	ArchivedAt   *time.Time
}

type PaymentModel struct {
	ID        string    `gorm:"primaryKey"`
	TenantID  string    `gorm:"not null;index"`
	Amount    float64   `gorm:"not null"`
	Date      time.Time `gorm:"not null;index"`
	Status    string    `gorm:"not null;index"`
	ProofKey  string
	ProofType string
}

type MaintenanceModel struct {
	ID                  string `gorm:"primaryKey"`
	TenantID            string `gorm:"not null;index"`
	PropertyID          string `gorm:"not null;index"`
	AssignedCaretakerID string `gorm:"index"`
	Description         string
	Category            string
	Urgency             string
	Status              string    `gorm:"not null"`
	ProofKey            string
	ProofType           string
	CreatedAt           time.Time `gorm:"not null;index"`
	UpdatedAt           *time.Time
}

type MessageModel struct {
	ID          string `gorm:"primaryKey"`
	SenderID    string `gorm:"not null;index"`
	ReceiverID  string `gorm:"index"`
	Text        string `gorm:"type:text;not null"`
	Timestamp   time.Time `gorm:"not null;index"`
	IsBroadcast bool   `gorm:"not null;index"`
	TargetRole  string
	IsArchived  bool `gorm:"not null"`
	ArchivedAt  *time.Time
}

type NotificationModel struct {
	ID        string         `gorm:"primaryKey"`
	UserID    string         `gorm:"not null;index"`
	Text      string         `gorm:"type:text;not null"`
	Data      datatypes.JSON `gorm:"type:jsonb"`
	Timestamp time.Time      `gorm:"not null;index"`
	IsRead    bool           `gorm:"not null"`
}

type InvoiceModel struct {
	ID       string    `gorm:"primaryKey"`
	TenantID string    `gorm:"not null;index"`
	LeaseID  string    `gorm:"not null;index"`
	Amount   float64   `gorm:"not null"`
	DueDate  time.Time `gorm:"not null"`
	Status   string    `gorm:"not null"`
	PDFKey   string
	PDFType  string
}

type RentalApplicationModel struct {
	ID            string `gorm:"primaryKey"`
	PropertyID    string `gorm:"not null;index"`
	ApplicantName string `gorm:"not null"`
	Email         string `gorm:"not null"`
	Phone         string
	Status        string    `gorm:"not null"`
	DocumentKey   string
	DocumentType  string
	CreatedAt     time.Time `gorm:"not null"`
}

type ReportModel struct {
	ID          string    `gorm:"primaryKey"`
	ManagerID   string    `gorm:"not null;index"`
	Type        string    `gorm:"not null"`
	GeneratedAt time.Time `gorm:"not null"`
	FileKey     string
	FileType    string
}
