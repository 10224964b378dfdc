package domain

import "time"

type UserRole string

const (
	RoleAdmin           UserRole = "Admin"
	RolePropertyManager UserRole = "PropertyManager"
	RoleTenant          UserRole = "Tenant"
	RoleCaretaker       UserRole = "Caretaker"
)

// StaffRoles are the roles allowed to manage properties and leases.
var StaffRoles = []UserRole{RoleAdmin, RolePropertyManager}

type TenantApproval string

const (
	ApprovalPending  TenantApproval = "Pending"
	ApprovalApproved TenantApproval = "Approved"
	ApprovalRejected TenantApproval = "Rejected"
)

type PropertyStatus string

const (
	PropertyAvailable PropertyStatus = "Available"
	PropertyOccupied  PropertyStatus = "Occupied"
)

type LeaseStatus string

const (
	LeaseActive   LeaseStatus = "Active"
	LeaseArchived LeaseStatus = "Archived"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "Pending"
	PaymentPaid     PaymentStatus = "Paid"
	PaymentOverdue  PaymentStatus = "Overdue"
	PaymentRejected PaymentStatus = "Rejected"
)

type MaintenanceStatus string

const (
	MaintenancePending    MaintenanceStatus = "Pending"
	MaintenanceInProgress MaintenanceStatus = "InProgress"
	MaintenanceResolved   MaintenanceStatus = "Resolved"
)

type InvoiceStatus string

const (
	InvoiceUnpaid InvoiceStatus = "Unpaid"
	InvoicePaid   InvoiceStatus = "Paid"
)

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "Pending"
	ApplicationApproved ApplicationStatus = "Approved"
	ApplicationRejected ApplicationStatus = "Rejected"
)

type User struct {
	ID                     string         `json:"id"`
	FirstName              string         `json:"firstName"`
	LastName               string         `json:"lastName"`
	Email                  string         `json:"email"`
	PasswordHash           string         `json:"-"`
	Role                   UserRole       `json:"role"`
	LanguagePreference     string         `json:"languagePreference"`
	NotificationPreference string         `json:"notificationPreference"`
	IsActive               bool           `json:"isActive"`
	TenantApproval         TenantApproval `json:"tenantApproval,omitempty"`
	FCMToken               string         `json:"fcmToken,omitempty"`
	CreatedAt              time.Time      `json:"createdAt"`
}

type Property struct {
	ID           string         `json:"id"`
	ManagerID    string         `json:"managerId"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Address      string         `json:"address"`
	City         string         `json:"city"`
	Province     string         `json:"province"`
	Country      string         `json:"country"`
	RentAmount   float64        `json:"rentAmount"`
	Bedrooms     int            `json:"numOfBedrooms"`
	Bathrooms    int            `json:"numOfBathrooms"`
	ParkingType  string         `json:"parkingType"`
	ParkingSpots int            `json:"numOfParkingSpots"`
	PetFriendly  bool           `json:"petFriendly"`
	Status       PropertyStatus `json:"status"`
	ListingDate  time.Time      `json:"listingDate"`
}

type PropertyImage struct {
	ID          string    `json:"id"`
	PropertyID  string    `json:"propertyId"`
	StorageKey  string    `json:"-"`
	ContentType string    `json:"contentType"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Lease struct {
	ID           string      `json:"id"`
	PropertyID   string      `json:"propertyId"`
	TenantID     string      `json:"tenantId"`
	StartDate    time.Time   `json:"startDate"`
	EndDate      time.Time   `json:"endDate"`
	Deposit      float64     `json:"deposit"`
	Status       LeaseStatus `json:"status"`
	DocumentKey  string      `json:"-"`
	DocumentType string      `json:"documentType,omitempty"`
	IsArchived   bool        `json:"isArchived"`
	ArchivedAt   *time.Time  `json:"archivedAt,omitempty"`
}

type Payment struct {
	ID        string        `json:"id"`
	TenantID  string        `json:"tenantId"`
	Amount    float64       `json:"amount"`
	Date      time.Time     `json:"date"`
	Status    PaymentStatus `json:"status"`
	ProofKey  string        `json:"-"`
	ProofType string        `json:"proofType,omitempty"`
}

type Maintenance struct {
	ID                  string            `json:"id"`
	TenantID            string            `json:"tenantId"`
	PropertyID          string            `json:"propertyId"`
	AssignedCaretakerID string            `json:"assignedCaretakerId,omitempty"`
	Description         string            `json:"description"`
	Category            string            `json:"category"`
	Urgency             string            `json:"urgency"`
	Status              MaintenanceStatus `json:"status"`
	ProofKey            string            `json:"-"`
	ProofType           string            `json:"proofType,omitempty"`
	CreatedAt           time.Time         `json:"createdAt"`
	UpdatedAt           *time.Time        `json:"updatedAt,omitempty"`
}

// Message is either a direct message (ReceiverID set) or a broadcast
// (ReceiverID empty, optionally scoped to TargetRole).
type Message struct {
	ID          string     `json:"id"`
	SenderID    string     `json:"senderId"`
	ReceiverID  string     `json:"receiverId,omitempty"`
	Text        string     `json:"messageText"`
	Timestamp   time.Time  `json:"timestamp"`
	IsBroadcast bool       `json:"isBroadcast"`
	TargetRole  UserRole   `json:"targetRole,omitempty"`
	IsArchived  bool       `json:"isArchived"`
	ArchivedAt  *time.Time `json:"archivedAt,omitempty"`
}

type Notification struct {
	ID        string            `json:"id"`
	UserID    string            `json:"userId"`
	Text      string            `json:"message"`
	Data      map[string]string `json:"data,omitempty"`
	Timestamp time.Time         `json:"date"`
	IsRead    bool              `json:"isRead"`
}

type Invoice struct {
	ID       string        `json:"id"`
	TenantID string        `json:"tenantId"`
	LeaseID  string        `json:"leaseId"`
	Amount   float64       `json:"amount"`
	DueDate  time.Time     `json:"dueDate"`
	Status   InvoiceStatus `json:"status"`
	PDFKey   string        `json:"-"`
	PDFType  string        `json:"pdfType,omitempty"`
}

type RentalApplication struct {
	ID            string            `json:"id"`
	PropertyID    string            `json:"propertyId"`
	ApplicantName string            `json:"applicantName"`
	Email         string            `json:"email"`
	Phone         string            `json:"phone"`
	Status        ApplicationStatus `json:"status"`
	DocumentKey   string            `json:"-"`
	DocumentType  string            `json:"documentType,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
}

type Report struct {
	ID          string    `json:"id"`
	ManagerID   string    `json:"managerId"`
	Type        string    `json:"type"`
	GeneratedAt time.Time `json:"generatedAt"`
	FileKey     string    `json:"-"`
	FileType    string    `json:"fileType,omitempty"`
}
