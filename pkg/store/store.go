package store

import (
	"errors"
	"time"

	"eliterentals/pkg/domain"
)

// ErrPropertyUnavailable is returned by CreateLease when the occupancy guard
// fails: the property row is absent or its status is already Occupied.
var ErrPropertyUnavailable = errors.New("property unavailable for lease")

// Store defines persistence operations for the rental domain.
type Store interface {
	// users
	CreateUser(domain.User) error
	GetUser(id string) (domain.User, bool, error)
	GetUserByEmail(email string) (domain.User, bool, error)
	HasUserEmail(email string) (bool, error)
	ListUsers() ([]domain.User, error)
	ListUsersByRoles(roles ...domain.UserRole) ([]domain.User, error)
	UpdateUser(domain.User) error
	SetUserFCMToken(id, token string) error
	DeleteUser(id string) error

	// properties
	CreateProperty(domain.Property) error
	GetProperty(id string) (domain.Property, bool, error)
	ListProperties() ([]domain.Property, error)
	UpdateProperty(domain.Property) error
	SetPropertyStatus(id string, status domain.PropertyStatus) error
	DeleteProperty(id string) error
	AddPropertyImage(domain.PropertyImage) error
	GetPropertyImage(id string) (domain.PropertyImage, bool, error)
	ListPropertyImages(propertyID string) ([]domain.PropertyImage, error)

	// leases
	// CreateLease inserts the lease and flips the property to Occupied as one
	// unit; it fails with ErrPropertyUnavailable when the property is not
	// currently Available.
	CreateLease(domain.Lease) error
	GetLease(id string) (domain.Lease, bool, error)
	ListLeases() ([]domain.Lease, error)
	ListArchivedLeases() ([]domain.Lease, error)
	UpdateLease(domain.Lease) error
	DeleteLease(id string) error

	// payments
	CreatePayment(domain.Payment) error
	GetPayment(id string) (domain.Payment, bool, error)
	ListPayments() ([]domain.Payment, error)
	ListPaymentsByTenant(tenantID string) ([]domain.Payment, error)
	ListUnpaidPaymentsBefore(cutoff time.Time) ([]domain.Payment, error)
	UpdatePayment(domain.Payment) error
	SetPaymentStatus(id string, status domain.PaymentStatus) error

	// maintenance
	CreateMaintenance(domain.Maintenance) error
	GetMaintenance(id string) (domain.Maintenance, bool, error)
	ListMaintenance() ([]domain.Maintenance, error)
	ListMaintenanceByTenant(tenantID string) ([]domain.Maintenance, error)
	ListMaintenanceByCaretaker(caretakerID string) ([]domain.Maintenance, error)
	UpdateMaintenance(domain.Maintenance) error

	// messages
	CreateMessage(domain.Message) error
	GetMessage(id string) (domain.Message, bool, error)
	ListConversation(userA, userB string) ([]domain.Message, error)
	ListInbox(userID string) ([]domain.Message, error)
	ListSent(userID string) ([]domain.Message, error)
	ListBroadcasts(role domain.UserRole) ([]domain.Message, error)
	UpdateMessage(domain.Message) error

	// notifications
	CreateNotification(domain.Notification) error
	ListNotificationsByUser(userID string) ([]domain.Notification, error)
	MarkNotificationRead(id string) error

	// invoices
	CreateInvoice(domain.Invoice) error
	GetInvoice(id string) (domain.Invoice, bool, error)
	ListInvoices() ([]domain.Invoice, error)
	UpdateInvoice(domain.Invoice) error
	DeleteInvoice(id string) error

	// rental applications
	CreateApplication(domain.RentalApplication) error
	GetApplication(id string) (domain.RentalApplication, bool, error)
	ListApplications() ([]domain.RentalApplication, error)
	UpdateApplication(domain.RentalApplication) error
	SetApplicationStatus(id string, status domain.ApplicationStatus) error

	// reports
	CreateReport(domain.Report) error
	GetReport(id string) (domain.Report, bool, error)
	ListReports() ([]domain.Report, error)
	DeleteReport(id string) error
}
