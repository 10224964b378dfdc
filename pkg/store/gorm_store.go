package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"eliterentals/pkg/domain"
)

const migrateLockID int64 = 52415241

// GormStore implements Store using GORM.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore opens a Postgres database and runs auto-migrations under an
// advisory lock so that concurrent instances do not race the schema.
func NewGormStore(dsn string) (*GormStore, error) {
	gormLog := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormLog})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := withMigrationLock(db, migrate); err != nil {
		return nil, err
	}
	return &GormStore{db: db}, nil
}

// NewGormStoreWithDialector opens the store on an arbitrary GORM dialector.
// Used by tests to run against SQLite without a database server.
func NewGormStoreWithDialector(dialector gorm.Dialector) (*GormStore, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := migrate(db); err != nil {
		return nil, err
	}
	return &GormStore{db: db}, nil
}

func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&UserModel{},
		&PropertyModel{},
		&PropertyImageModel{},
		&LeaseModel{},
		&PaymentModel{},
		&MaintenanceModel{},
		&MessageModel{},
		&NotificationModel{},
		&InvoiceModel{},
		&RentalApplicationModel{},
		&ReportModel{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

func withMigrationLock(db *gorm.DB, fn func(*gorm.DB) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	conn, err := sqlDB.Conn(ctx)
	if err != nil {
		return fmt.Errorf("open sql conn: %w", err)
	}
	defer conn.Close()
	if err := execAdvisory(ctx, conn, "SELECT pg_advisory_lock($1)", migrateLockID); err != nil {
		return fmt.Errorf("acquire migrate lock: %w", err)
	}
	defer func() {
		_ = execAdvisory(ctx, conn, "SELECT pg_advisory_unlock($1)", migrateLockID)
	}()
	return fn(db)
}

func execAdvisory(ctx context.Context, conn *sql.Conn, query string, lockID int64) error {
	_, err := conn.ExecContext(ctx, query, lockID)
	return err
}

// users

func (s *GormStore) CreateUser(u domain.User) error {
	model := userToModel(u)
	return s.db.Create(&model).Error
}

func (s *GormStore) GetUser(id string) (domain.User, bool, error) {
	var model UserModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.User{}, false, nil
		}
		return domain.User{}, false, err
	}
	return userFromModel(model), true, nil
}

func (s *GormStore) GetUserByEmail(email string) (domain.User, bool, error) {
	var model UserModel
	if err := s.db.Where("email = ?", email).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.User{}, false, nil
		}
		return domain.User{}, false, err
	}
	return userFromModel(model), true, nil
}

func (s *GormStore) HasUserEmail(email string) (bool, error) {
	var count int64
	if err := s.db.Model(&UserModel{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *GormStore) ListUsers() ([]domain.User, error) {
	var models []UserModel
	if err := s.db.Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.User, 0, len(models))
	for _, m := range models {
		res = append(res, userFromModel(m))
	}
	return res, nil
}

func (s *GormStore) ListUsersByRoles(roles ...domain.UserRole) ([]domain.User, error) {
	values := make([]string, 0, len(roles))
	for _, r := range roles {
		values = append(values, string(r))
	}
	var models []UserModel
	if err := s.db.Where("role IN ?", values).Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.User, 0, len(models))
	for _, m := range models {
		res = append(res, userFromModel(m))
	}
	return res, nil
}

func (s *GormStore) UpdateUser(u domain.User) error {
	model := userToModel(u)
	return s.db.Save(&model).Error
}

func (s *GormStore) SetUserFCMToken(id, token string) error {
	return s.db.Model(&UserModel{}).Where("id = ?", id).Update("fcm_token", token).Error
}

func (s *GormStore) DeleteUser(id string) error {
	return s.db.Delete(&UserModel{}, "id = ?", id).Error
}

// properties

func (s *GormStore) CreateProperty(p domain.Property) error {
	model := propertyToModel(p)
	return s.db.Create(&model).Error
}

func (s *GormStore) GetProperty(id string) (domain.Property, bool, error) {
	var model PropertyModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Property{}, false, nil
		}
		return domain.Property{}, false, err
	}
	return propertyFromModel(model), true, nil
}

func (s *GormStore) ListProperties() ([]domain.Property, error) {
	var models []PropertyModel
	if err := s.db.Order("listing_date ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Property, 0, len(models))
	for _, m := range models {
		res = append(res, propertyFromModel(m))
	}
	return res, nil
}

func (s *GormStore) UpdateProperty(p domain.Property) error {
	model := propertyToModel(p)
	return s.db.Save(&model).Error
}

func (s *GormStore) SetPropertyStatus(id string, status domain.PropertyStatus) error {
	return s.db.Model(&PropertyModel{}).Where("id = ?", id).Update("status", string(status)).Error
}

func (s *GormStore) DeleteProperty(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&PropertyImageModel{}, "property_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&PropertyModel{}, "id = ?", id).Error
	})
}

func (s *GormStore) AddPropertyImage(img domain.PropertyImage) error {
	model := PropertyImageModel(img)
	return s.db.Create(&model).Error
}

func (s *GormStore) GetPropertyImage(id string) (domain.PropertyImage, bool, error) {
	var model PropertyImageModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.PropertyImage{}, false, nil
		}
		return domain.PropertyImage{}, false, err
	}
	return domain.PropertyImage(model), true, nil
}

func (s *GormStore) ListPropertyImages(propertyID string) ([]domain.PropertyImage, error) {
	var models []PropertyImageModel
	if err := s.db.Where("property_id = ?", propertyID).Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.PropertyImage, 0, len(models))
	for _, m := range models {
		res = append(res, domain.PropertyImage(m))
	}
	return res, nil
}

// leases

// CreateLease inserts the lease and flips the property Available -> Occupied
// in one transaction. The guarded UPDATE doubles as an optimistic concurrency
// check: a concurrent lease on the same property loses the race and gets
// ErrPropertyUnavailable instead of a double booking.
func (s *GormStore) CreateLease(l domain.Lease) error {
	model := leaseToModel(l)
	return s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&PropertyModel{}).
			Where("id = ? AND status = ?", l.PropertyID, string(domain.PropertyAvailable)).
			Update("status", string(domain.PropertyOccupied))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrPropertyUnavailable
		}
		return tx.Create(&model).Error
	})
}

func (s *GormStore) GetLease(id string) (domain.Lease, bool, error) {
	var model LeaseModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Lease{}, false, nil
		}
		return domain.Lease{}, false, err
	}
	return leaseFromModel(model), true, nil
}

func (s *GormStore) ListLeases() ([]domain.Lease, error) {
	return s.listLeases("start_date ASC", "is_archived = ?", false)
}

func (s *GormStore) ListArchivedLeases() ([]domain.Lease, error) {
	return s.listLeases("archived_at DESC", "is_archived = ?", true)
}

func (s *GormStore) listLeases(order string, conds ...any) ([]domain.Lease, error) {
	var models []LeaseModel
	tx := s.db.Order(order)
	if len(conds) > 0 {
		tx = tx.Where(conds[0], conds[1:]...)
	}
	if err := tx.Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Lease, 0, len(models))
	for _, m := range models {
		res = append(res, leaseFromModel(m))
	}
	return res, nil
}

func (s *GormStore) UpdateLease(l domain.Lease) error {
	model := leaseToModel(l)
	return s.db.Save(&model).Error
}

func (s *GormStore) DeleteLease(id string) error {
	return s.db.Delete(&LeaseModel{}, "id = ?", id).Error
}

// payments

func (s *GormStore) CreatePayment(p domain.Payment) error {
	model := paymentToModel(p)
	return s.db.Create(&model).Error
}

func (s *GormStore) GetPayment(id string) (domain.Payment, bool, error) {
	var model PaymentModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Payment{}, false, nil
		}
		return domain.Payment{}, false, err
	}
	return paymentFromModel(model), true, nil
}

func (s *GormStore) ListPayments() ([]domain.Payment, error) {
	return s.listPayments()
}

func (s *GormStore) ListPaymentsByTenant(tenantID string) ([]domain.Payment, error) {
	return s.listPayments("tenant_id = ?", tenantID)
}

func (s *GormStore) ListUnpaidPaymentsBefore(cutoff time.Time) ([]domain.Payment, error) {
	return s.listPayments("status <> ? AND date < ?", string(domain.PaymentPaid), cutoff)
}

func (s *GormStore) listPayments(conds ...any) ([]domain.Payment, error) {
	var models []PaymentModel
	tx := s.db.Order("date ASC")
	if len(conds) > 0 {
		tx = tx.Where(conds[0], conds[1:]...)
	}
	if err := tx.Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Payment, 0, len(models))
	for _, m := range models {
		res = append(res, paymentFromModel(m))
	}
	return res, nil
}

func (s *GormStore) UpdatePayment(p domain.Payment) error {
	model := paymentToModel(p)
	return s.db.Save(&model).Error
}

func (s *GormStore) SetPaymentStatus(id string, status domain.PaymentStatus) error {
	return s.db.Model(&PaymentModel{}).Where("id = ?", id).Update("status", string(status)).Error
}

// maintenance

func (s *GormStore) CreateMaintenance(m domain.Maintenance) error {
	model := maintenanceToModel(m)
	return s.db.Create(&model).Error
}

func (s *GormStore) GetMaintenance(id string) (domain.Maintenance, bool, error) {
	var model MaintenanceModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Maintenance{}, false, nil
		}
		return domain.Maintenance{}, false, err
	}
	return maintenanceFromModel(model), true, nil
}

func (s *GormStore) ListMaintenance() ([]domain.Maintenance, error) {
	return s.listMaintenance()
}

func (s *GormStore) ListMaintenanceByTenant(tenantID string) ([]domain.Maintenance, error) {
	return s.listMaintenance("tenant_id = ?", tenantID)
}

func (s *GormStore) ListMaintenanceByCaretaker(caretakerID string) ([]domain.Maintenance, error) {
	return s.listMaintenance("assigned_caretaker_id = ?", caretakerID)
}

func (s *GormStore) listMaintenance(conds ...any) ([]domain.Maintenance, error) {
	var models []MaintenanceModel
	tx := s.db.Order("created_at DESC")
	if len(conds) > 0 {
		tx = tx.Where(conds[0], conds[1:]...)
	}
	if err := tx.Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Maintenance, 0, len(models))
	for _, m := range models {
		res = append(res, maintenanceFromModel(m))
	}
	return res, nil
}

func (s *GormStore) UpdateMaintenance(m domain.Maintenance) error {
	model := maintenanceToModel(m)
	return s.db.Save(&model).Error
}

// messages

func (s *GormStore) CreateMessage(m domain.Message) error {
	model := messageToModel(m)
	return s.db.Create(&model).Error
}

func (s *GormStore) GetMessage(id string) (domain.Message, bool, error) {
	var model MessageModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Message{}, false, nil
		}
		return domain.Message{}, false, err
	}
	return messageFromModel(model), true, nil
}

func (s *GormStore) ListConversation(userA, userB string) ([]domain.Message, error) {
	return s.listMessages("timestamp ASC",
		"(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
		userA, userB, userB, userA)
}

func (s *GormStore) ListInbox(userID string) ([]domain.Message, error) {
	return s.listMessages("timestamp DESC", "receiver_id = ?", userID)
}

func (s *GormStore) ListSent(userID string) ([]domain.Message, error) {
	return s.listMessages("timestamp DESC", "sender_id = ?", userID)
}

func (s *GormStore) ListBroadcasts(role domain.UserRole) ([]domain.Message, error) {
	return s.listMessages("timestamp DESC",
		"is_broadcast = ? AND (target_role = '' OR target_role = ?)", true, string(role))
}

func (s *GormStore) listMessages(order string, cond any, args ...any) ([]domain.Message, error) {
	var models []MessageModel
	if err := s.db.Where(cond, args...).Order(order).Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Message, 0, len(models))
	for _, m := range models {
		res = append(res, messageFromModel(m))
	}
	return res, nil
}

func (s *GormStore) UpdateMessage(m domain.Message) error {
	model := messageToModel(m)
	return s.db.Save(&model).Error
}

// notifications

func (s *GormStore) CreateNotification(n domain.Notification) error {
	model := notificationToModel(n)
	return s.db.Create(&model).Error
}

func (s *GormStore) ListNotificationsByUser(userID string) ([]domain.Notification, error) {
	var models []NotificationModel
	if err := s.db.Where("user_id = ?", userID).Order("timestamp DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Notification, 0, len(models))
	for _, m := range models {
		res = append(res, notificationFromModel(m))
	}
	return res, nil
}

func (s *GormStore) MarkNotificationRead(id string) error {
	return s.db.Model(&NotificationModel{}).Where("id = ?", id).Update("is_read", true).Error
}

// invoices

func (s *GormStore) CreateInvoice(inv domain.Invoice) error {
	model := invoiceToModel(inv)
	return s.db.Create(&model).Error
}

func (s *GormStore) GetInvoice(id string) (domain.Invoice, bool, error) {
	var model InvoiceModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Invoice{}, false, nil
		}
		return domain.Invoice{}, false, err
	}
	return invoiceFromModel(model), true, nil
}

func (s *GormStore) ListInvoices() ([]domain.Invoice, error) {
	var models []InvoiceModel
	if err := s.db.Order("due_date ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Invoice, 0, len(models))
	for _, m := range models {
		res = append(res, invoiceFromModel(m))
	}
	return res, nil
}

func (s *GormStore) UpdateInvoice(inv domain.Invoice) error {
	model := invoiceToModel(inv)
	return s.db.Save(&model).Error
}

func (s *GormStore) DeleteInvoice(id string) error {
	return s.db.Delete(&InvoiceModel{}, "id = ?", id).Error
}

// rental applications

func (s *GormStore) CreateApplication(a domain.RentalApplication) error {
	model := applicationToModel(a)
	return s.db.Create(&model).Error
}

func (s *GormStore) GetApplication(id string) (domain.RentalApplication, bool, error) {
	var model RentalApplicationModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.RentalApplication{}, false, nil
		}
		return domain.RentalApplication{}, false, err
	}
	return applicationFromModel(model), true, nil
}

func (s *GormStore) ListApplications() ([]domain.RentalApplication, error) {
	var models []RentalApplicationModel
	if err := s.db.Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.RentalApplication, 0, len(models))
	for _, m := range models {
		res = append(res, applicationFromModel(m))
	}
	return res, nil
}

func (s *GormStore) UpdateApplication(a domain.RentalApplication) error {
	model := applicationToModel(a)
	return s.db.Save(&model).Error
}

func (s *GormStore) SetApplicationStatus(id string, status domain.ApplicationStatus) error {
	return s.db.Model(&RentalApplicationModel{}).Where("id = ?", id).Update("status", string(status)).Error
}

// reports

func (s *GormStore) CreateReport(r domain.Report) error {
	model := ReportModel(r)
	return s.db.Create(&model).Error
}

func (s *GormStore) GetReport(id string) (domain.Report, bool, error) {
	var model ReportModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Report{}, false, nil
		}
		return domain.Report{}, false, err
	}
	return domain.Report(model), true, nil
}

func (s *GormStore) ListReports() ([]domain.Report, error) {
	var models []ReportModel
	if err := s.db.Order("generated_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Report, 0, len(models))
	for _, m := range models {
		res = append(res, domain.Report(m))
	}
	return res, nil
}

func (s *GormStore) DeleteReport(id string) error {
	return s.db.Delete(&ReportModel{}, "id = ?", id).Error
}

// converters

func userToModel(u domain.User) UserModel {
	return UserModel{
		ID:                     u.ID,
		FirstName:              u.FirstName,
		LastName:               u.LastName,
		Email:                  u.Email,
		PasswordHash:           u.PasswordHash,
		Role:                   string(u.Role),
		LanguagePreference:     u.LanguagePreference,
		NotificationPreference: u.NotificationPreference,
		IsActive:               u.IsActive,
		TenantApproval:         string(u.TenantApproval),
		FCMToken:               u.FCMToken,
		CreatedAt:              u.CreatedAt,
	}
}

func userFromModel(m UserModel) domain.User {
	return domain.User{
		ID:                     m.ID,
		FirstName:              m.FirstName,
		LastName:               m.LastName,
		Email:                  m.Email,
		PasswordHash:           m.PasswordHash,
		Role:                   domain.UserRole(m.Role),
		LanguagePreference:     m.LanguagePreference,
		NotificationPreference: m.NotificationPreference,
		IsActive:               m.IsActive,
		TenantApproval:         domain.TenantApproval(m.TenantApproval),
		FCMToken:               m.FCMToken,
		CreatedAt:              m.CreatedAt,
	}
}

func propertyToModel(p domain.Property) PropertyModel {
	return PropertyModel{
		ID:           p.ID,
		ManagerID:    p.ManagerID,
		Title:        p.Title,
		Description:  p.Description,
		Address:      p.Address,
		City:         p.City,
		Province:     p.Province,
		Country:      p.Country,
		RentAmount:   p.RentAmount,
		Bedrooms:     p.Bedrooms,
		Bathrooms:    p.Bathrooms,
		ParkingType:  p.ParkingType,
		ParkingSpots: p.ParkingSpots,
		PetFriendly:  p.PetFriendly,
		Status:       string(p.Status),
		ListingDate:  p.ListingDate,
	}
}

func propertyFromModel(m PropertyModel) domain.Property {
	return domain.Property{
		ID:           m.ID,
		ManagerID:    m.ManagerID,
		Title:        m.Title,
		Description:  m.Description,
		Address:      m.Address,
		City:         m.City,
		Province:     m.Province,
		Country:      m.Country,
		RentAmount:   m.RentAmount,
		Bedrooms:     m.Bedrooms,
		Bathrooms:    m.Bathrooms,
		ParkingType:  m.ParkingType,
		ParkingSpots: m.ParkingSpots,
		PetFriendly:  m.PetFriendly,
		Status:       domain.PropertyStatus(m.Status),
		ListingDate:  m.ListingDate,
	}
}

func leaseToModel(l domain.Lease) LeaseModel {
	return LeaseModel{
		ID:           l.ID,
		PropertyID:   l.PropertyID,
		TenantID:     l.TenantID,
		StartDate:    l.StartDate,
		EndDate:      l.EndDate,
		Deposit:      l.Deposit,
		Status:       string(l.Status),
		DocumentKey:  l.DocumentKey,
		DocumentType: l.DocumentType,
		IsArchived:   l.IsArchived,
		ArchivedAt:   l.ArchivedAt,
	}
}

func leaseFromModel(m LeaseModel) domain.Lease {
	return domain.Lease{
		ID:           m.ID,
		PropertyID:   m.PropertyID,
		TenantID:     m.TenantID,
		StartDate:    m.StartDate,
		EndDate:      m.EndDate,
		Deposit:      m.Deposit,
		Status:       domain.LeaseStatus(m.Status),
		DocumentKey:  m.DocumentKey,
		DocumentType: m.DocumentType,
		IsArchived:   m.IsArchived,
		ArchivedAt:   m.ArchivedAt,
	}
}

func paymentToModel(p domain.Payment) PaymentModel {
	return PaymentModel{
		ID:        p.ID,
		TenantID:  p.TenantID,
		Amount:    p.Amount,
		Date:      p.Date,
		Status:    string(p.Status),
		ProofKey:  p.ProofKey,
		ProofType: p.ProofType,
	}
}

func paymentFromModel(m PaymentModel) domain.Payment {
	return domain.Payment{
		ID:        m.ID,
		TenantID:  m.TenantID,
		Amount:    m.Amount,
		Date:      m.Date,
		Status:    domain.PaymentStatus(m.Status),
		ProofKey:  m.ProofKey,
		ProofType: m.ProofType,
	}
}

func maintenanceToModel(m domain.Maintenance) MaintenanceModel {
	return MaintenanceModel{
		ID:                  m.ID,
		TenantID:            m.TenantID,
		PropertyID:          m.PropertyID,
		AssignedCaretakerID: m.AssignedCaretakerID,
		Description:         m.Description,
		Category:            m.Category,
		Urgency:             m.Urgency,
		Status:              string(m.Status),
		ProofKey:            m.ProofKey,
		ProofType:           m.ProofType,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

func maintenanceFromModel(m MaintenanceModel) domain.Maintenance {
	return domain.Maintenance{
		ID:                  m.ID,
		TenantID:            m.TenantID,
		PropertyID:          m.PropertyID,
		AssignedCaretakerID: m.AssignedCaretakerID,
		Description:         m.Description,
		Category:            m.Category,
		Urgency:             m.Urgency,
		Status:              domain.MaintenanceStatus(m.Status),
		ProofKey:            m.ProofKey,
		ProofType:           m.ProofType,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

func messageToModel(m domain.Message) MessageModel {
	return MessageModel{
		ID:          m.ID,
		SenderID:    m.SenderID,
		ReceiverID:  m.ReceiverID,
		Text:        m.Text,
		Timestamp:   m.Timestamp,
		IsBroadcast: m.IsBroadcast,
		TargetRole:  string(m.TargetRole),
		IsArchived:  m.IsArchived,
		ArchivedAt:  m.ArchivedAt,
	}
}

func messageFromModel(m MessageModel) domain.Message {
	return domain.Message{
		ID:          m.ID,
		SenderID:    m.SenderID,
		ReceiverID:  m.ReceiverID,
		Text:        m.Text,
		Timestamp:   m.Timestamp,
		IsBroadcast: m.IsBroadcast,
		TargetRole:  domain.UserRole(m.TargetRole),
		IsArchived:  m.IsArchived,
		ArchivedAt:  m.ArchivedAt,
	}
}

func notificationToModel(n domain.Notification) NotificationModel {
	data, _ := json.Marshal(n.Data)
	return NotificationModel{
		ID:        n.ID,
		UserID:    n.UserID,
		Text:      n.Text,
		Data:      data,
		Timestamp: n.Timestamp,
		IsRead:    n.IsRead,
	}
}

func notificationFromModel(m NotificationModel) domain.Notification {
	var data map[string]string
	if len(m.Data) > 0 {
		_ = json.Unmarshal(m.Data, &data)
	}
	return domain.Notification{
		ID:        m.ID,
		UserID:    m.UserID,
		Text:      m.Text,
		Data:      data,
		Timestamp: m.Timestamp,
		IsRead:    m.IsRead,
	}
}

func invoiceToModel(inv domain.Invoice) InvoiceModel {
	return InvoiceModel{
		ID:       inv.ID,
		TenantID: inv.TenantID,
		LeaseID:  inv.LeaseID,
		Amount:   inv.Amount,
		DueDate:  inv.DueDate,
		Status:   string(inv.Status),
		PDFKey:   inv.PDFKey,
		PDFType:  inv.PDFType,
	}
}

func invoiceFromModel(m InvoiceModel) domain.Invoice {
	return domain.Invoice{
		ID:       m.ID,
		TenantID: m.TenantID,
		LeaseID:  m.LeaseID,
		Amount:   m.Amount,
		DueDate:  m.DueDate,
		Status:   domain.InvoiceStatus(m.Status),
		PDFKey:   m.PDFKey,
		PDFType:  m.PDFType,
	}
}

func applicationToModel(a domain.RentalApplication) RentalApplicationModel {
	return RentalApplicationModel{
		ID:            a.ID,
		PropertyID:    a.PropertyID,
		ApplicantName: a.ApplicantName,
		Email:         a.Email,
		Phone:         a.Phone,
		Status:        string(a.Status),
		DocumentKey:   a.DocumentKey,
		DocumentType:  a.DocumentType,
		CreatedAt:     a.CreatedAt,
	}
}

func applicationFromModel(m RentalApplicationModel) domain.RentalApplication {
	return domain.RentalApplication{
		ID:            m.ID,
		PropertyID:    m.PropertyID,
		ApplicantName: m.ApplicantName,
		Email:         m.Email,
		Phone:         m.Phone,
		Status:        domain.ApplicationStatus(m.Status),
		DocumentKey:   m.DocumentKey,
		DocumentType:  m.DocumentType,
		CreatedAt:     m.CreatedAt,
	}
}
