package store

import (
	"sort"
	"sync"
	"time"

	"eliterentals/pkg/domain"
)

// MemoryStore keeps everything in-process. It mirrors GormStore semantics and
// backs workflow and job tests.
type MemoryStore struct {
	mu            sync.RWMutex
	users         map[string]domain.User
	properties    map[string]domain.Property
	images        map[string]domain.PropertyImage
	leases        map[string]domain.Lease
	payments      map[string]domain.Payment
	maintenance   map[string]domain.Maintenance
	messages      map[string]domain.Message
	notifications map[string]domain.Notification
	invoices      map[string]domain.Invoice
	applications  map[string]domain.RentalApplication
	reports       map[string]domain.Report
}

// NewMemoryStore initializes an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:         make(map[string]domain.User),
		properties:    make(map[string]domain.Property),
		images:        make(map[string]domain.PropertyImage),
		leases:        make(map[string]domain.Lease),
		payments:      make(map[string]domain.Payment),
		maintenance:   make(map[string]domain.Maintenance),
		messages:      make(map[string]domain.Message),
		notifications: make(map[string]domain.Notification),
		invoices:      make(map[string]domain.Invoice),
		applications:  make(map[string]domain.RentalApplication),
		reports:       make(map[string]domain.Report),
	}
}

// users

func (m *MemoryStore) CreateUser(u domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = u
	return nil
}

func (m *MemoryStore) GetUser(id string) (domain.User, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	return u, ok, nil
}

func (m *MemoryStore) GetUserByEmail(email string) (domain.User, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, true, nil
		}
	}
	return domain.User{}, false, nil
}

func (m *MemoryStore) HasUserEmail(email string) (bool, error) {
	_, ok, err := m.GetUserByEmail(email)
	return ok, err
}

func (m *MemoryStore) ListUsers() ([]domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.User, 0, len(m.users))
	for _, u := range m.users {
		res = append(res, u)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].CreatedAt.Before(res[j].CreatedAt) })
	return res, nil
}

func (m *MemoryStore) ListUsersByRoles(roles ...domain.UserRole) ([]domain.User, error) {
	all, _ := m.ListUsers()
	res := make([]domain.User, 0, len(all))
	for _, u := range all {
		for _, r := range roles {
			if u.Role == r {
				res = append(res, u)
				break
			}
		}
	}
	return res, nil
}

func (m *MemoryStore) UpdateUser(u domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = u
	return nil
}

func (m *MemoryStore) SetUserFCMToken(id, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil
	}
	u.FCMToken = token
	m.users[id] = u
	return nil
}

func (m *MemoryStore) DeleteUser(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, id)
	return nil
}

// properties

func (m *MemoryStore) CreateProperty(p domain.Property) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.properties[p.ID] = p
	return nil
}

func (m *MemoryStore) GetProperty(id string) (domain.Property, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.properties[id]
	return p, ok, nil
}

func (m *MemoryStore) ListProperties() ([]domain.Property, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.Property, 0, len(m.properties))
	for _, p := range m.properties {
		res = append(res, p)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ListingDate.Before(res[j].ListingDate) })
	return res, nil
}

func (m *MemoryStore) UpdateProperty(p domain.Property) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.properties[p.ID] = p
	return nil
}

func (m *MemoryStore) SetPropertyStatus(id string, status domain.PropertyStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.properties[id]
	if !ok {
		return nil
	}
	p.Status = status
	m.properties[id] = p
	return nil
}

func (m *MemoryStore) DeleteProperty(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.properties, id)
	for imgID, img := range m.images {
		if img.PropertyID == id {
			delete(m.images, imgID)
		}
	}
	return nil
}

func (m *MemoryStore) AddPropertyImage(img domain.PropertyImage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.images[img.ID] = img
	return nil
}

func (m *MemoryStore) GetPropertyImage(id string) (domain.PropertyImage, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	img, ok := m.images[id]
	return img, ok, nil
}

func (m *MemoryStore) ListPropertyImages(propertyID string) ([]domain.PropertyImage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.PropertyImage, 0)
	for _, img := range m.images {
		if img.PropertyID == propertyID {
			res = append(res, img)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].CreatedAt.Before(res[j].CreatedAt) })
	return res, nil
}

// leases

func (m *MemoryStore) CreateLease(l domain.Lease) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.properties[l.PropertyID]
	if !ok || p.Status != domain.PropertyAvailable {
		return ErrPropertyUnavailable
	}
	p.Status = domain.PropertyOccupied
	m.properties[p.ID] = p
	m.leases[l.ID] = l
	return nil
}

func (m *MemoryStore) GetLease(id string) (domain.Lease, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	l, ok := m.leases[id]
	return l, ok, nil
}

func (m *MemoryStore) ListLeases() ([]domain.Lease, error) {
	return m.listLeases(false), nil
}

func (m *MemoryStore) ListArchivedLeases() ([]domain.Lease, error) {
	return m.listLeases(true), nil
}

func (m *MemoryStore) listLeases(archived bool) []domain.Lease {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.Lease, 0, len(m.leases))
	for _, l := range m.leases {
		if l.IsArchived == archived {
			res = append(res, l)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].StartDate.Before(res[j].StartDate) })
	return res
}

func (m *MemoryStore) UpdateLease(l domain.Lease) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leases[l.ID] = l
	return nil
}

func (m *MemoryStore) DeleteLease(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.leases, id)
	return nil
}

// payments

func (m *MemoryStore) CreatePayment(p domain.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payments[p.ID] = p
	return nil
}

func (m *MemoryStore) GetPayment(id string) (domain.Payment, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.payments[id]
	return p, ok, nil
}

func (m *MemoryStore) ListPayments() ([]domain.Payment, error) {
	return m.listPayments(func(domain.Payment) bool { return true }), nil
}

func (m *MemoryStore) ListPaymentsByTenant(tenantID string) ([]domain.Payment, error) {
	return m.listPayments(func(p domain.Payment) bool { return p.TenantID == tenantID }), nil
}

func (m *MemoryStore) ListUnpaidPaymentsBefore(cutoff time.Time) ([]domain.Payment, error) {
	return m.listPayments(func(p domain.Payment) bool {
		return p.Status != domain.PaymentPaid && p.Date.Before(cutoff)
	}), nil
}

func (m *MemoryStore) listPayments(keep func(domain.Payment) bool) []domain.Payment {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.Payment, 0, len(m.payments))
	for _, p := range m.payments {
		if keep(p) {
			res = append(res, p)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Date.Before(res[j].Date) })
	return res
}

func (m *MemoryStore) UpdatePayment(p domain.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payments[p.ID] = p
	return nil
}

func (m *MemoryStore) SetPaymentStatus(id string, status domain.PaymentStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.payments[id]
	if !ok {
		return nil
	}
	p.Status = status
	m.payments[id] = p
	return nil
}

// maintenance

func (m *MemoryStore) CreateMaintenance(req domain.Maintenance) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.maintenance[req.ID] = req
	return nil
}

func (m *MemoryStore) GetMaintenance(id string) (domain.Maintenance, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	req, ok := m.maintenance[id]
	return req, ok, nil
}

func (m *MemoryStore) ListMaintenance() ([]domain.Maintenance, error) {
	return m.listMaintenance(func(domain.Maintenance) bool { return true }), nil
}

func (m *MemoryStore) ListMaintenanceByTenant(tenantID string) ([]domain.Maintenance, error) {
	return m.listMaintenance(func(r domain.Maintenance) bool { return r.TenantID == tenantID }), nil
}

func (m *MemoryStore) ListMaintenanceByCaretaker(caretakerID string) ([]domain.Maintenance, error) {
	return m.listMaintenance(func(r domain.Maintenance) bool { return r.AssignedCaretakerID == caretakerID }), nil
}

func (m *MemoryStore) listMaintenance(keep func(domain.Maintenance) bool) []domain.Maintenance {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.Maintenance, 0, len(m.maintenance))
	for _, r := range m.maintenance {
		if keep(r) {
			res = append(res, r)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].CreatedAt.After(res[j].CreatedAt) })
	return res
}

func (m *MemoryStore) UpdateMaintenance(req domain.Maintenance) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.maintenance[req.ID] = req
	return nil
}

// messages

func (m *MemoryStore) CreateMessage(msg domain.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages[msg.ID] = msg
	return nil
}

func (m *MemoryStore) GetMessage(id string) (domain.Message, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	msg, ok := m.messages[id]
	return msg, ok, nil
}

func (m *MemoryStore) ListConversation(userA, userB string) ([]domain.Message, error) {
	res := m.listMessages(func(msg domain.Message) bool {
		return (msg.SenderID == userA && msg.ReceiverID == userB) ||
			(msg.SenderID == userB && msg.ReceiverID == userA)
	})
	sort.Slice(res, func(i, j int) bool { return res[i].Timestamp.Before(res[j].Timestamp) })
	return res, nil
}

func (m *MemoryStore) ListInbox(userID string) ([]domain.Message, error) {
	return m.listMessages(func(msg domain.Message) bool { return msg.ReceiverID == userID }), nil
}

func (m *MemoryStore) ListSent(userID string) ([]domain.Message, error) {
	return m.listMessages(func(msg domain.Message) bool { return msg.SenderID == userID }), nil
}

func (m *MemoryStore) ListBroadcasts(role domain.UserRole) ([]domain.Message, error) {
	return m.listMessages(func(msg domain.Message) bool {
		return msg.IsBroadcast && (msg.TargetRole == "" || msg.TargetRole == role)
	}), nil
}

// listMessages returns matches newest first.
func (m *MemoryStore) listMessages(keep func(domain.Message) bool) []domain.Message {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.Message, 0, len(m.messages))
	for _, msg := range m.messages {
		if keep(msg) {
			res = append(res, msg)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Timestamp.After(res[j].Timestamp) })
	return res
}

func (m *MemoryStore) UpdateMessage(msg domain.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages[msg.ID] = msg
	return nil
}

// notifications

func (m *MemoryStore) CreateNotification(n domain.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifications[n.ID] = n
	return nil
}

func (m *MemoryStore) ListNotificationsByUser(userID string) ([]domain.Notification, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.Notification, 0)
	for _, n := range m.notifications {
		if n.UserID == userID {
			res = append(res, n)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Timestamp.After(res[j].Timestamp) })
	return res, nil
}

func (m *MemoryStore) MarkNotificationRead(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.notifications[id]
	if !ok {
		return nil
	}
	n.IsRead = true
	m.notifications[id] = n
	return nil
}

// invoices

func (m *MemoryStore) CreateInvoice(inv domain.Invoice) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invoices[inv.ID] = inv
	return nil
}

func (m *MemoryStore) GetInvoice(id string) (domain.Invoice, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	inv, ok := m.invoices[id]
	return inv, ok, nil
}

func (m *MemoryStore) ListInvoices() ([]domain.Invoice, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.Invoice, 0, len(m.invoices))
	for _, inv := range m.invoices {
		res = append(res, inv)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].DueDate.Before(res[j].DueDate) })
	return res, nil
}

func (m *MemoryStore) UpdateInvoice(inv domain.Invoice) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invoices[inv.ID] = inv
	return nil
}

func (m *MemoryStore) DeleteInvoice(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.invoices, id)
	return nil
}

// rental applications

func (m *MemoryStore) CreateApplication(a domain.RentalApplication) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.applications[a.ID] = a
	return nil
}

func (m *MemoryStore) GetApplication(id string) (domain.RentalApplication, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.applications[id]
	return a, ok, nil
}

func (m *MemoryStore) ListApplications() ([]domain.RentalApplication, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.RentalApplication, 0, len(m.applications))
	for _, a := range m.applications {
		res = append(res, a)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].CreatedAt.After(res[j].CreatedAt) })
	return res, nil
}

func (m *MemoryStore) UpdateApplication(a domain.RentalApplication) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.applications[a.ID] = a
	return nil
}

func (m *MemoryStore) SetApplicationStatus(id string, status domain.ApplicationStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.applications[id]
	if !ok {
		return nil
	}
	a.Status = status
	m.applications[id] = a
	return nil
}

// reports

func (m *MemoryStore) CreateReport(r domain.Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports[r.ID] = r
	return nil
}

func (m *MemoryStore) GetReport(id string) (domain.Report, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.reports[id]
	return r, ok, nil
}

func (m *MemoryStore) ListReports() ([]domain.Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.Report, 0, len(m.reports))
	for _, r := range m.reports {
		res = append(res, r)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].GeneratedAt.After(res[j].GeneratedAt) })
	return res, nil
}

func (m *MemoryStore) DeleteReport(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.reports, id)
	return nil
}
