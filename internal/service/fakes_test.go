package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/campusdesk/helpdesk/internal/domain"
	"github.com/campusdesk/helpdesk/internal/repository"
)

var testBaseTime = time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)

type fakeTicketRepo struct {
	mu          sync.Mutex
	tickets     map[string]*domain.Ticket
	seq         int
	searchCalls int
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: make(map[string]*domain.Ticket)}
}

func (r *fakeTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	ticket.ID = fmt.Sprintf("ticket-%d", r.seq)
	ticket.CreatedAt = testBaseTime.Add(time.Duration(r.seq) * time.Minute)
	ticket.UpdatedAt = ticket.CreatedAt
	stored := *ticket
	r.tickets[ticket.ID] = &stored
	return nil
}

func (r *fakeTicketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *ticket
	return &copied, nil
}

func (r *fakeTicketRepo) GetByIDWithOwner(ctx context.Context, id string) (*domain.Ticket, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeTicketRepo) ListByOwner(_ context.Context, ownerID string) ([]domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Ticket
	for _, ticket := range r.tickets {
		if ticket.OwnerID == ownerID {
			result = append(result, *ticket)
		}
	}
	sortNewestFirst(result)
	return result, nil
}

func (r *fakeTicketRepo) ListAllWithOwner(_ context.Context) ([]domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Ticket
	for _, ticket := range r.tickets {
		result = append(result, *ticket)
	}
	sortNewestFirst(result)
	return result, nil
}

func (r *fakeTicketRepo) UpdateStatus(_ context.Context, id string, status domain.TicketStatus) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	ticket.Status = status
	ticket.UpdatedAt = time.Now()
	copied := *ticket
	return &copied, nil
}

func (r *fakeTicketRepo) UpdateDepartment(_ context.Context, id string, department *domain.Department) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	ticket.AssignedDepartment = department
	ticket.UpdatedAt = time.Now()
	copied := *ticket
	return &copied, nil
}

func (r *fakeTicketRepo) Touch(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket, ok := r.tickets[id]
	if !ok {
		return pgx.ErrNoRows
	}
	ticket.UpdatedAt = time.Now()
	return nil
}

func (r *fakeTicketRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tickets[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.tickets, id)
	return nil
}

func (r *fakeTicketRepo) Search(_ context.Context, ownerID *string, term string) ([]domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.searchCalls++
	needle := strings.ToLower(strings.TrimSpace(term))
	var result []domain.Ticket
	for _, ticket := range r.tickets {
		if ownerID != nil && ticket.OwnerID != *ownerID {
			continue
		}
		haystack := strings.ToLower(ticket.Subject + " " + ticket.Description + " " + ticket.Category + " " + string(ticket.Status))
		if strings.Contains(haystack, needle) {
			result = append(result, *ticket)
		}
	}
	sortNewestFirst(result)
	if len(result) > 20 {
		result = result[:20]
	}
	return result, nil
}

func (r *fakeTicketRepo) CountByStatus(_ context.Context, ownerID *string) (domain.TicketStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var stats domain.TicketStats
	for _, ticket := range r.tickets {
		if ownerID != nil && ticket.OwnerID != *ownerID {
			continue
		}
		stats.Total++
		switch ticket.Status {
		case domain.TicketStatusOpen:
			stats.Open++
		case domain.TicketStatusInProgress:
			stats.InProgress++
		case domain.TicketStatusResolved:
			stats.Resolved++
		case domain.TicketStatusClosed:
			stats.Closed++
		}
	}
	return stats, nil
}

func sortNewestFirst(tickets []domain.Ticket) {
	sort.SliceStable(tickets, func(i, j int) bool {
		return tickets[i].CreatedAt.After(tickets[j].CreatedAt)
	})
}

type fakeResponseRepo struct {
	mu        sync.Mutex
	responses []domain.Response
	seq       int
}

func newFakeResponseRepo() *fakeResponseRepo {
	return &fakeResponseRepo{}
}

func (r *fakeResponseRepo) Create(_ context.Context, response *domain.Response) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	response.ID = fmt.Sprintf("response-%d", r.seq)
	response.CreatedAt = testBaseTime.Add(time.Duration(r.seq) * time.Second)
	r.responses = append(r.responses, *response)
	return nil
}

func (r *fakeResponseRepo) ListByTicket(_ context.Context, ticketID string) ([]domain.Response, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Response
	for _, response := range r.responses {
		if response.TicketID == ticketID {
			result = append(result, response)
		}
	}
	return result, nil
}

type fakeNotificationRepo struct {
	mu            sync.Mutex
	notifications []domain.Notification
	seq           int
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (r *fakeNotificationRepo) Create(_ context.Context, notification *domain.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	notification.ID = fmt.Sprintf("notification-%d", r.seq)
	notification.CreatedAt = testBaseTime.Add(time.Duration(r.seq) * time.Second)
	r.notifications = append(r.notifications, *notification)
	return nil
}

func (r *fakeNotificationRepo) ListByRecipient(_ context.Context, recipientID string) ([]domain.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Notification
	for i := len(r.notifications) - 1; i >= 0; i-- {
		if r.notifications[i].RecipientID == recipientID {
			result = append(result, r.notifications[i])
		}
		if len(result) == 20 {
			break
		}
	}
	return result, nil
}

func (r *fakeNotificationRepo) CountUnread(_ context.Context, recipientID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, notification := range r.notifications {
		if notification.RecipientID == recipientID && !notification.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) MarkRead(_ context.Context, recipientID, notificationID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.notifications {
		if r.notifications[i].ID == notificationID && r.notifications[i].RecipientID == recipientID {
			r.notifications[i].IsRead = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) MarkAllRead(_ context.Context, recipientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.notifications {
		if r.notifications[i].RecipientID == recipientID {
			r.notifications[i].IsRead = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) all() []domain.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Notification{}, r.notifications...)
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
	seq   int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	user.ID = fmt.Sprintf("user-%d", r.seq)
	user.CreatedAt = testBaseTime
	user.UpdatedAt = testBaseTime
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.users[user.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.Name = user.Name
	stored.School = user.School
	return nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, userID, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.users[userID]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.PasswordHash = passwordHash
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) ListAdmins(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var admins []domain.User
	for _, user := range r.users {
		if user.Role == domain.RoleAdmin {
			admins = append(admins, *user)
		}
	}
	sort.Slice(admins, func(i, j int) bool { return admins[i].ID < admins[j].ID })
	return admins, nil
}

func (r *fakeUserRepo) AdminExists(_ context.Context) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Role == domain.RoleAdmin {
			return true, nil
		}
	}
	return false, nil
}

type fakePasswordResetRepo struct {
	mu     sync.Mutex
	tokens map[string]*repository.PasswordResetToken
	seq    int
}

func newFakePasswordResetRepo() *fakePasswordResetRepo {
	return &fakePasswordResetRepo{tokens: make(map[string]*repository.PasswordResetToken)}
}

func (r *fakePasswordResetRepo) Create(_ context.Context, token *repository.PasswordResetToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	token.ID = fmt.Sprintf("reset-%d", r.seq)
	token.CreatedAt = time.Now()
	stored := *token
	r.tokens[token.Token] = &stored
	return nil
}

func (r *fakePasswordResetRepo) GetValid(_ context.Context, tokenStr string) (*repository.PasswordResetToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	token, ok := r.tokens[tokenStr]
	if !ok || token.Used || time.Now().After(token.ExpiresAt) {
		return nil, pgx.ErrNoRows
	}
	copied := *token
	return &copied, nil
}

func (r *fakePasswordResetRepo) MarkUsed(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, token := range r.tokens {
		if token.ID == id {
			token.Used = true
		}
	}
	return nil
}
