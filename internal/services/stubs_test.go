package services_test

import (
	"bytes"
	"context"
	"io"
	"time"

	"designmatch_backend/internal/models"
	"designmatch_backend/internal/repositories"

	"github.com/google/uuid"
)

// In-memory repositories backing the service tests.

type stubUserRepo struct {
	users         map[string]*models.User
	refreshTokens map[string]*models.RefreshToken
	deactivated   []string
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		users:         map[string]*models.User{},
		refreshTokens: map[string]*models.RefreshToken{},
	}
}

func (r *stubUserRepo) FindByID(id string) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, repositories.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *stubUserRepo) Create(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return repositories.ErrUserAlreadyExists
		}
	}
	r.users[user.ID] = user
	return nil
}

func (r *stubUserRepo) Update(user *models.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *stubUserRepo) UpdateStatus(userID string, status models.UserStatus) error {
	u, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.Status = status
	return nil
}

func (r *stubUserRepo) VerifyUser(userID string) error {
	u, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.IsVerified = true
	u.Status = models.UserStatusActive
	u.VerificationToken = ""
	return nil
}

func (r *stubUserRepo) Deactivate(userID string) error {
	u, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	now := time.Now()
	u.Status = models.UserStatusDeactivated
	u.DeactivatedAt = &now
	r.deactivated = append(r.deactivated, userID)
	return nil
}

func (r *stubUserRepo) FindByVerificationToken(token string) (*models.User, error) {
	for _, u := range r.users {
		if token != "" && u.VerificationToken == token {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *stubUserRepo) FindByResetToken(token string) (*models.User, error) {
	for _, u := range r.users {
		if token != "" && u.ResetToken == token {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *stubUserRepo) CreateRefreshToken(token *models.RefreshToken) error {
	if token.ID == "" {
		token.ID = uuid.NewString()
	}
	r.refreshTokens[token.Token] = token
	return nil
}

func (r *stubUserRepo) FindRefreshToken(token string) (*models.RefreshToken, error) {
	if t, ok := r.refreshTokens[token]; ok {
		return t, nil
	}
	return nil, repositories.ErrUserNotFound
}

func (r *stubUserRepo) DeleteRefreshToken(token string) error {
	delete(r.refreshTokens, token)
	return nil
}

func (r *stubUserRepo) DeleteUserRefreshTokens(userID string) error {
	for k, t := range r.refreshTokens {
		if t.UserID == userID {
			delete(r.refreshTokens, k)
		}
	}
	return nil
}

func (r *stubUserRepo) CleanExpiredRefreshTokens() error {
	for k, t := range r.refreshTokens {
		if t.ExpiresAt.Before(time.Now()) {
			delete(r.refreshTokens, k)
		}
	}
	return nil
}

type stubProfileRepo struct {
	profiles map[string]*models.UserProfile // keyed by user ID
}

func newStubProfileRepo() *stubProfileRepo {
	return &stubProfileRepo{profiles: map[string]*models.UserProfile{}}
}

func (r *stubProfileRepo) FindByUserID(userID string) (*models.UserProfile, error) {
	if p, ok := r.profiles[userID]; ok {
		return p, nil
	}
	return nil, repositories.ErrProfileNotFound
}

func (r *stubProfileRepo) FindByID(id string) (*models.UserProfile, error) {
	for _, p := range r.profiles {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, repositories.ErrProfileNotFound
}

func (r *stubProfileRepo) Create(profile *models.UserProfile) error {
	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}
	r.profiles[profile.UserID] = profile
	return nil
}

func (r *stubProfileRepo) Update(profile *models.UserProfile) error {
	r.profiles[profile.UserID] = profile
	return nil
}

func (r *stubProfileRepo) UpdateUserType(userID string, userType models.UserType) error {
	p, ok := r.profiles[userID]
	if !ok {
		return repositories.ErrProfileNotFound
	}
	p.UserType = userType
	return nil
}

func (r *stubProfileRepo) FindDesigners(filter repositories.DesignerFilter) ([]models.UserProfile, int64, error) {
	var out []models.UserProfile
	for _, p := range r.profiles {
		if p.UserType == models.UserTypeDesigner {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}

type stubProjectRepo struct {
	projects      map[string]*models.Project
	statusChanges []models.ProjectStatus
	completed     []string
}

func newStubProjectRepo() *stubProjectRepo {
	return &stubProjectRepo{projects: map[string]*models.Project{}}
}

func (r *stubProjectRepo) add(p *models.Project) *models.Project {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	r.projects[p.ID] = p
	return p
}

func (r *stubProjectRepo) FindByID(id string) (*models.Project, error) {
	if p, ok := r.projects[id]; ok {
		return p, nil
	}
	return nil, repositories.ErrProjectNotFound
}

func (r *stubProjectRepo) FindByIDWithParties(id string) (*models.Project, error) {
	return r.FindByID(id)
}

func (r *stubProjectRepo) FindByUser(userID string, limit, offset int) ([]models.Project, int64, error) {
	var out []models.Project
	for _, p := range r.projects {
		if p.IsParticipant(userID) {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubProjectRepo) Create(project *models.Project) error {
	r.add(project)
	return nil
}

func (r *stubProjectRepo) Update(project *models.Project) error {
	r.projects[project.ID] = project
	return nil
}

func (r *stubProjectRepo) UpdateStatus(projectID string, status models.ProjectStatus) error {
	p, ok := r.projects[projectID]
	if !ok {
		return repositories.ErrProjectNotFound
	}
	p.Status = status
	r.statusChanges = append(r.statusChanges, status)
	return nil
}

func (r *stubProjectRepo) AssignDesigner(projectID, designerID string) error {
	p, ok := r.projects[projectID]
	if !ok {
		return repositories.ErrProjectNotFound
	}
	p.DesignerID = &designerID
	return nil
}

func (r *stubProjectRepo) MarkCompleted(projectID string) error {
	p, ok := r.projects[projectID]
	if !ok {
		return repositories.ErrProjectNotFound
	}
	now := time.Now()
	p.Status = models.ProjectStatusCompleted
	p.CompletedAt = &now
	r.completed = append(r.completed, projectID)
	return nil
}

func (r *stubProjectRepo) CountByUserAndStatus(userID string, statuses []models.ProjectStatus) (int64, error) {
	var n int64
	for _, p := range r.projects {
		if !p.IsParticipant(userID) {
			continue
		}
		for _, s := range statuses {
			if p.Status == s {
				n++
				break
			}
		}
	}
	return n, nil
}

func (r *stubProjectRepo) SumCompletedBudgetByDesigner(designerID string) (float64, error) {
	var sum float64
	for _, p := range r.projects {
		if p.DesignerID != nil && *p.DesignerID == designerID && p.Status == models.ProjectStatusCompleted {
			sum += p.Budget
		}
	}
	return sum, nil
}

type stubPaymentRepo struct {
	payments map[string]*models.Payment
	paid     []string
}

func newStubPaymentRepo() *stubPaymentRepo {
	return &stubPaymentRepo{payments: map[string]*models.Payment{}}
}

func (r *stubPaymentRepo) FindByID(id string) (*models.Payment, error) {
	if p, ok := r.payments[id]; ok {
		return p, nil
	}
	return nil, repositories.ErrPaymentNotFound
}

func (r *stubPaymentRepo) FindByPaymentIntentID(intentID string) (*models.Payment, error) {
	for _, p := range r.payments {
		if p.StripePaymentIntentID == intentID {
			return p, nil
		}
	}
	return nil, repositories.ErrPaymentNotFound
}

func (r *stubPaymentRepo) FindByProject(projectID string) ([]models.Payment, error) {
	var out []models.Payment
	for _, p := range r.payments {
		if p.ProjectID == projectID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubPaymentRepo) Create(payment *models.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.NewString()
	}
	r.payments[payment.ID] = payment
	return nil
}

func (r *stubPaymentRepo) UpdateStatus(paymentID string, status models.PaymentStatus) error {
	p, ok := r.payments[paymentID]
	if !ok {
		return repositories.ErrPaymentNotFound
	}
	p.Status = status
	return nil
}

func (r *stubPaymentRepo) MarkPaid(paymentID string) error {
	p, ok := r.payments[paymentID]
	if !ok {
		return repositories.ErrPaymentNotFound
	}
	now := time.Now()
	p.Status = models.PaymentStatusSucceeded
	p.PaidAt = &now
	r.paid = append(r.paid, paymentID)
	return nil
}

func (r *stubPaymentRepo) FindStalePending(olderThan time.Duration, limit int) ([]models.Payment, error) {
	var out []models.Payment
	for _, p := range r.payments {
		if p.Status == models.PaymentStatusPending && time.Since(p.CreatedAt) > olderThan {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubPaymentRepo) SumSucceededByClient(clientID string) (float64, error) {
	var sum float64
	for _, p := range r.payments {
		if p.ClientID == clientID && p.Status == models.PaymentStatusSucceeded {
			sum += p.Amount
		}
	}
	return sum, nil
}

type stubDeliverableRepo struct {
	deliverables      map[string]*models.Deliverable
	clearedWatermarks []string // project IDs
}

func newStubDeliverableRepo() *stubDeliverableRepo {
	return &stubDeliverableRepo{deliverables: map[string]*models.Deliverable{}}
}

func (r *stubDeliverableRepo) FindByID(id string) (*models.Deliverable, error) {
	if d, ok := r.deliverables[id]; ok {
		return d, nil
	}
	return nil, repositories.ErrDeliverableNotFound
}

func (r *stubDeliverableRepo) FindByProject(projectID string) ([]models.Deliverable, error) {
	var out []models.Deliverable
	for _, d := range r.deliverables {
		if d.ProjectID == projectID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *stubDeliverableRepo) Create(deliverable *models.Deliverable) error {
	if deliverable.ID == "" {
		deliverable.ID = uuid.NewString()
	}
	r.deliverables[deliverable.ID] = deliverable
	return nil
}

func (r *stubDeliverableRepo) Update(deliverable *models.Deliverable) error {
	r.deliverables[deliverable.ID] = deliverable
	return nil
}

func (r *stubDeliverableRepo) Approve(deliverableID string) error {
	d, ok := r.deliverables[deliverableID]
	if !ok {
		return repositories.ErrDeliverableNotFound
	}
	now := time.Now()
	d.ClientApproved = true
	d.ApprovedAt = &now
	d.IsWatermarked = false
	d.RevisionNotes = ""
	return nil
}

func (r *stubDeliverableRepo) RequestRevision(deliverableID, notes string) error {
	d, ok := r.deliverables[deliverableID]
	if !ok {
		return repositories.ErrDeliverableNotFound
	}
	d.RevisionNotes = notes
	return nil
}

func (r *stubDeliverableRepo) ClearProjectWatermarks(projectID string) error {
	for _, d := range r.deliverables {
		if d.ProjectID == projectID {
			d.IsWatermarked = false
		}
	}
	r.clearedWatermarks = append(r.clearedWatermarks, projectID)
	return nil
}

type stubMessageRepo struct {
	messages          map[string]*models.Message
	clearedWatermarks []string
}

func newStubMessageRepo() *stubMessageRepo {
	return &stubMessageRepo{messages: map[string]*models.Message{}}
}

func (r *stubMessageRepo) FindByID(id string) (*models.Message, error) {
	if m, ok := r.messages[id]; ok {
		return m, nil
	}
	return nil, repositories.ErrMessageNotFound
}

func (r *stubMessageRepo) FindByProject(projectID string, limit, offset int) ([]models.Message, int64, error) {
	var out []models.Message
	for _, m := range r.messages {
		if m.ProjectID == projectID {
			out = append(out, *m)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubMessageRepo) Create(message *models.Message) error {
	if message.ID == "" {
		message.ID = uuid.NewString()
	}
	r.messages[message.ID] = message
	return nil
}

func (r *stubMessageRepo) ClearProjectWatermarks(projectID string) error {
	for _, m := range r.messages {
		if m.ProjectID == projectID {
			m.IsWatermarked = false
		}
	}
	r.clearedWatermarks = append(r.clearedWatermarks, projectID)
	return nil
}

type stubNotificationRepo struct {
	notifications []*models.Notification
}

func (r *stubNotificationRepo) Create(n *models.Notification) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	r.notifications = append(r.notifications, n)
	return nil
}

func (r *stubNotificationRepo) FindByUser(userID string, limit, offset int) ([]models.Notification, int64, error) {
	var out []models.Notification
	for _, n := range r.notifications {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubNotificationRepo) CountUnread(userID string) (int64, error) {
	var n int64
	for _, notif := range r.notifications {
		if notif.UserID == userID && !notif.IsRead {
			n++
		}
	}
	return n, nil
}

func (r *stubNotificationRepo) MarkRead(notificationID, userID string) error {
	for _, n := range r.notifications {
		if n.ID == notificationID && n.UserID == userID {
			now := time.Now()
			n.IsRead = true
			n.ReadAt = &now
			return nil
		}
	}
	return repositories.ErrNotificationNotFound
}

func (r *stubNotificationRepo) MarkAllRead(userID string) error {
	now := time.Now()
	for _, n := range r.notifications {
		if n.UserID == userID && !n.IsRead {
			n.IsRead = true
			n.ReadAt = &now
		}
	}
	return nil
}

// sentEmail records one call on the stub email service.
type sentEmail struct {
	kind    string
	to      string
	token   string
	subject string
}

type stubEmailService struct {
	sent []sentEmail
}

func (s *stubEmailService) SendVerificationEmail(ctx context.Context, to, fullName, token string) error {
	s.sent = append(s.sent, sentEmail{kind: "verification", to: to, token: token})
	return nil
}

func (s *stubEmailService) SendPasswordResetEmail(ctx context.Context, to, fullName, token string) error {
	s.sent = append(s.sent, sentEmail{kind: "password_reset", to: to, token: token})
	return nil
}

func (s *stubEmailService) SendNotificationEmail(ctx context.Context, to, fullName, subject, message string) error {
	s.sent = append(s.sent, sentEmail{kind: "notification", to: to, subject: subject})
	return nil
}

func (s *stubEmailService) SendTestEmail(ctx context.Context, to, templateName string) (string, error) {
	s.sent = append(s.sent, sentEmail{kind: "test", to: to})
	return "stub-1", nil
}

func (s *stubEmailService) ProviderName() string { return "stub" }

// stubStorage keeps saved files in memory.
type stubStorage struct {
	files map[string][]byte
}

func newStubStorage() *stubStorage {
	return &stubStorage{files: map[string][]byte{}}
}

func (s *stubStorage) Save(ctx context.Context, path string, reader io.Reader, contentType string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	s.files[path] = data
	return nil
}

func (s *stubStorage) Get(ctx context.Context, path string) (io.ReadCloser, error) {
	data, ok := s.files[path]
	if !ok {
		return nil, io.ErrUnexpectedEOF
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *stubStorage) Delete(ctx context.Context, path string) error {
	delete(s.files, path)
	return nil
}

func (s *stubStorage) Exists(ctx context.Context, path string) (bool, error) {
	_, ok := s.files[path]
	return ok, nil
}

func (s *stubStorage) GetURL(ctx context.Context, path string) (string, error) {
	return "https://files.test/" + path, nil
}

func (s *stubStorage) GetSignedURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return "https://files.test/" + path + "?signed=1", nil
}

// stubBroadcaster records websocket broadcasts.
type stubBroadcaster struct {
	broadcasts []string // project IDs
}

func (b *stubBroadcaster) BroadcastToProject(projectID string, payload interface{}) {
	b.broadcasts = append(b.broadcasts, projectID)
}
