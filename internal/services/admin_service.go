package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/uuid"
)

// Default page sizes of the admin listings.
const (
	DefaultAdminUserPageLimit = 10
	DefaultAdminLogPageLimit  = 50
)

// likeEscaper quotes the LIKE wildcards in user-supplied search text.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern returns a LIKE pattern matching s literally anywhere in a
// value. It must be used with ESCAPE '\'.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// adminService handles cross-user administration.
type adminService struct {
	db *gorm.DB
}

// NewAdminService creates a new AdminServicer.
func NewAdminService(db *gorm.DB) AdminServicer {
	return &adminService{db: db}
}

// ListUsers returns users newest first with their transaction counts.
// search matches username, email or full name, case-insensitively.
func (s *adminService) ListUsers(ctx context.Context, page pagination.PageRequest, search string) (*pagination.PageResponse[AdminUser], error) {
	page.Defaults(DefaultAdminUserPageLimit)

	search = strings.ToLower(strings.TrimSpace(search))
	filtered := func() *gorm.DB {
		q := s.db.WithContext(ctx).Model(&models.User{})
		if search != "" {
			like := containsPattern(search)
			q = q.Where(`(LOWER(users.username) LIKE ? ESCAPE '\' OR LOWER(users.email) LIKE ? ESCAPE '\' OR LOWER(users.full_name) LIKE ? ESCAPE '\')`, like, like, like)
		}
		return q
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var users []AdminUser
	err := filtered().Select("users.id, users.username, users.email, users.full_name, users.is_admin, users.is_active, users.created_at, " +
		"(SELECT COUNT(*) FROM transactions WHERE transactions.user_id = users.id) AS transaction_count").
		Order("users.created_at DESC").
		Scopes(pagination.Paginate(page)).
		Scan(&users).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(users, page.Page, page.Limit, total)
	return &resp, nil
}

// UpdateUser toggles the admin and active flags of a user.
func (s *adminService) UpdateUser(ctx context.Context, userID string, update UserUpdate) (*models.User, error) {
	if !uuid.IsValid(userID) {
		return nil, apperrors.ErrUserNotFound
	}
	db := s.db.WithContext(ctx)

	var user models.User
	if err := db.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	changes := map[string]interface{}{}
	if update.IsAdmin != nil {
		changes["is_admin"] = *update.IsAdmin
	}
	if update.IsActive != nil {
		changes["is_active"] = *update.IsActive
	}
	if len(changes) == 0 {
		return &user, nil
	}

	// A map keeps false values that a struct update would skip.
	if err := db.Model(&user).Updates(changes).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// ListLogs returns system log entries newest first.
func (s *adminService) ListLogs(ctx context.Context, page pagination.PageRequest) (*pagination.PageResponse[LogEntry], error) {
	page.Defaults(DefaultAdminLogPageLimit)
	db := s.db.WithContext(ctx)

	var total int64
	if err := db.Model(&models.SystemLog{}).Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var entries []LogEntry
	err := db.Table("system_logs").
		Select("system_logs.id, system_logs.user_id, COALESCE(users.username, '') AS username, " +
			"system_logs.action, system_logs.resource_type, system_logs.resource_id, " +
			"system_logs.ip_address, system_logs.details, system_logs.created_at").
		Joins("LEFT JOIN users ON users.id = system_logs.user_id").
		Order("system_logs.created_at DESC").
		Scopes(pagination.Paginate(page)).
		Scan(&entries).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(entries, page.Page, page.Limit, total)
	return &resp, nil
}
