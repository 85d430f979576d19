// Package loginlog records every authentication attempt as an
// immutable audit entry. The only mutation ever applied to a row is
// the logout-time backfill.
package loginlog

import (
	"context"
	"time"

	"github.com/hweilin/admin-console/model"
	"gorm.io/gorm"
)

// Failure reasons written to the audit trail. The login response never
// exposes these; the caller always sees a generic message.
const (
	ReasonEmptyCredentials = "username or password empty"
	ReasonUnknownUsername  = "username not found"
	ReasonDisabledAccount  = "account disabled"
	ReasonWrongPassword    = "wrong password"
)

// Service appends and queries login audit entries
type Service struct {
	db *gorm.DB
}

// NewService creates a login log service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// RecordSuccess appends a success entry and returns its id for
// embedding in the session token.
func (s *Service) RecordSuccess(ctx context.Context, adminID uint, ip, userAgent string) (uint, error) {
	entry := model.LoginLog{
		AdminID:   adminID,
		IPAddress: ip,
		UserAgent: userAgent,
		LoginTime: time.Now(),
		Status:    model.LoginStatusSuccess,
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return 0, err
	}
	return entry.ID, nil
}

// RecordFailure appends a failed entry. adminID is 0 when the username
// did not resolve to an account.
func (s *Service) RecordFailure(ctx context.Context, adminID uint, ip, userAgent, reason string) error {
	entry := model.LoginLog{
		AdminID:       adminID,
		IPAddress:     ip,
		UserAgent:     userAgent,
		LoginTime:     time.Now(),
		Status:        model.LoginStatusFailed,
		FailureReason: reason,
	}
	return s.db.WithContext(ctx).Create(&entry).Error
}

// MarkLogout backfills the logout timestamp on the entry referenced by
// the session token. Missing rows are not an error.
func (s *Service) MarkLogout(ctx context.Context, logID uint) error {
	now := time.Now()
	return s.db.WithContext(ctx).
		Model(&model.LoginLog{}).
		Where("id = ?", logID).
		Update("logout_time", &now).
		Error
}

// Filter narrows a login log listing
type Filter struct {
	AdminID   uint
	AdminIDIn []uint
	Status    string
	StartDate *time.Time
	EndDate   *time.Time
}

// List returns one page of entries matching the filter, newest first,
// along with the total match count.
func (s *Service) List(ctx context.Context, f Filter, page, limit int) ([]model.LoginLog, int64, error) {
	query := s.db.WithContext(ctx).Model(&model.LoginLog{})

	if len(f.AdminIDIn) > 0 {
		query = query.Where("admin_id IN ?", f.AdminIDIn)
	} else if f.AdminID != 0 {
		query = query.Where("admin_id = ?", f.AdminID)
	}
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.StartDate != nil {
		query = query.Where("login_time >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		query = query.Where("login_time <= ?", *f.EndDate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []model.LoginLog
	offset := (page - 1) * limit
	err := query.
		Offset(offset).
		Limit(limit).
		Order("login_time DESC").
		Find(&logs).
		Error
	if err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}
