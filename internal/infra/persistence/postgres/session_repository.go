package postgres

import (
	"context"

	"jobassist/internal/domain/entity"
	domainerrors "jobassist/internal/domain/errors"
	"jobassist/internal/domain/repository"
	"jobassist/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// sessionRepository implements the domain.SessionRepository interface.
type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository is the constructor for sessionRepository.
func NewSessionRepository(db *gorm.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

// Create persists a new session row.
func (repo *sessionRepository) Create(ctx context.Context, session *entity.Session) error {
	sessionM := fromSessionDomain(session)

	if err := repo.db.WithContext(ctx).Create(sessionM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrSessionIssueFailed.WrapMessage("session references a missing user")
		}
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrSessionIssueFailed.WrapMessage("session token collision")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create session")
	}

	session.CreatedAt = sessionM.CreatedAt

	return nil
}

// FindByToken retrieves a session by its token, expired or not.
func (repo *sessionRepository) FindByToken(ctx context.Context, token string) (*entity.Session, error) {
	var sessionM model.SessionModel
	if err := repo.db.WithContext(ctx).Where("session_token = ?", token).First(&sessionM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSessionNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find session")
	}

	return toSessionDomain(&sessionM), nil
}

// DeleteByToken removes the session if present.
func (repo *sessionRepository) DeleteByToken(ctx context.Context, token string) error {
	if err := repo.db.WithContext(ctx).Where("session_token = ?", token).Delete(&model.SessionModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete session")
	}

	return nil
}

func toSessionDomain(data *model.SessionModel) *entity.Session {
	if data == nil {
		return nil
	}

	return &entity.Session{
		Token:     data.SessionToken,
		UserID:    data.UserID,
		ExpiresAt: data.ExpiresAt,
		CreatedAt: data.CreatedAt,
	}
}

func fromSessionDomain(data *entity.Session) *model.SessionModel {
	if data == nil {
		return nil
	}

	return &model.SessionModel{
		SessionToken: data.Token,
		UserID:       data.UserID,
		ExpiresAt:    data.ExpiresAt,
		CreatedAt:    data.CreatedAt,
	}
}
