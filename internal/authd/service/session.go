package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/doughlab/authd/internal/authd/domain"
	"github.com/doughlab/authd/internal/authd/store"
	"github.com/doughlab/authd/pkg/cryptox"
	"github.com/doughlab/authd/pkg/jwtx"
	"github.com/doughlab/authd/pkg/slogx"
)

var (
	// ErrCredentialMismatch is returned for both a missing account and a
	// wrong password so callers cannot probe which emails exist.
	ErrCredentialMismatch = errors.New("credential_mismatch")

	// ErrEmailTaken is returned when registering with an email that exists.
	ErrEmailTaken = errors.New("email_taken")

	// ErrInvalidRefresh covers a refresh token that fails verification.
	ErrInvalidRefresh = errors.New("invalid_refresh_token")

	// ErrUnknownRefreshRecord means the token verified but its backing row
	// is gone, i.e. the session was revoked or already rotated away.
	ErrUnknownRefreshRecord = errors.New("unknown_refresh_record")
)

// SessionService owns the login session lifecycle: registration, login,
// refresh rotation and logout.
type SessionService struct {
	Signer       jwtx.Signer        // RS256, access tokens
	RefreshCodec *jwtx.HS256Codec   // HS256, refresh tokens
	Store        store.Store
	Issuer       string
	AccessTTL    time.Duration
	RefreshTTL   time.Duration

	// Now is overridable for tests; defaults to time.Now.
	Now func() time.Time
}

type RegisterParams struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

func (s *SessionService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Register creates a customer account and starts a session for it.
func (s *SessionService) Register(ctx context.Context, p RegisterParams) (domain.User, domain.TokenPair, error) {
	hash, err := cryptox.HashPassword(p.Password)
	if err != nil {
		return domain.User{}, domain.TokenPair{}, err
	}

	user, err := s.Store.Users().CreateUser(ctx, domain.User{
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Email:        p.Email,
		PasswordHash: hash,
		Role:         domain.RoleCustomer,
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, domain.TokenPair{}, ErrEmailTaken
		}
		return domain.User{}, domain.TokenPair{}, err
	}

	slogx.FromContext(ctx).Info("user registered", "user_id", user.ID)

	pair, err := s.issueSession(ctx, user)
	if err != nil {
		return domain.User{}, domain.TokenPair{}, err
	}
	return user, pair, nil
}

// Login verifies credentials and starts a session. A missing account and a
// bad password both collapse into ErrCredentialMismatch.
func (s *SessionService) Login(ctx context.Context, email, password string) (domain.User, domain.TokenPair, error) {
	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, domain.TokenPair{}, ErrCredentialMismatch
		}
		return domain.User{}, domain.TokenPair{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		return domain.User{}, domain.TokenPair{}, ErrCredentialMismatch
	}

	slogx.FromContext(ctx).Info("user logged in", "user_id", user.ID)

	pair, err := s.issueSession(ctx, user)
	if err != nil {
		return domain.User{}, domain.TokenPair{}, err
	}
	return user, pair, nil
}

// Refresh rotates a session. The presented refresh token is verified, its
// backing row looked up, a fresh access token signed, a new row persisted,
// the old row retired, and a new refresh token signed against the new row.
//
// Deleting the old row is best effort: if it fails, the new session still
// stands and housekeeping will sweep the stale row once it expires.
func (s *SessionService) Refresh(ctx context.Context, refreshToken string) (domain.User, domain.TokenPair, error) {
	log := slogx.FromContext(ctx)

	claims, err := s.RefreshCodec.Verify(refreshToken)
	if err != nil {
		return domain.User{}, domain.TokenPair{}, ErrInvalidRefresh
	}

	oldID, err := strconv.ParseInt(claims.RefreshTokenID, 10, 64)
	if err != nil {
		return domain.User{}, domain.TokenPair{}, ErrInvalidRefresh
	}

	record, err := s.Store.RefreshTokens().GetRefreshTokenByID(ctx, oldID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, domain.TokenPair{}, ErrUnknownRefreshRecord
		}
		return domain.User{}, domain.TokenPair{}, err
	}

	user, err := s.Store.Users().GetUserByID(ctx, record.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, domain.TokenPair{}, ErrUnknownRefreshRecord
		}
		return domain.User{}, domain.TokenPair{}, err
	}

	now := s.now()

	accessToken, err := s.signAccess(user, now)
	if err != nil {
		return domain.User{}, domain.TokenPair{}, err
	}

	newRecord, err := s.Store.RefreshTokens().CreateRefreshToken(ctx, domain.RefreshToken{
		UserID:    user.ID,
		ExpiresAt: now.Add(s.RefreshTTL),
	})
	if err != nil {
		return domain.User{}, domain.TokenPair{}, err
	}

	if err := s.Store.RefreshTokens().DeleteRefreshToken(ctx, oldID); err != nil {
		// The new session is already valid, don't fail the rotation.
		log.Warn("failed to delete rotated refresh token", "record_id", oldID, "err", err)
	}

	newRefreshToken, err := s.signRefresh(user, newRecord.ID, now)
	if err != nil {
		return domain.User{}, domain.TokenPair{}, err
	}

	log.Info("session refreshed", "user_id", user.ID, "record_id", newRecord.ID)

	return user, domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
	}, nil
}

// Logout retires the session's refresh record. It is idempotent: logging out
// a session whose record is already gone succeeds.
func (s *SessionService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.RefreshCodec.Verify(refreshToken)
	if err != nil {
		return ErrInvalidRefresh
	}

	id, err := strconv.ParseInt(claims.RefreshTokenID, 10, 64)
	if err != nil {
		return ErrInvalidRefresh
	}

	if err := s.Store.RefreshTokens().DeleteRefreshToken(ctx, id); err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("user logged out", "user_id", claims.Subject)
	return nil
}

// issueSession signs an access token and a refresh token backed by a new
// refresh record.
func (s *SessionService) issueSession(ctx context.Context, user domain.User) (domain.TokenPair, error) {
	now := s.now()

	accessToken, err := s.signAccess(user, now)
	if err != nil {
		return domain.TokenPair{}, err
	}

	record, err := s.Store.RefreshTokens().CreateRefreshToken(ctx, domain.RefreshToken{
		UserID:    user.ID,
		ExpiresAt: now.Add(s.RefreshTTL),
	})
	if err != nil {
		return domain.TokenPair{}, err
	}

	refreshToken, err := s.signRefresh(user, record.ID, now)
	if err != nil {
		return domain.TokenPair{}, err
	}

	return domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *SessionService) signAccess(user domain.User, now time.Time) (string, error) {
	claims := jwtx.NewAccessClaims(
		strconv.FormatInt(user.ID, 10),
		user.Role,
		tenantClaim(user.TenantID),
		s.Issuer,
		s.AccessTTL,
		now,
	)
	return s.Signer.Sign(claims)
}

func (s *SessionService) signRefresh(user domain.User, recordID int64, now time.Time) (string, error) {
	claims := jwtx.NewRefreshClaims(
		strconv.FormatInt(user.ID, 10),
		user.Role,
		tenantClaim(user.TenantID),
		strconv.FormatInt(recordID, 10),
		s.Issuer,
		s.RefreshTTL,
		now,
	)
	return s.RefreshCodec.Sign(claims)
}

func tenantClaim(tenantID *int64) string {
	if tenantID == nil {
		return ""
	}
	return strconv.FormatInt(*tenantID, 10)
}
