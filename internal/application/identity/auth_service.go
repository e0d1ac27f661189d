package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/application/txn"
	"github.com/vendorhub/backend/internal/domain/identity"
	"github.com/vendorhub/backend/internal/domain/profile"
	"github.com/vendorhub/backend/internal/domain/shared"
	"github.com/vendorhub/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

var errInvalidCredentials = shared.NewDomainError(shared.CodeUnauthorized, "Invalid username or password")

// AuthService handles registration and token lifecycle
type AuthService struct {
	scope      txn.TransactionScope
	accounts   identity.AccountRepository
	vendors    profile.VendorRepository
	suppliers  profile.SupplierRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	scope txn.TransactionScope,
	accounts identity.AccountRepository,
	vendors profile.VendorRepository,
	suppliers profile.SupplierRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	if blacklist == nil {
		blacklist = auth.NoopTokenBlacklist{}
	}
	return &AuthService{
		scope:      scope,
		accounts:   accounts,
		vendors:    vendors,
		suppliers:  suppliers,
		jwtService: jwtService,
		blacklist:  blacklist,
		logger:     logger,
	}
}

// Signup creates an account and its vendor or supplier profile in one
// transaction, then logs the account in.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*AuthResult, error) {
	kind, err := identity.ParseRoleKind(input.Role)
	if err != nil {
		return nil, err
	}

	exists, err := s.accounts.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError(shared.CodeAlreadyExists, "Username already exists")
	}

	account, err := identity.NewAccount(input.Username, input.Email, input.Password, kind)
	if err != nil {
		return nil, err
	}
	account.FirstName = input.FirstName
	account.LastName = input.LastName

	var role identity.AccountRole
	err = s.scope.Execute(ctx, func(repos txn.TransactionalRepositories) error {
		if err := repos.AccountRepo().Create(ctx, account); err != nil {
			return err
		}
		switch kind {
		case identity.RoleVendor:
			v, err := profile.NewVendorProfile(account.ID, profile.VendorDetails{
				CompanyName:  input.CompanyName,
				BusinessType: input.BusinessType,
				Phone:        input.Phone,
				Address:      input.Address,
				GSTNumber:    input.GSTNumber,
				Website:      input.Website,
			})
			if err != nil {
				return err
			}
			if err := repos.VendorRepo().Create(ctx, v); err != nil {
				return err
			}
			role = identity.VendorRole(v.ID)
		case identity.RoleSupplier:
			sp, err := profile.NewSupplierProfile(account.ID, profile.SupplierDetails{
				OrganizationName: input.OrganizationName,
				ContactPerson:    input.ContactPerson,
				Phone:            input.Phone,
				Address:          input.Address,
				GST:              input.GSTNumber,
				PAN:              input.PAN,
				BusinessCategory: input.BusinessCategory,
				SupplyCapacity:   input.SupplyCapacity,
				Certifications:   input.Certifications,
				Website:          input.Website,
			})
			if err != nil {
				return err
			}
			if err := repos.SupplierRepo().Create(ctx, sp); err != nil {
				return err
			}
			role = identity.SupplierRole(sp.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Account registered",
		zap.String("account_id", account.ID.String()),
		zap.String("role", string(kind)))

	return s.issue(account, role)
}

// Login verifies credentials and returns a token pair
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	account, err := s.accounts.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Login for unknown username", zap.String("username", input.Username))
			return nil, errInvalidCredentials
		}
		return nil, err
	}

	if !account.VerifyPassword(input.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("username", input.Username))
		return nil, errInvalidCredentials
	}

	role, err := s.ResolveRole(ctx, account)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Account logged in", zap.String("account_id", account.ID.String()))
	return s.issue(account, role)
}

// Refresh rotates a refresh token. The presented token is revoked so that it
// cannot be replayed.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		s.logger.Warn("Refresh token rejected", zap.Error(err))
		return nil, mapTokenError(err)
	}

	revoked, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, mapTokenError(auth.ErrTokenBlacklisted)
	}

	accountID, err := claims.GetAccountUUID()
	if err != nil {
		return nil, mapTokenError(auth.ErrInvalidClaims)
	}
	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError(shared.CodeUnauthorized, "Account no longer exists")
		}
		return nil, err
	}

	pair, _, err := s.jwtService.RefreshTokenPair(refreshToken)
	if err != nil {
		return nil, mapTokenError(err)
	}
	role, err := claims.AccountRole()
	if err != nil {
		return nil, mapTokenError(auth.ErrInvalidClaims)
	}

	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
		s.logger.Error("Failed to revoke rotated refresh token", zap.Error(err))
	}

	return newAuthResult(pair, account, role), nil
}

// Logout revokes the presented access token until it expires
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	if input.TokenJTI != "" {
		if err := s.blacklist.AddToBlacklist(ctx, input.TokenJTI, input.TokenTTL); err != nil {
			return err
		}
	}
	s.logger.Info("Account logged out", zap.String("account_id", input.AccountID.String()))
	return nil
}

// ResolveRole finds the profile that makes up the account's role
func (s *AuthService) ResolveRole(ctx context.Context, account *identity.Account) (identity.AccountRole, error) {
	var profileID uuid.UUID
	switch account.Role {
	case identity.RoleVendor:
		v, err := s.vendors.FindByAccountID(ctx, account.ID)
		if err != nil {
			return identity.AccountRole{}, err
		}
		profileID = v.ID
	case identity.RoleSupplier:
		sp, err := s.suppliers.FindByAccountID(ctx, account.ID)
		if err != nil {
			return identity.AccountRole{}, err
		}
		profileID = sp.ID
	}
	return identity.NewAccountRole(account.Role, profileID)
}

func (s *AuthService) issue(account *identity.Account, role identity.AccountRole) (*AuthResult, error) {
	pair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		AccountID: account.ID,
		Username:  account.Username,
		Role:      role,
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, err
	}
	return newAuthResult(pair, account, role), nil
}

func newAuthResult(pair *auth.TokenPair, account *identity.Account, role identity.AccountRole) *AuthResult {
	return &AuthResult{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
		Account: AccountInfo{
			ID:        account.ID,
			Username:  account.Username,
			Email:     account.Email,
			FullName:  account.FullName(),
			Role:      string(role.Kind()),
			ProfileID: role.ProfileID(),
		},
	}
}

func mapTokenError(err error) error {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return shared.NewDomainError(shared.CodeUnauthorized, "Refresh token has expired")
	case errors.Is(err, auth.ErrMaxRefreshExceeded):
		return shared.NewDomainError(shared.CodeUnauthorized, "Maximum token refresh count exceeded. Please log in again")
	case errors.Is(err, auth.ErrTokenBlacklisted):
		return shared.NewDomainError(shared.CodeUnauthorized, "Refresh token has been revoked")
	default:
		return shared.NewDomainError(shared.CodeUnauthorized, "Invalid refresh token")
	}
}
