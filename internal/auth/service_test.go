package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/ouroboros-foundation/portal/internal/clearance"
)

func TestAuth(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Auth Module Suite")
}

// Mock UserRepository for testing
type mockUserRepository struct {
	passwords     map[string]string // email -> password hash
	userIDs       map[string]string // email -> userID
	usersByID     map[int64]*User   // userID -> User with clearance attributes
	returnError   bool
	errorToReturn error
}

func newMockUserRepository() *mockUserRepository {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("correct_password"), bcrypt.DefaultCost)

	return &mockUserRepository{
		passwords: map[string]string{
			"researcher@ouroboros.example": string(hashedPassword),
			"overseer@ouroboros.example":   string(hashedPassword),
		},
		userIDs: map[string]string{
			"researcher@ouroboros.example": "1",
			"overseer@ouroboros.example":   "2",
		},
		usersByID: map[int64]*User{
			1: {ID: 1, Email: "researcher@ouroboros.example", Name: "Researcher", Clearance: clearance.LevelStandard, DepartmentIDs: []int64{10}, RankID: 2},
			2: {ID: 2, Email: "overseer@ouroboros.example", Name: "Overseer", Clearance: clearance.LevelOverseer},
		},
	}
}

func (m *mockUserRepository) GetPasswordForEmail(email string) (string, string, error) {
	if m.returnError {
		return "", "", m.errorToReturn
	}

	if hash, exists := m.passwords[email]; exists {
		if userID, userExists := m.userIDs[email]; userExists {
			return hash, userID, nil
		}
	}
	return "", "", errors.New("user not found")
}

func (m *mockUserRepository) GetUserWithClearance(userID int64) (*User, error) {
	if m.returnError {
		return nil, m.errorToReturn
	}

	if user, exists := m.usersByID[userID]; exists {
		return user, nil
	}
	return nil, errors.New("user not found")
}

func (m *mockUserRepository) setError(err error) {
	m.returnError = true
	m.errorToReturn = err
}

func (m *mockUserRepository) clearError() {
	m.returnError = false
	m.errorToReturn = nil
}

var _ = ginkgo.Describe("AuthService", func() {
	var (
		service       *Service
		mockRepo      *mockUserRepository
		tokenGen      *JWTTokenGenerator
		accessSecret  string        = "test-access-secret"
		refreshSecret string        = "test-refresh-secret"
		accessTTL     time.Duration = 15 * time.Minute
		refreshTTL    time.Duration = 24 * 7 * time.Hour
	)

	ginkgo.BeforeEach(func() {
		mockRepo = newMockUserRepository()
		tokenGen = NewJWTTokenGenerator(accessSecret, refreshSecret, accessTTL, refreshTTL)
		service = NewService(mockRepo, tokenGen, bcrypt.DefaultCost)
	})

	ginkgo.Describe("Authenticate", func() {
		ginkgo.Context("when credentials are valid", func() {
			ginkgo.It("should return access and refresh tokens", func() {
				// Given
				dto := LoginDTO{
					Email:    "researcher@ouroboros.example",
					Password: "correct_password",
				}

				// When
				tokens, err := service.Authenticate(dto)

				// Then
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(tokens.AccessToken).ToNot(gomega.BeEmpty())
				gomega.Expect(tokens.RefreshToken).ToNot(gomega.BeEmpty())
				gomega.Expect(tokens.AccessToken).ToNot(gomega.Equal(tokens.RefreshToken))
			})

			ginkgo.It("should embed the user id and email in the access token", func() {
				// Given
				dto := LoginDTO{
					Email:    "overseer@ouroboros.example",
					Password: "correct_password",
				}

				// When
				tokens, err := service.Authenticate(dto)

				// Then
				gomega.Expect(err).ToNot(gomega.HaveOccurred())

				claims, err := service.ValidateAccessToken(tokens.AccessToken)
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(claims.UserID).To(gomega.Equal("2"))
				gomega.Expect(claims.Email).To(gomega.Equal("overseer@ouroboros.example"))
			})
		})

		ginkgo.Context("when credentials are invalid", func() {
			ginkgo.It("should return error for unknown email", func() {
				// Given
				dto := LoginDTO{
					Email:    "nobody@ouroboros.example",
					Password: "any_password",
				}

				// When
				tokens, err := service.Authenticate(dto)

				// Then
				gomega.Expect(err).To(gomega.Equal(ErrInvalidCredentials))
				gomega.Expect(tokens.AccessToken).To(gomega.BeEmpty())
			})

			ginkgo.It("should return error for wrong password", func() {
				// Given
				dto := LoginDTO{
					Email:    "researcher@ouroboros.example",
					Password: "wrong_password",
				}

				// When
				tokens, err := service.Authenticate(dto)

				// Then
				gomega.Expect(err).To(gomega.Equal(ErrInvalidCredentials))
				gomega.Expect(tokens.RefreshToken).To(gomega.BeEmpty())
			})
		})

		ginkgo.Context("when the DTO is incomplete", func() {
			ginkgo.It("should reject a missing email", func() {
				_, err := service.Authenticate(LoginDTO{Password: "something"})

				gomega.Expect(err).To(gomega.HaveOccurred())
				var vErr ValidationError
				gomega.Expect(errors.As(err, &vErr)).To(gomega.BeTrue())
			})

			ginkgo.It("should reject a missing password", func() {
				_, err := service.Authenticate(LoginDTO{Email: "researcher@ouroboros.example"})

				gomega.Expect(err).To(gomega.HaveOccurred())
				var vErr ValidationError
				gomega.Expect(errors.As(err, &vErr)).To(gomega.BeTrue())
			})
		})

		ginkgo.Context("when the repository fails", func() {
			ginkgo.It("should not reveal the failure cause", func() {
				// Given
				mockRepo.setError(errors.New("connection refused"))

				// When
				_, err := service.Authenticate(LoginDTO{
					Email:    "researcher@ouroboros.example",
					Password: "correct_password",
				})

				// Then
				gomega.Expect(err).To(gomega.Equal(ErrInvalidCredentials))

				mockRepo.clearError()
			})
		})
	})

	ginkgo.Describe("RefreshTokens", func() {
		ginkgo.It("should issue a fresh token pair for a valid refresh token", func() {
			// Given
			tokens, err := service.Authenticate(LoginDTO{
				Email:    "researcher@ouroboros.example",
				Password: "correct_password",
			})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			// When
			refreshed, err := service.RefreshTokens(tokens.RefreshToken)

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(refreshed.AccessToken).ToNot(gomega.BeEmpty())
			gomega.Expect(refreshed.RefreshToken).ToNot(gomega.BeEmpty())

			claims, err := service.ValidateAccessToken(refreshed.AccessToken)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(claims.UserID).To(gomega.Equal("1"))
		})

		ginkgo.It("should reject a malformed refresh token", func() {
			_, err := service.RefreshTokens("not.a.token")

			gomega.Expect(err).To(gomega.Equal(ErrInvalidToken))
		})

		ginkgo.It("should reject an expired refresh token", func() {
			// Given a generator whose refresh tokens are already expired
			expiredGen := NewJWTTokenGenerator(accessSecret, refreshSecret, accessTTL, -time.Minute)
			expired, err := expiredGen.GenerateRefreshToken("1", "researcher@ouroboros.example")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			// When
			_, err = service.RefreshTokens(expired)

			// Then
			gomega.Expect(err).To(gomega.HaveOccurred())
		})
	})

	ginkgo.Describe("ValidateAccessToken", func() {
		ginkgo.It("should validate a freshly issued access token", func() {
			token, err := tokenGen.GenerateAccessToken("1", "researcher@ouroboros.example")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			claims, err := service.ValidateAccessToken(token)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(claims.UserID).To(gomega.Equal("1"))
			gomega.Expect(claims.ExpiresAt.Time).To(gomega.BeTemporally("~", time.Now().Add(accessTTL), time.Minute))
		})

		ginkgo.It("should reject a malformed token", func() {
			_, err := service.ValidateAccessToken("garbage")

			gomega.Expect(err).To(gomega.Equal(ErrInvalidToken))
		})

		ginkgo.It("should reject an empty token", func() {
			_, err := service.ValidateAccessToken("")

			gomega.Expect(err).To(gomega.Equal(ErrInvalidToken))
		})

		ginkgo.It("should report an expired access token as expired", func() {
			// Given a generator whose access tokens are already expired
			expiredGen := NewJWTTokenGenerator(accessSecret, refreshSecret, -time.Minute, refreshTTL)
			expired, err := expiredGen.GenerateAccessToken("1", "researcher@ouroboros.example")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			// When
			_, err = service.ValidateAccessToken(expired)

			// Then
			gomega.Expect(err).To(gomega.Equal(ErrTokenExpired))
		})
	})

	ginkgo.Describe("JWTTokenGenerator secret selection", func() {
		ginkgo.It("should validate refresh tokens with the refresh secret", func() {
			// A refresh token outlives the access TTL, so validation must
			// switch to the refresh secret to verify its signature.
			token, err := tokenGen.GenerateRefreshToken("2", "overseer@ouroboros.example")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			claims, err := tokenGen.ValidateToken(token)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(claims.UserID).To(gomega.Equal("2"))
			gomega.Expect(claims.ExpiresAt.Time).To(gomega.BeTemporally("~", time.Now().Add(refreshTTL), time.Minute))
		})

		ginkgo.It("should reject a long-lived token signed with the access secret", func() {
			// Given an access-secret signature on a refresh-length expiry
			token, err := tokenGen.signedToken("2", "overseer@ouroboros.example", tokenGen.RefreshTokenTTL, tokenGen.AccessTokenSecret)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			// When
			_, err = tokenGen.ValidateToken(token)

			// Then
			gomega.Expect(err).To(gomega.Equal(ErrInvalidToken))
		})

		ginkgo.It("should reject a token signed with a different secret", func() {
			otherGen := NewJWTTokenGenerator("other-access-secret", "other-refresh-secret", accessTTL, refreshTTL)
			token, err := otherGen.GenerateAccessToken("1", "researcher@ouroboros.example")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = tokenGen.ValidateToken(token)
			gomega.Expect(err).To(gomega.Equal(ErrInvalidToken))
		})
	})

	ginkgo.Describe("GetUserWithClearance", func() {
		ginkgo.It("should return the user with clearance attributes", func() {
			user, err := service.GetUserWithClearance(1)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(user.Email).To(gomega.Equal("researcher@ouroboros.example"))
			gomega.Expect(user.Clearance).To(gomega.Equal(clearance.LevelStandard))
			gomega.Expect(user.DepartmentIDs).To(gomega.ConsistOf(int64(10)))
		})

		ginkgo.It("should propagate repository errors", func() {
			mockRepo.setError(errors.New("connection refused"))

			_, err := service.GetUserWithClearance(1)

			gomega.Expect(err).To(gomega.HaveOccurred())
			mockRepo.clearError()
		})
	})

	ginkgo.Describe("HashPassword", func() {
		ginkgo.It("should produce a hash that verifies against the password", func() {
			hash, err := service.HashPassword("containment-breach-drill")

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(hash).ToNot(gomega.Equal("containment-breach-drill"))
			gomega.Expect(VerifyPassword(hash, "containment-breach-drill")).To(gomega.Succeed())
			gomega.Expect(VerifyPassword(hash, "wrong")).ToNot(gomega.Succeed())
		})

		ginkgo.It("should fall back to the default cost when configured out of range", func() {
			cheap := NewService(mockRepo, tokenGen, 99)

			hash, err := cheap.HashPassword("containment-breach-drill")

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			cost, err := bcrypt.Cost([]byte(hash))
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(cost).To(gomega.Equal(bcrypt.DefaultCost))
		})
	})

	ginkgo.Describe("GenerateRandomToken", func() {
		ginkgo.It("should generate a 64 character hex token", func() {
			token, err := GenerateRandomToken()

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(token).To(gomega.HaveLen(64))
			gomega.Expect(token).To(gomega.MatchRegexp("^[0-9a-f]+$"))
		})

		ginkgo.It("should generate unique tokens", func() {
			first, err := GenerateRandomToken()
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			second, err := GenerateRandomToken()
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			gomega.Expect(first).ToNot(gomega.Equal(second))
		})
	})
})
