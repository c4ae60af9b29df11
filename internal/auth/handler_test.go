package auth

import (
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/ouroboros-foundation/portal/internal"
)

var _ = ginkgo.Describe("AuthMiddleware", func() {
	var (
		handler  *Handler
		mockRepo *mockUserRepository
		tokenGen *JWTTokenGenerator
	)

	ginkgo.BeforeEach(func() {
		mockRepo = newMockUserRepository()
		tokenGen = NewJWTTokenGenerator("test-access-secret", "test-refresh-secret", 15*time.Minute, 24*7*time.Hour)
		handler = NewHandler(NewService(mockRepo, tokenGen, bcrypt.DefaultCost))
	})

	ginkgo.Context("with a valid bearer token", func() {
		ginkgo.It("should thread the identity and the raw user id through the context", func() {
			// Given
			token, err := tokenGen.GenerateAccessToken("1", "researcher@ouroboros.example")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			var seenUser *User
			var seenUserID string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				u, ok := UserFromContext(r.Context())
				gomega.Expect(ok).To(gomega.BeTrue())
				seenUser = u
				seenUserID = internal.UserIDFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/portal/projects", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()

			// When
			handler.AuthMiddleware(next).ServeHTTP(rec, req)

			// Then
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
			gomega.Expect(seenUser).ToNot(gomega.BeNil())
			gomega.Expect(seenUser.ID).To(gomega.Equal(int64(1)))
			gomega.Expect(seenUser.Email).To(gomega.Equal("researcher@ouroboros.example"))
			gomega.Expect(seenUserID).To(gomega.Equal("1"))
		})
	})

	ginkgo.Context("with a missing or invalid token", func() {
		ginkgo.It("should reject a request without an authorization header", func() {
			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			})

			req := httptest.NewRequest(http.MethodGet, "/portal/projects", nil)
			rec := httptest.NewRecorder()

			handler.AuthMiddleware(next).ServeHTTP(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(called).To(gomega.BeFalse())
		})

		ginkgo.It("should reject a garbage token", func() {
			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			})

			req := httptest.NewRequest(http.MethodGet, "/portal/projects", nil)
			req.Header.Set("Authorization", "Bearer garbage")
			rec := httptest.NewRecorder()

			handler.AuthMiddleware(next).ServeHTTP(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(called).To(gomega.BeFalse())
		})

		ginkgo.It("should reject a token for a user the repository cannot load", func() {
			token, err := tokenGen.GenerateAccessToken("999", "ghost@ouroboros.example")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			req := httptest.NewRequest(http.MethodGet, "/portal/projects", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()

			handler.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})).ServeHTTP(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
		})
	})
})
