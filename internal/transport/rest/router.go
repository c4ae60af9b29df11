package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/ouroboros-foundation/portal/internal/auth"
	"github.com/ouroboros-foundation/portal/internal/clearance"
	"github.com/ouroboros-foundation/portal/internal/covenant"
	"github.com/ouroboros-foundation/portal/internal/department"
	"github.com/ouroboros-foundation/portal/internal/invitation"
	"github.com/ouroboros-foundation/portal/internal/letter"
	"github.com/ouroboros-foundation/portal/internal/logbook"
	"github.com/ouroboros-foundation/portal/internal/project"
	"github.com/ouroboros-foundation/portal/internal/proposal"
	"github.com/ouroboros-foundation/portal/internal/report"
	"github.com/ouroboros-foundation/portal/internal/transport/middleware"
	"github.com/ouroboros-foundation/portal/internal/transport/swagger"
	"github.com/ouroboros-foundation/portal/internal/user"
)

// Handlers bundles every feature handler the router mounts. Any nil
// handler simply leaves its routes unregistered, which keeps partial
// wiring (tests, tooling commands) possible.
type Handlers struct {
	Auth       *auth.Handler
	User       *user.Handler
	Department *department.Handler
	Project    *project.Handler
	Proposal   *proposal.Handler
	Report     *report.Handler
	Logbook    *logbook.Handler
	Letter     *letter.Handler
	Invitation *invitation.Handler
	Covenant   *covenant.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	clearanceAuth := auth.NewClearanceAuthorization(logger)

	// Apply global middleware; request ids must land before the logger
	// reads them.
	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	// Mount API under /api/v1 to match OpenAPI basePath
	router.Route("/api/v1", func(r chi.Router) {
		// Health check route
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Auth routes
		if h.Auth != nil {
			r.Route("/auth", func(sr chi.Router) {
				sr.Post("/login", h.Auth.Login)
				sr.Post("/refresh", h.Auth.RefreshToken)
				sr.Post("/logout", h.Auth.Logout)
			})
		}

		// Invitation-backed registration; the token is the credential.
		if h.User != nil {
			r.Post("/register", h.User.Register)
		}
		if h.Invitation != nil {
			r.Get("/invitations/{token}", h.Invitation.InspectInvitation)
		}

		// Public directory routes (no auth required)
		if h.Department != nil {
			r.Get("/departments", h.Department.GetDepartments)
			r.Get("/ranks", h.Department.GetRanks)
		}

		if h.Auth != nil {
			// Protected routes that require authentication
			r.Group(func(pr chi.Router) {
				pr.Use(h.Auth.AuthMiddleware)

				// Personnel routes
				if h.User != nil {
					pr.Get("/users/me", h.User.GetMe)
					pr.Get("/users/{id}", h.User.GetProfile)

					pr.Group(func(ar chi.Router) {
						ar.Use(clearanceAuth.RequireAdministrator())
						ar.Get("/users", h.User.ListUsers)
						ar.Get("/users/pending", h.User.ListPendingApproval)
						ar.Patch("/users/{id}/approve", h.User.ApproveUser)
						ar.Patch("/users/{id}/deactivate", h.User.DeactivateUser)
						ar.Patch("/users/{id}/clearance", h.User.SetClearance)
						ar.Patch("/users/{id}/departments", h.User.SetDepartments)
						ar.Patch("/users/{id}/rank", h.User.SetRank)
					})
				}

				// Project routes
				if h.Project != nil {
					pr.Route("/projects", func(pjr chi.Router) {
						pjr.Get("/", h.Project.ListProjects)
						pjr.Get("/{id}", h.Project.GetProject)
						pjr.Get("/{id}/members", h.Project.GetMembers)

						pjr.Group(func(mr chi.Router) {
							mr.Use(clearanceAuth.RequireCapability(clearance.CapabilityManageRules))
							mr.Post("/", h.Project.CreateProject)
							mr.Post("/{id}/rules", h.Project.AddAccessRule)
							mr.Delete("/{id}/rules/{ruleID}", h.Project.RemoveAccessRule)
							mr.Put("/{id}/members", h.Project.AssignMember)
						})

						pjr.Group(func(ar chi.Router) {
							ar.Use(clearanceAuth.RequireAdministrator())
							ar.Patch("/{id}/status", h.Project.UpdateStatus)
						})

						// Reports and logbook entries hang off their project.
						if h.Report != nil {
							pjr.Post("/{id}/reports", h.Report.CreateReport)
							pjr.Get("/{id}/reports", h.Report.ListProjectReports)
						}
						if h.Logbook != nil {
							pjr.Get("/{id}/logbook", h.Logbook.ListProjectEntries)
						}
					})
				}

				if h.Report != nil {
					pr.Get("/reports/{reportID}", h.Report.GetReport)
				}

				// Proposal routes
				if h.Proposal != nil {
					pr.Route("/proposals", func(ppr chi.Router) {
						ppr.Post("/", h.Proposal.SubmitProposal)
						ppr.Get("/", h.Proposal.ListMyProposals)
						ppr.Get("/{id}", h.Proposal.GetProposal)

						ppr.Group(func(apr chi.Router) {
							apr.Use(clearanceAuth.RequireCapability(clearance.CapabilityApproveProposal))
							apr.Get("/pending", h.Proposal.ListPending)
							apr.Patch("/{id}/approve", h.Proposal.ApproveProposal)
							apr.Patch("/{id}/reject", h.Proposal.RejectProposal)
						})
					})
				}

				// Logbook routes
				if h.Logbook != nil {
					pr.Route("/logbook", func(lbr chi.Router) {
						lbr.Post("/", h.Logbook.CreateEntry)
						lbr.Get("/", h.Logbook.ListMyEntries)
						lbr.Get("/{id}", h.Logbook.GetEntry)
					})
				}

				// Letter routes
				if h.Letter != nil {
					pr.Route("/letters", func(ltr chi.Router) {
						ltr.Post("/", h.Letter.SendLetter)
						ltr.Get("/inbox", h.Letter.GetInbox)
						ltr.Get("/sent", h.Letter.GetSent)
						ltr.Get("/{id}", h.Letter.GetLetter)

						ltr.Group(func(ar chi.Router) {
							ar.Use(clearanceAuth.RequireAdministrator())
							ar.Get("/audit", h.Letter.AuditAll)
						})
					})
				}

				// Invitation issuance (level 3+)
				if h.Invitation != nil {
					pr.Group(func(ir chi.Router) {
						ir.Use(clearanceAuth.RequireClearance(clearance.LevelSenior))
						ir.Post("/invitations", h.Invitation.IssueInvitation)
						ir.Get("/invitations", h.Invitation.ListIssued)
					})
				}

				// Covenant routes
				if h.Covenant != nil {
					pr.Route("/covenant", func(cvr chi.Router) {
						cvr.Get("/seats", h.Covenant.ListSeats)
						cvr.Get("/members", h.Covenant.ListMembers)
						cvr.Post("/invitations", h.Covenant.InviteToSeat)
						cvr.Post("/invitations/accept", h.Covenant.AcceptInvitation)
						cvr.Post("/invitations/decline", h.Covenant.DeclineInvitation)
						cvr.Delete("/membership", h.Covenant.LeaveSeat)
					})
				}
			})
		}
	})
}
