package report_test

import (
	"errors"
	"log/slog"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ouroboros-foundation/portal/internal"
	"github.com/ouroboros-foundation/portal/internal/access"
	"github.com/ouroboros-foundation/portal/internal/clearance"
	"github.com/ouroboros-foundation/portal/internal/project"
	"github.com/ouroboros-foundation/portal/internal/redaction"
	"github.com/ouroboros-foundation/portal/internal/report"
)

func TestReport(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Report Suite")
}

type mockRepository struct {
	reports map[int64]*report.Report
	nextID  int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{reports: make(map[int64]*report.Report), nextID: 1}
}

func (m *mockRepository) Create(r *report.Report) error {
	r.ID = m.nextID
	m.nextID++
	m.reports[r.ID] = r
	return nil
}

func (m *mockRepository) GetByID(id int64) (*report.Report, error) {
	r, ok := m.reports[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return r, nil
}

func (m *mockRepository) GetByProject(projectID int64, limit, offset int) ([]*report.Report, error) {
	var out []*report.Report
	for id := int64(1); id < m.nextID; id++ {
		if r, ok := m.reports[id]; ok && r.ProjectID == projectID {
			out = append(out, r)
		}
	}
	return out, nil
}

type mockProjectStore struct {
	projects map[int64]*project.Project
}

func (m *mockProjectStore) GetByID(id int64) (*project.Project, error) {
	p, ok := m.projects[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return p, nil
}

var _ = Describe("Report Service", func() {
	var (
		repo     *mockRepository
		projects *mockProjectStore
		service  *report.Service

		author   access.Identity
		overseer access.Identity
	)

	BeforeEach(func() {
		repo = newMockRepository()
		projects = &mockProjectStore{projects: map[int64]*project.Project{
			1: {ID: 1, Title: "Open Garden", SecurityClass: clearance.ClassGreen, Status: project.StatusActive},
			2: {ID: 2, Title: "Sealed Vault", SecurityClass: clearance.ClassBlack, Status: project.StatusActive},
		}}
		service = report.NewService(repo, projects, slog.Default())

		author = access.Identity{UserID: 10, Clearance: clearance.LevelStandard}
		overseer = access.Identity{UserID: 1, Clearance: clearance.LevelOverseer}
	})

	Describe("CreateReport", func() {
		It("should clamp the view threshold to the author's clearance", func() {
			r, err := service.CreateReport(1, author, report.CreateReportDTO{
				Title:              "Weekly Observations",
				Body:               "nothing anomalous",
				MinClearanceToView: 5,
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(r.MinClearanceToView).To(Equal(clearance.LevelStandard))
		})

		It("should default the threshold to level 1", func() {
			r, err := service.CreateReport(1, author, report.CreateReportDTO{
				Title: "Routine Check",
				Body:  "all quiet",
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(r.MinClearanceToView).To(Equal(clearance.LevelProvisional))
		})

		It("should deny authors without project access", func() {
			_, err := service.CreateReport(2, author, report.CreateReportDTO{
				Title: "Sneaky Report",
				Body:  "should not land",
			})

			Expect(errors.Is(err, internal.ErrInsufficientClearance)).To(BeTrue())
		})

		It("should deny authors below the submit_reports capability", func() {
			visitor := access.Identity{UserID: 11, Clearance: clearance.LevelProvisional}

			_, err := service.CreateReport(1, visitor, report.CreateReportDTO{
				Title: "Visitor Notes",
				Body:  "saw a duck",
			})

			Expect(errors.Is(err, internal.ErrInsufficientClearance)).To(BeTrue())
		})
	})

	Describe("GetReport", func() {
		var reportID int64

		BeforeEach(func() {
			r, err := service.CreateReport(1, author, report.CreateReportDTO{
				Title:              "Threshold Two",
				Body:               "the real contents",
				MinClearanceToView: 2,
			})
			Expect(err).NotTo(HaveOccurred())
			reportID = r.ID
		})

		It("should render the full body at or above the threshold", func() {
			rendered, err := service.GetReport(reportID, author)

			Expect(err).NotTo(HaveOccurred())
			Expect(rendered.Status).To(Equal(string(redaction.StatusFull)))
			Expect(rendered.Body).To(Equal("the real contents"))
		})

		It("should deny below the threshold with the sentinel body", func() {
			low := access.Identity{UserID: 12, Clearance: clearance.LevelProvisional}

			rendered, err := service.GetReport(reportID, low)

			Expect(err).NotTo(HaveOccurred())
			Expect(rendered.Status).To(Equal(string(redaction.StatusDenied)))
			Expect(rendered.Body).To(Equal(redaction.DeniedNotice))
		})

		It("should refuse requesters without project access entirely", func() {
			vaultReport, err := service.CreateReport(2, overseer, report.CreateReportDTO{
				Title: "Vault Inventory",
				Body:  "classified",
			})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.GetReport(vaultReport.ID, author)

			Expect(errors.Is(err, internal.ErrInsufficientClearance)).To(BeTrue())
		})
	})

	Describe("ListProjectReports", func() {
		It("should render below-threshold reports in denied form instead of dropping them", func() {
			_, err := service.CreateReport(1, overseer, report.CreateReportDTO{
				Title:              "Overseer Eyes Only",
				Body:               "sealed",
				MinClearanceToView: 5,
			})
			Expect(err).NotTo(HaveOccurred())
			_, err = service.CreateReport(1, author, report.CreateReportDTO{
				Title: "Public Summary",
				Body:  "visible",
			})
			Expect(err).NotTo(HaveOccurred())

			rendered, err := service.ListProjectReports(1, author, 20, 0)

			Expect(err).NotTo(HaveOccurred())
			Expect(rendered).To(HaveLen(2))

			statuses := map[string]string{}
			for _, r := range rendered {
				statuses[r.Title] = r.Status
			}
			Expect(statuses["Overseer Eyes Only"]).To(Equal(string(redaction.StatusDenied)))
			Expect(statuses["Public Summary"]).To(Equal(string(redaction.StatusFull)))
		})
	})
})
