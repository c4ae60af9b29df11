package logbook_test

import (
	"errors"
	"log/slog"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ouroboros-foundation/portal/internal"
	"github.com/ouroboros-foundation/portal/internal/access"
	"github.com/ouroboros-foundation/portal/internal/clearance"
	"github.com/ouroboros-foundation/portal/internal/logbook"
	"github.com/ouroboros-foundation/portal/internal/project"
	"github.com/ouroboros-foundation/portal/internal/redaction"
)

func TestLogbook(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Logbook Suite")
}

type mockRepository struct {
	entries map[int64]*logbook.Entry
	views   map[int64]int
	nextID  int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		entries: make(map[int64]*logbook.Entry),
		views:   make(map[int64]int),
		nextID:  1,
	}
}

func (m *mockRepository) Create(e *logbook.Entry) error {
	e.ID = m.nextID
	m.nextID++
	m.entries[e.ID] = e
	return nil
}

func (m *mockRepository) GetByID(id int64) (*logbook.Entry, error) {
	e, ok := m.entries[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return e, nil
}

func (m *mockRepository) GetByAuthor(authorID int64, limit, offset int) ([]*logbook.Entry, error) {
	var out []*logbook.Entry
	for id := int64(1); id < m.nextID; id++ {
		if e, ok := m.entries[id]; ok && e.AuthorID == authorID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockRepository) GetByProject(projectID int64, limit, offset int) ([]*logbook.Entry, error) {
	var out []*logbook.Entry
	for id := int64(1); id < m.nextID; id++ {
		if e, ok := m.entries[id]; ok && e.ProjectID != nil && *e.ProjectID == projectID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockRepository) IncrementViewCount(id int64) error {
	m.views[id]++
	return nil
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

var _ = Describe("Logbook Service", func() {
	var (
		repo     *mockRepository
		projects *mockProjectStore
		service  *logbook.Service

		author access.Identity
		low    access.Identity
	)

	BeforeEach(func() {
		repo = newMockRepository()
		projects = &mockProjectStore{projects: map[int64]*project.Project{
			1: {ID: 1, SecurityClass: clearance.ClassGreen, Status: project.StatusActive},
		}}
		service = logbook.NewService(repo, projects, slog.Default())

		author = access.Identity{UserID: 10, Clearance: clearance.LevelSenior}
		low = access.Identity{UserID: 20, Clearance: clearance.LevelProvisional}
	})

	Describe("CreateEntry", func() {
		It("should mark entries with a redacted version as redacted", func() {
			e, err := service.CreateEntry(author, logbook.CreateEntryDTO{
				EntryText:          "the specimen spoke today",
				RedactedVersion:    "routine observation, nothing to note",
				MinClearanceToView: 3,
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(e.IsRedacted).To(BeTrue())
			Expect(e.MinClearanceToView).To(Equal(clearance.LevelSenior))
		})

		It("should reject an empty body", func() {
			_, err := service.CreateEntry(author, logbook.CreateEntryDTO{})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("GetEntry", func() {
		var entryID int64

		BeforeEach(func() {
			e, err := service.CreateEntry(author, logbook.CreateEntryDTO{
				EntryText:          "full text with secrets",
				Attachments:        []string{"photo-001.jpg", "audio-002.ogg"},
				RedactedVersion:    "[REDACTED BY ORDER OF THE OVERSEER COUNCIL]",
				MinClearanceToView: 3,
			})
			Expect(err).NotTo(HaveOccurred())
			entryID = e.ID
		})

		It("should render the full entry with attachments at the threshold", func() {
			rendered, err := service.GetEntry(entryID, author)

			Expect(err).NotTo(HaveOccurred())
			Expect(rendered.Status).To(Equal(string(redaction.StatusFull)))
			Expect(rendered.Body).To(Equal("full text with secrets"))
			Expect(rendered.Attachments).To(HaveLen(2))
		})

		It("should serve the redacted substitute without attachments below the threshold", func() {
			rendered, err := service.GetEntry(entryID, low)

			Expect(err).NotTo(HaveOccurred())
			Expect(rendered.Status).To(Equal(string(redaction.StatusRedacted)))
			Expect(rendered.Body).To(Equal("[REDACTED BY ORDER OF THE OVERSEER COUNCIL]"))
			Expect(rendered.Attachments).To(BeEmpty())
		})

		It("should count every view, including redacted ones", func() {
			_, err := service.GetEntry(entryID, author)
			Expect(err).NotTo(HaveOccurred())
			_, err = service.GetEntry(entryID, low)
			Expect(err).NotTo(HaveOccurred())

			Expect(repo.views[entryID]).To(Equal(2))
		})

		It("should deny entries without a redacted substitute using the sentinel", func() {
			e, err := service.CreateEntry(author, logbook.CreateEntryDTO{
				EntryText:          "plain secret",
				MinClearanceToView: 3,
			})
			Expect(err).NotTo(HaveOccurred())

			rendered, err := service.GetEntry(e.ID, low)

			Expect(err).NotTo(HaveOccurred())
			Expect(rendered.Status).To(Equal(string(redaction.StatusDenied)))
			Expect(rendered.Body).To(Equal(redaction.DeniedNotice))
		})
	})

	Describe("project-bound entries", func() {
		It("should gate creation on project access", func() {
			projects.projects[2] = &project.Project{ID: 2, SecurityClass: clearance.ClassBlack, Status: project.StatusActive}
			projectID := int64(2)

			_, err := service.CreateEntry(author, logbook.CreateEntryDTO{
				ProjectID: &projectID,
				EntryText: "should not land",
			})

			Expect(errors.Is(err, internal.ErrInsufficientClearance)).To(BeTrue())
		})

		It("should list project entries for admitted requesters", func() {
			projectID := int64(1)
			_, err := service.CreateEntry(author, logbook.CreateEntryDTO{
				ProjectID: &projectID,
				EntryText: "daily sweep complete",
			})
			Expect(err).NotTo(HaveOccurred())

			rendered, err := service.ListProjectEntries(1, low, 20, 0)

			Expect(err).NotTo(HaveOccurred())
			Expect(rendered).To(HaveLen(1))
			Expect(rendered[0].Status).To(Equal(string(redaction.StatusFull)))
		})
	})
})
