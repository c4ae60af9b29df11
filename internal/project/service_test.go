package project_test

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
)

func TestProject(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Project Suite")
}

type mockRepository struct {
	projects    map[int64]*project.Project
	assignments map[int64][]*project.Assignment
	nextID      int64
	nextRuleID  int64

	createErr error
	getErr    error
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		projects:    make(map[int64]*project.Project),
		assignments: make(map[int64][]*project.Assignment),
		nextID:      1,
		nextRuleID:  1,
	}
}

func (m *mockRepository) Create(p *project.Project) error {
	if m.createErr != nil {
		return m.createErr
	}
	p.ID = m.nextID
	m.nextID++
	m.projects[p.ID] = p
	return nil
}

func (m *mockRepository) GetByID(id int64) (*project.Project, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	p, ok := m.projects[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return p, nil
}

func (m *mockRepository) GetAll(limit, offset int) ([]*project.Project, error) {
	out := make([]*project.Project, 0, len(m.projects))
	for id := int64(1); id < m.nextID; id++ {
		if p, ok := m.projects[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockRepository) UpdateStatus(id int64, status string) error {
	p, ok := m.projects[id]
	if !ok {
		return errors.New("record not found")
	}
	p.Status = status
	return nil
}

func (m *mockRepository) AddRule(rule access.Rule) (access.Rule, error) {
	rule.ID = m.nextRuleID
	m.nextRuleID++
	if p, ok := m.projects[rule.ProjectID]; ok {
		p.AccessRules = append(p.AccessRules, rule)
	}
	return rule, nil
}

func (m *mockRepository) DeleteRule(projectID, ruleID int64) error {
	p, ok := m.projects[projectID]
	if !ok {
		return errors.New("record not found")
	}
	for i, rule := range p.AccessRules {
		if rule.ID == ruleID {
			p.AccessRules = append(p.AccessRules[:i], p.AccessRules[i+1:]...)
			return nil
		}
	}
	return errors.New("record not found")
}

func (m *mockRepository) UpsertAssignment(projectID, userID int64, role access.Role) (*project.Assignment, error) {
	for _, a := range m.assignments[projectID] {
		if a.UserID == userID {
			a.Role = role
			return a, nil
		}
	}
	a := &project.Assignment{
		ID:        int64(len(m.assignments[projectID]) + 1),
		ProjectID: projectID,
		UserID:    userID,
		Role:      role,
	}
	m.assignments[projectID] = append(m.assignments[projectID], a)
	return a, nil
}

func (m *mockRepository) GetAssignments(projectID int64) ([]*project.Assignment, error) {
	return m.assignments[projectID], nil
}

var _ = Describe("Project Service", func() {
	var (
		repo    *mockRepository
		service *project.Service

		admin      access.Identity
		senior     access.Identity
		junior     access.Identity
		outsider   access.Identity
	)

	BeforeEach(func() {
		repo = newMockRepository()
		service = project.NewService(repo, slog.Default())

		admin = access.Identity{UserID: 1, Clearance: clearance.LevelOverseer}
		senior = access.Identity{UserID: 2, Clearance: clearance.LevelSenior}
		junior = access.Identity{UserID: 3, Clearance: clearance.LevelStandard}
		outsider = access.Identity{UserID: 4, Clearance: clearance.LevelNone}
	})

	Describe("CreateProject", func() {
		It("should create a project and assign the creator as lead", func() {
			proj, err := service.CreateProject(senior, project.CreateProjectDTO{
				Title:         "Containment Review",
				SecurityClass: "AMBER",
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(proj.ID).NotTo(BeZero())
			Expect(proj.SecurityClass).To(Equal(clearance.ClassAmber))

			members := repo.assignments[proj.ID]
			Expect(members).To(HaveLen(1))
			Expect(members[0].UserID).To(Equal(senior.UserID))
			Expect(members[0].Role).To(Equal(access.RoleLead))
		})

		It("should fall back to GREEN for an unknown security class", func() {
			proj, err := service.CreateProject(senior, project.CreateProjectDTO{
				Title:         "Mystery File",
				SecurityClass: "ULTRAVIOLET",
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(proj.SecurityClass).To(Equal(clearance.ClassGreen))
		})

		It("should reject an empty title", func() {
			_, err := service.CreateProject(senior, project.CreateProjectDTO{Title: "   "})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("GetProject", func() {
		var projID int64

		BeforeEach(func() {
			proj, err := service.CreateProject(senior, project.CreateProjectDTO{
				Title:         "Deep Archive",
				SecurityClass: "RED",
			})
			Expect(err).NotTo(HaveOccurred())
			projID = proj.ID
		})

		It("should deny a requester below the classification floor", func() {
			_, _, err := service.GetProject(projID, junior)

			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, internal.ErrInsufficientClearance)).To(BeTrue())
		})

		It("should admit a requester at the floor as researcher", func() {
			proj, decision, err := service.GetProject(projID, access.Identity{UserID: 9, Clearance: clearance.LevelDirector})

			Expect(err).NotTo(HaveOccurred())
			Expect(proj.ID).To(Equal(projID))
			Expect(decision.Role).To(Equal(access.RoleResearcher))
		})

		It("should admit a below-floor requester through a user rule", func() {
			_, err := service.AddAccessRule(projID, senior, project.CreateAccessRuleDTO{
				AccessType: "user",
				TargetID:   int64Ptr(junior.UserID),
				Role:       "observer",
			})
			Expect(err).NotTo(HaveOccurred())

			_, decision, err := service.GetProject(projID, junior)

			Expect(err).NotTo(HaveOccurred())
			Expect(decision.Allowed).To(BeTrue())
			Expect(decision.Role).To(Equal(access.RoleObserver))
		})

		It("should return not found for a missing project", func() {
			_, _, err := service.GetProject(999, admin)

			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, internal.ErrProjectNotFound)).To(BeTrue())
		})
	})

	Describe("ListVisibleProjects", func() {
		BeforeEach(func() {
			_, err := service.CreateProject(senior, project.CreateProjectDTO{Title: "Green One", SecurityClass: "GREEN"})
			Expect(err).NotTo(HaveOccurred())
			_, err = service.CreateProject(senior, project.CreateProjectDTO{Title: "Black One", SecurityClass: "BLACK"})
			Expect(err).NotTo(HaveOccurred())
		})

		It("should only list projects the requester may access", func() {
			entries, err := service.ListVisibleProjects(junior, 20, 0)

			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(HaveLen(1))
			Expect(entries[0].Title).To(Equal("Green One"))
		})

		It("should hide expunged projects from non-administrators", func() {
			Expect(service.UpdateStatus(1, admin, project.StatusExpunged)).To(Succeed())

			entries, err := service.ListVisibleProjects(junior, 20, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(BeEmpty())

			adminEntries, err := service.ListVisibleProjects(admin, 20, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(adminEntries).To(HaveLen(2))
		})
	})

	Describe("AddAccessRule", func() {
		var projID int64

		BeforeEach(func() {
			proj, err := service.CreateProject(junior, project.CreateProjectDTO{
				Title:         "Junior Lab",
				SecurityClass: "GREEN",
			})
			Expect(err).NotTo(HaveOccurred())
			projID = proj.ID
		})

		It("should let the creator manage rules even below senior clearance", func() {
			rule, err := service.AddAccessRule(projID, junior, project.CreateAccessRuleDTO{
				AccessType: "user",
				TargetID:   int64Ptr(outsider.UserID),
				Role:       "consultant",
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(rule.ID).NotTo(BeZero())
			Expect(rule.Role).To(Equal(access.RoleConsultant))
		})

		It("should deny a non-creator below senior clearance", func() {
			other := access.Identity{UserID: 77, Clearance: clearance.LevelStandard}

			_, err := service.AddAccessRule(projID, other, project.CreateAccessRuleDTO{
				AccessType: "user",
				TargetID:   int64Ptr(outsider.UserID),
			})

			Expect(errors.Is(err, internal.ErrInsufficientClearance)).To(BeTrue())
		})

		It("should reject a malformed rule", func() {
			_, err := service.AddAccessRule(projID, senior, project.CreateAccessRuleDTO{
				AccessType: "user",
			})

			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, internal.ErrInvalidRule)).To(BeTrue())
		})

		It("should reject a user rule carrying a min clearance", func() {
			_, err := service.AddAccessRule(projID, senior, project.CreateAccessRuleDTO{
				AccessType:   "user",
				TargetID:     int64Ptr(outsider.UserID),
				MinClearance: intPtr(3),
			})

			Expect(errors.Is(err, internal.ErrInvalidRule)).To(BeTrue())
		})

		It("should reject a clearance rule carrying a target id", func() {
			_, err := service.AddAccessRule(projID, senior, project.CreateAccessRuleDTO{
				AccessType:   "clearance",
				TargetID:     int64Ptr(1),
				MinClearance: intPtr(3),
			})

			Expect(errors.Is(err, internal.ErrInvalidRule)).To(BeTrue())
		})

		It("should reject an unknown rule type", func() {
			_, err := service.AddAccessRule(projID, senior, project.CreateAccessRuleDTO{
				AccessType: "species",
				TargetID:   int64Ptr(1),
			})

			Expect(errors.Is(err, internal.ErrInvalidRule)).To(BeTrue())
		})
	})

	Describe("RemoveAccessRule", func() {
		It("should remove an existing rule under the creator's authority", func() {
			proj, err := service.CreateProject(junior, project.CreateProjectDTO{Title: "Lab", SecurityClass: "GREEN"})
			Expect(err).NotTo(HaveOccurred())

			rule, err := service.AddAccessRule(proj.ID, junior, project.CreateAccessRuleDTO{
				AccessType: "user",
				TargetID:   int64Ptr(5),
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(service.RemoveAccessRule(proj.ID, rule.ID, junior)).To(Succeed())
			Expect(repo.projects[proj.ID].AccessRules).To(BeEmpty())
		})
	})

	Describe("AssignMember", func() {
		var projID int64

		BeforeEach(func() {
			proj, err := service.CreateProject(senior, project.CreateProjectDTO{Title: "Team", SecurityClass: "GREEN"})
			Expect(err).NotTo(HaveOccurred())
			projID = proj.ID
		})

		It("should upsert instead of duplicating an assignment", func() {
			_, err := service.AssignMember(projID, senior, project.AssignMemberDTO{UserID: 10, Role: "observer"})
			Expect(err).NotTo(HaveOccurred())

			updated, err := service.AssignMember(projID, senior, project.AssignMemberDTO{UserID: 10, Role: "lead"})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Role).To(Equal(access.RoleLead))

			members, err := service.GetMembers(projID, senior)
			Expect(err).NotTo(HaveOccurred())
			// creator + the single upserted member
			Expect(members).To(HaveLen(2))
		})

		It("should default an invalid role to researcher", func() {
			assignment, err := service.AssignMember(projID, senior, project.AssignMemberDTO{UserID: 11, Role: "wizard"})

			Expect(err).NotTo(HaveOccurred())
			Expect(assignment.Role).To(Equal(access.RoleResearcher))
		})
	})

	Describe("UpdateStatus", func() {
		var projID int64

		BeforeEach(func() {
			proj, err := service.CreateProject(senior, project.CreateProjectDTO{Title: "Lifecycle", SecurityClass: "GREEN"})
			Expect(err).NotTo(HaveOccurred())
			projID = proj.ID
		})

		It("should require administrator clearance", func() {
			err := service.UpdateStatus(projID, senior, project.StatusArchived)
			Expect(errors.Is(err, internal.ErrInsufficientClearance)).To(BeTrue())
		})

		It("should reject an unknown status", func() {
			err := service.UpdateStatus(projID, admin, "vaporized")
			Expect(errors.Is(err, internal.ErrInvalidStatus)).To(BeTrue())
		})

		It("should update a valid status", func() {
			Expect(service.UpdateStatus(projID, admin, project.StatusSuspended)).To(Succeed())
			Expect(repo.projects[projID].Status).To(Equal(project.StatusSuspended))
		})
	})
})

func int64Ptr(v int64) *int64 { return &v }

func intPtr(v int) *int { return &v }
