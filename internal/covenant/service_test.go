package covenant_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ouroboros-foundation/portal/internal"
	"github.com/ouroboros-foundation/portal/internal/access"
	"github.com/ouroboros-foundation/portal/internal/clearance"
	"github.com/ouroboros-foundation/portal/internal/covenant"
)

func TestCovenant(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Covenant Suite")
}

type mockRepository struct {
	seats       map[int64]*covenant.Seat
	members     map[int64]*covenant.Member
	invitations map[string]*covenant.Invitation
	nextID      int64
}

func newMockRepository(seatCount int) *mockRepository {
	m := &mockRepository{
		seats:       make(map[int64]*covenant.Seat),
		members:     make(map[int64]*covenant.Member),
		invitations: make(map[string]*covenant.Invitation),
		nextID:      1,
	}
	for i := 1; i <= seatCount; i++ {
		m.seats[int64(i)] = &covenant.Seat{ID: int64(i), Number: i}
	}
	return m
}

func (m *mockRepository) GetSeats() ([]*covenant.Seat, error) {
	out := make([]*covenant.Seat, 0, len(m.seats))
	for i := int64(1); i <= int64(len(m.seats)); i++ {
		out = append(out, m.seats[i])
	}
	return out, nil
}

func (m *mockRepository) GetSeat(seatID int64) (*covenant.Seat, error) {
	seat, ok := m.seats[seatID]
	if !ok {
		return nil, errors.New("record not found")
	}
	return seat, nil
}

func (m *mockRepository) GetActiveMembers() ([]*covenant.Member, error) {
	var out []*covenant.Member
	for _, member := range m.members {
		if member.Active() {
			out = append(out, member)
		}
	}
	return out, nil
}

func (m *mockRepository) GetActiveMemberByUser(userID int64) (*covenant.Member, error) {
	for _, member := range m.members {
		if member.UserID == userID && member.Active() {
			return member, nil
		}
	}
	return nil, nil
}

func (m *mockRepository) GetActiveMemberBySeat(seatID int64) (*covenant.Member, error) {
	for _, member := range m.members {
		if member.SeatID == seatID && member.Active() {
			return member, nil
		}
	}
	return nil, nil
}

func (m *mockRepository) CreateMember(userID, seatID int64, at time.Time) (*covenant.Member, error) {
	member := &covenant.Member{ID: m.nextID, UserID: userID, SeatID: seatID, JoinedAt: at}
	m.nextID++
	m.members[member.ID] = member
	return member, nil
}

func (m *mockRepository) MarkLeft(memberID int64, at time.Time) error {
	member, ok := m.members[memberID]
	if !ok {
		return errors.New("record not found")
	}
	member.LeftAt = &at
	return nil
}

func (m *mockRepository) CreateInvitation(i *covenant.Invitation) error {
	i.ID = m.nextID
	m.nextID++
	m.invitations[i.Token] = i
	return nil
}

func (m *mockRepository) GetInvitationByToken(token string) (*covenant.Invitation, error) {
	i, ok := m.invitations[token]
	if !ok {
		return nil, errors.New("record not found")
	}
	return i, nil
}

func (m *mockRepository) ResolveInvitation(id int64, acceptedAt, declinedAt *time.Time) error {
	for _, i := range m.invitations {
		if i.ID == id {
			i.AcceptedAt = acceptedAt
			i.DeclinedAt = declinedAt
			return nil
		}
	}
	return errors.New("record not found")
}

var _ = Describe("Covenant Service", func() {
	var (
		repo    *mockRepository
		service *covenant.Service

		admin   access.Identity
		invitee access.Identity
	)

	BeforeEach(func() {
		repo = newMockRepository(3)
		service = covenant.NewService(repo, 48*time.Hour, slog.Default())

		admin = access.Identity{UserID: 1, Clearance: clearance.LevelOverseer}
		invitee = access.Identity{UserID: 2, Clearance: clearance.LevelStandard}
	})

	seatFor := func(who access.Identity, seatID int64) *covenant.Member {
		inv, err := service.InviteToSeat(admin, covenant.InviteToSeatDTO{UserID: who.UserID, SeatID: seatID})
		Expect(err).NotTo(HaveOccurred())
		member, err := service.AcceptInvitation(inv.Token, who)
		Expect(err).NotTo(HaveOccurred())
		return member
	}

	Describe("InviteToSeat", func() {
		It("should let an administrator invite onto a free seat", func() {
			inv, err := service.InviteToSeat(admin, covenant.InviteToSeatDTO{UserID: invitee.UserID, SeatID: 1})

			Expect(err).NotTo(HaveOccurred())
			Expect(inv.Token).NotTo(BeEmpty())
			Expect(inv.SeatID).To(Equal(int64(1)))
		})

		It("should let a sitting member invite, but nobody else", func() {
			outsider := access.Identity{UserID: 9, Clearance: clearance.LevelDirector}
			_, err := service.InviteToSeat(outsider, covenant.InviteToSeatDTO{UserID: invitee.UserID, SeatID: 1})
			Expect(errors.Is(err, internal.ErrInsufficientClearance)).To(BeTrue())

			seatFor(access.Identity{UserID: 9, Clearance: clearance.LevelStandard}, 2)
			_, err = service.InviteToSeat(outsider, covenant.InviteToSeatDTO{UserID: invitee.UserID, SeatID: 1})
			Expect(err).NotTo(HaveOccurred())
		})

		It("should refuse an occupied seat", func() {
			seatFor(invitee, 1)

			other := access.Identity{UserID: 3, Clearance: clearance.LevelStandard}
			_, err := service.InviteToSeat(admin, covenant.InviteToSeatDTO{UserID: other.UserID, SeatID: 1})

			Expect(errors.Is(err, internal.ErrSeatOccupied)).To(BeTrue())
		})

		It("should refuse a user who already holds a seat", func() {
			seatFor(invitee, 1)

			_, err := service.InviteToSeat(admin, covenant.InviteToSeatDTO{UserID: invitee.UserID, SeatID: 2})

			Expect(errors.Is(err, internal.ErrSeatOccupied)).To(BeTrue())
		})
	})

	Describe("AcceptInvitation", func() {
		It("should seat the invited user", func() {
			member := seatFor(invitee, 1)

			Expect(member.SeatID).To(Equal(int64(1)))
			Expect(member.Active()).To(BeTrue())
		})

		It("should require standard clearance to join", func() {
			low := access.Identity{UserID: 5, Clearance: clearance.LevelProvisional}
			inv, err := service.InviteToSeat(admin, covenant.InviteToSeatDTO{UserID: low.UserID, SeatID: 1})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.AcceptInvitation(inv.Token, low)

			Expect(errors.Is(err, internal.ErrInsufficientClearance)).To(BeTrue())
		})

		It("should refuse acceptance by anyone but the invitee", func() {
			inv, err := service.InviteToSeat(admin, covenant.InviteToSeatDTO{UserID: invitee.UserID, SeatID: 1})
			Expect(err).NotTo(HaveOccurred())

			imposter := access.Identity{UserID: 99, Clearance: clearance.LevelOverseer}
			_, err = service.AcceptInvitation(inv.Token, imposter)

			Expect(errors.Is(err, internal.ErrInsufficientClearance)).To(BeTrue())
		})

		It("should resolve the invitation exactly once", func() {
			inv, err := service.InviteToSeat(admin, covenant.InviteToSeatDTO{UserID: invitee.UserID, SeatID: 1})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.AcceptInvitation(inv.Token, invitee)
			Expect(err).NotTo(HaveOccurred())

			_, err = service.AcceptInvitation(inv.Token, invitee)

			Expect(errors.Is(err, internal.ErrInvitationUsed)).To(BeTrue())
		})

		It("should refuse an expired invitation", func() {
			inv, err := service.InviteToSeat(admin, covenant.InviteToSeatDTO{UserID: invitee.UserID, SeatID: 1})
			Expect(err).NotTo(HaveOccurred())
			repo.invitations[inv.Token].ExpiresAt = time.Now().Add(-time.Hour)

			_, err = service.AcceptInvitation(inv.Token, invitee)

			Expect(errors.Is(err, internal.ErrInvitationExpired)).To(BeTrue())
		})
	})

	Describe("LeaveSeat", func() {
		It("should vacate the seat and free it for re-invitation", func() {
			seatFor(invitee, 1)

			Expect(service.LeaveSeat(invitee)).To(Succeed())

			other := access.Identity{UserID: 3, Clearance: clearance.LevelStandard}
			_, err := service.InviteToSeat(admin, covenant.InviteToSeatDTO{UserID: other.UserID, SeatID: 1})
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("ListSeats", func() {
		It("should report occupancy per seat", func() {
			seatFor(invitee, 2)

			statuses, err := service.ListSeats()

			Expect(err).NotTo(HaveOccurred())
			Expect(statuses).To(HaveLen(3))
			Expect(statuses[0].OccupantID).To(BeNil())
			Expect(statuses[1].OccupantID).To(HaveValue(Equal(invitee.UserID)))
		})
	})
})
