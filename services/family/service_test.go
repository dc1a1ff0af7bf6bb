package family

import (
	"errors"
	"fmt"
	"testing"

	"clearmind/models"
)

type memoryRepo struct {
	groups        map[string]*models.FamilyGroup
	invitations   map[string]*models.Invitation
	notifications []models.GroupNotification
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		groups:      map[string]*models.FamilyGroup{},
		invitations: map[string]*models.Invitation{},
	}
}

func (m *memoryRepo) CreateGroup(g *models.FamilyGroup) error {
	cp := *g
	m.groups[g.ID] = &cp
	return nil
}

func (m *memoryRepo) GetGroupByID(id string) (*models.FamilyGroup, error) {
	g, ok := m.groups[id]
	if !ok {
		return nil, fmt.Errorf("family group with id %s not found", id)
	}
	cp := *g
	cp.Members = append([]models.FamilyMember(nil), g.Members...)
	return &cp, nil
}

func (m *memoryRepo) GetGroupsByMember(email string) ([]models.FamilyGroup, error) {
	var out []models.FamilyGroup
	for _, g := range m.groups {
		for _, mem := range g.Members {
			if mem.Email == email {
				out = append(out, *g)
				break
			}
		}
	}
	return out, nil
}

func (m *memoryRepo) UpdateGroup(g *models.FamilyGroup) error {
	if _, ok := m.groups[g.ID]; !ok {
		return fmt.Errorf("family group with id %s not found", g.ID)
	}
	cp := *g
	m.groups[g.ID] = &cp
	return nil
}

func (m *memoryRepo) DeleteGroup(id string) error {
	if _, ok := m.groups[id]; !ok {
		return fmt.Errorf("family group with id %s not found", id)
	}
	delete(m.groups, id)
	return nil
}

func (m *memoryRepo) CreateInvitation(inv *models.Invitation) error {
	cp := *inv
	m.invitations[inv.ID] = &cp
	return nil
}

func (m *memoryRepo) GetInvitationByID(id string) (*models.Invitation, error) {
	inv, ok := m.invitations[id]
	if !ok {
		return nil, fmt.Errorf("invitation with id %s not found", id)
	}
	cp := *inv
	return &cp, nil
}

func (m *memoryRepo) GetInvitationsByInvitee(email string) ([]models.Invitation, error) {
	var out []models.Invitation
	for _, inv := range m.invitations {
		if inv.InviteeEmail == email && inv.Status == "pending" {
			out = append(out, *inv)
		}
	}
	return out, nil
}

func (m *memoryRepo) UpdateInvitationStatus(id, status string) error {
	inv, ok := m.invitations[id]
	if !ok {
		return fmt.Errorf("invitation with id %s not found", id)
	}
	inv.Status = status
	return nil
}

func (m *memoryRepo) CreateNotification(n *models.GroupNotification) error {
	m.notifications = append(m.notifications, *n)
	return nil
}

func (m *memoryRepo) GetNotificationsByGroup(groupID string, limit int64) ([]models.GroupNotification, error) {
	var out []models.GroupNotification
	for _, n := range m.notifications {
		if n.GroupID == groupID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *memoryRepo) MarkNotificationRead(id, email string) error {
	for i := range m.notifications {
		if m.notifications[i].ID == id {
			m.notifications[i].ReadBy = append(m.notifications[i].ReadBy, email)
			return nil
		}
	}
	return fmt.Errorf("notification with id %s not found", id)
}

func TestCreateGroupMakesCreatorAdmin(t *testing.T) {
	svc := &DefaultGroupService{Repo: newMemoryRepo()}

	group, err := svc.CreateGroup("Family", "", "alice@example.com", "Alice")
	if err != nil {
		t.Fatal(err)
	}
	if len(group.Members) != 1 || group.Members[0].Role != roleAdmin {
		t.Fatalf("members = %+v, want creator as admin", group.Members)
	}
	if !group.Preferences.EventCreated || !group.Preferences.EventDeleted {
		t.Error("default preferences should notify on everything")
	}
}

func TestInviteAndAccept(t *testing.T) {
	svc := &DefaultGroupService{Repo: newMemoryRepo()}
	group, _ := svc.CreateGroup("Family", "", "alice@example.com", "Alice")

	inv, err := svc.InviteMember(group.ID, "alice@example.com", "bob@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if inv.Status != "pending" {
		t.Fatalf("status = %q, want pending", inv.Status)
	}

	// A second invite to the same group is rejected.
	if _, err := svc.InviteMember(group.ID, "alice@example.com", "bob@example.com"); !errors.Is(err, ErrAlreadyInvited) {
		t.Fatalf("err = %v, want ErrAlreadyInvited", err)
	}

	if err := svc.RespondToInvitation(inv.ID, "bob@example.com", "Bob", true); err != nil {
		t.Fatal(err)
	}
	got, err := svc.GetGroup(group.ID, "bob@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Members) != 2 || got.Members[1].Role != roleMember {
		t.Fatalf("members = %+v", got.Members)
	}

	// The invitation cannot be answered twice.
	if err := svc.RespondToInvitation(inv.ID, "bob@example.com", "Bob", false); !errors.Is(err, ErrInvitationResolved) {
		t.Fatalf("err = %v, want ErrInvitationResolved", err)
	}
}

func TestInviteRequiresAdmin(t *testing.T) {
	svc := &DefaultGroupService{Repo: newMemoryRepo()}
	group, _ := svc.CreateGroup("Family", "", "alice@example.com", "Alice")
	inv, _ := svc.InviteMember(group.ID, "alice@example.com", "bob@example.com")
	_ = svc.RespondToInvitation(inv.ID, "bob@example.com", "Bob", true)

	if _, err := svc.InviteMember(group.ID, "bob@example.com", "carol@example.com"); !errors.Is(err, ErrNotAdmin) {
		t.Fatalf("err = %v, want ErrNotAdmin", err)
	}
	if _, err := svc.InviteMember(group.ID, "stranger@example.com", "carol@example.com"); !errors.Is(err, ErrNotMember) {
		t.Fatalf("err = %v, want ErrNotMember", err)
	}
}

func TestLeaveGroupPromotesReplacementAdmin(t *testing.T) {
	svc := &DefaultGroupService{Repo: newMemoryRepo()}
	group, _ := svc.CreateGroup("Family", "", "alice@example.com", "Alice")
	inv, _ := svc.InviteMember(group.ID, "alice@example.com", "bob@example.com")
	_ = svc.RespondToInvitation(inv.ID, "bob@example.com", "Bob", true)

	if err := svc.LeaveGroup(group.ID, "alice@example.com"); err != nil {
		t.Fatal(err)
	}
	got, err := svc.GetGroup(group.ID, "bob@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Members) != 1 || got.Members[0].Role != roleAdmin {
		t.Fatalf("members = %+v, want bob promoted to admin", got.Members)
	}
}

func TestLastMemberLeavingDissolvesGroup(t *testing.T) {
	repo := newMemoryRepo()
	svc := &DefaultGroupService{Repo: repo}
	group, _ := svc.CreateGroup("Family", "", "alice@example.com", "Alice")

	if err := svc.LeaveGroup(group.ID, "alice@example.com"); err != nil {
		t.Fatal(err)
	}
	if _, ok := repo.groups[group.ID]; ok {
		t.Fatal("group should be deleted when the last member leaves")
	}
}

func TestNotifyGroupHonorsPreferences(t *testing.T) {
	repo := newMemoryRepo()
	svc := &DefaultGroupService{Repo: repo}
	group, _ := svc.CreateGroup("Family", "", "alice@example.com", "Alice")

	if _, err := svc.UpdatePreferences(group.ID, "alice@example.com", models.NotificationPreferences{
		EventCreated: true,
		EventDeleted: false,
	}); err != nil {
		t.Fatal(err)
	}

	if err := svc.NotifyGroup(group.ID, "alice@example.com", "event_created", nil); err != nil {
		t.Fatal(err)
	}
	if err := svc.NotifyGroup(group.ID, "alice@example.com", "event_deleted", nil); err != nil {
		t.Fatal(err)
	}
	if len(repo.notifications) != 1 || repo.notifications[0].Type != "event_created" {
		t.Fatalf("notifications = %+v, want only event_created", repo.notifications)
	}
}

func TestMarkNotificationReadRequiresMembership(t *testing.T) {
	repo := newMemoryRepo()
	svc := &DefaultGroupService{Repo: repo}
	group, _ := svc.CreateGroup("Family", "", "alice@example.com", "Alice")
	_ = svc.NotifyGroup(group.ID, "alice@example.com", "event_created", nil)

	id := repo.notifications[0].ID
	if err := svc.MarkNotificationRead(group.ID, id, "stranger@example.com"); !errors.Is(err, ErrNotMember) {
		t.Fatalf("err = %v, want ErrNotMember", err)
	}
	if err := svc.MarkNotificationRead(group.ID, id, "alice@example.com"); err != nil {
		t.Fatal(err)
	}
	if len(repo.notifications[0].ReadBy) != 1 {
		t.Fatalf("readBy = %v", repo.notifications[0].ReadBy)
	}
}
