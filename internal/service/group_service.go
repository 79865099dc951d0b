package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sharveena123/paypals/internal/models"
	"github.com/sharveena123/paypals/internal/storage"
)

var (
	// ErrInvalidInput is wrapped by request validation failures so the
	// HTTP layer can map them to 400 responses.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotGroupMember is returned when the acting user or a referenced
	// member is not part of the group.
	ErrNotGroupMember = errors.New("not a member of this group")

	// ErrForbidden is returned when the acting user may not perform the
	// operation (e.g. deleting a group they did not create).
	ErrForbidden = errors.New("operation not allowed")
)

// GroupService manages groups and their members.
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// CreateGroupParams are the inputs for Create.
type CreateGroupParams struct {
	Name        string
	Description string
	// GuestNames are display names for members without accounts; each
	// gets a synthetic member key.
	GuestNames []string
}

// Create creates a group with the acting user as its first member.
func (s *GroupService) Create(ctx context.Context, userID string, params CreateGroupParams) (*models.Group, error) {
	if params.Name == "" {
		return nil, fmt.Errorf("%w: group name is required", ErrInvalidInput)
	}

	creator, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load creator: %w", err)
	}
	if creator == nil {
		return nil, fmt.Errorf("%w: unknown user %s", ErrForbidden, userID)
	}

	group := &models.Group{
		Name:        params.Name,
		Description: params.Description,
		CreatedBy:   userID,
	}

	members := []models.Member{models.NewRegisteredMember("", creator)}
	for _, name := range params.GuestNames {
		if name == "" {
			return nil, fmt.Errorf("%w: guest name must not be empty", ErrInvalidInput)
		}
		members = append(members, models.NewGuestMember("", name))
	}

	if err := s.store.CreateGroup(ctx, group, members); err != nil {
		slog.Error("failed to create group", "error", err)
		return nil, err
	}

	slog.Info("group created", "group_id", group.ID, "members", len(members))
	return group, nil
}

// Get returns a group the user belongs to.
func (s *GroupService) Get(ctx context.Context, userID, groupID string) (*models.Group, error) {
	if err := s.requireMember(ctx, groupID, userID); err != nil {
		return nil, err
	}
	return s.store.GetGroup(ctx, groupID)
}

// List returns the groups the user belongs to, newest first.
func (s *GroupService) List(ctx context.Context, userID string) ([]*models.Group, error) {
	return s.store.ListGroupsByMember(ctx, userID)
}

// Delete removes a group and everything it owns. Only the creator may
// delete a group.
func (s *GroupService) Delete(ctx context.Context, userID, groupID string) error {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return err
	}
	if group.CreatedBy != userID {
		return fmt.Errorf("%w: only the creator can delete a group", ErrForbidden)
	}

	if err := s.store.DeleteGroup(ctx, groupID); err != nil {
		return err
	}
	slog.Info("group deleted", "group_id", groupID, "user_id", userID)
	return nil
}

// AddMemberParams are the inputs for AddMember: exactly one of Email
// (registered user) or GuestName must be set.
type AddMemberParams struct {
	Email     string
	GuestName string
}

// AddMember adds a registered user (by email) or a guest (by display
// name) to a group the acting user belongs to.
func (s *GroupService) AddMember(ctx context.Context, userID, groupID string, params AddMemberParams) (*models.Member, error) {
	if err := s.requireMember(ctx, groupID, userID); err != nil {
		return nil, err
	}

	var member models.Member
	switch {
	case params.Email != "" && params.GuestName != "":
		return nil, fmt.Errorf("%w: provide either email or guest name, not both", ErrInvalidInput)
	case params.Email != "":
		user, err := s.store.GetUserByEmail(ctx, params.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to look up user: %w", err)
		}
		if user == nil {
			return nil, fmt.Errorf("%w: no account for %q", ErrInvalidInput, params.Email)
		}
		member = models.NewRegisteredMember(groupID, user)
	case params.GuestName != "":
		member = models.NewGuestMember(groupID, params.GuestName)
	default:
		return nil, fmt.Errorf("%w: provide an email or a guest name", ErrInvalidInput)
	}
	member.GroupID = groupID

	if err := s.store.AddMember(ctx, &member); err != nil {
		slog.Error("failed to add member", "group_id", groupID, "error", err)
		return nil, err
	}

	slog.Info("member added", "group_id", groupID, "member_key", member.Key, "kind", member.Kind)
	return &member, nil
}

// Members returns the group's members in join order.
func (s *GroupService) Members(ctx context.Context, userID, groupID string) ([]models.Member, error) {
	if err := s.requireMember(ctx, groupID, userID); err != nil {
		return nil, err
	}
	return s.store.ListGroupMembers(ctx, groupID)
}

// requireMember verifies that memberKey belongs to the group.
func (s *GroupService) requireMember(ctx context.Context, groupID, memberKey string) error {
	members, err := s.store.ListGroupMembers(ctx, groupID)
	if err != nil {
		return err
	}
	for _, m := range members {
		if m.Key == memberKey {
			return nil
		}
	}
	return fmt.Errorf("%w: %s in group %s", ErrNotGroupMember, memberKey, groupID)
}
