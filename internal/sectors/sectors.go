package sectors

import (
	"errors"
	"fmt"

	"github.com/qitae/go-approval/internal/domain"
)

// ErrAccessDenied reports a sector visibility rejection. Callers must not
// conflate this with a not-found lookup: the item exists, the session
// simply may not see it.
var ErrAccessDenied = errors.New("sectors: access denied")

// AccessDeniedError carries the sector that failed the visibility check.
type AccessDeniedError struct {
	Sector string
}

func (e *AccessDeniedError) Error() string {
	if e == nil || e.Sector == "" {
		return ErrAccessDenied.Error()
	}
	return fmt.Sprintf("%s: sector=%s", ErrAccessDenied.Error(), e.Sector)
}

func (e *AccessDeniedError) Unwrap() error {
	return ErrAccessDenied
}

// CanSeeSector reports whether the session may see content tagged with
// the sector. Admin sessions see every sector.
func CanSeeSector(session domain.UserSession, sector string) bool {
	if session.Role == domain.RoleAdmin {
		return true
	}
	for _, assigned := range session.AssignedSectors {
		if assigned == sector {
			return true
		}
	}
	return false
}

// VisibleSectors filters the supplied sector list down to what the
// session may see, preserving input order. Admin sessions get the list
// unchanged.
func VisibleSectors(session domain.UserSession, allSectors []string) []string {
	if session.Role == domain.RoleAdmin {
		return allSectors
	}
	visible := make([]string, 0, len(allSectors))
	for _, sector := range allSectors {
		if CanSeeSector(session, sector) {
			visible = append(visible, sector)
		}
	}
	return visible
}

// FilterContentItems returns the items whose sector the session may see,
// preserving input order.
func FilterContentItems(items []*domain.ContentItem, session domain.UserSession) []*domain.ContentItem {
	if session.Role == domain.RoleAdmin {
		return items
	}
	allowed := make(map[string]struct{}, len(session.AssignedSectors))
	for _, sector := range session.AssignedSectors {
		allowed[sector] = struct{}{}
	}
	visible := make([]*domain.ContentItem, 0, len(items))
	for _, item := range items {
		if _, ok := allowed[item.Sector]; ok {
			visible = append(visible, item)
		}
	}
	return visible
}

// CanAccessContent applies the single-item visibility check.
func CanAccessContent(session domain.UserSession, item *domain.ContentItem) bool {
	if item == nil {
		return false
	}
	return CanSeeSector(session, item.Sector)
}

// RequireAccess returns an AccessDeniedError when the session may not see
// the item, and nil otherwise.
func RequireAccess(session domain.UserSession, item *domain.ContentItem) error {
	if CanAccessContent(session, item) {
		return nil
	}
	sector := ""
	if item != nil {
		sector = item.Sector
	}
	return &AccessDeniedError{Sector: sector}
}
