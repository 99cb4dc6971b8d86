// Package identity maps numeric user and group IDs to names.
package identity

import (
	"os/user"
	"strconv"
)

// Resolver looks up account names. Either method may fail when the id
// has no name; callers fall back to the number.
type Resolver interface {
	User(uid uint32) (string, error)
	Group(gid uint32) (string, error)
}

// System resolves through the host account database, caching results.
type System struct {
	cache      *nameCache
	lookupUser func(string) (*user.User, error)
	lookupGrp  func(string) (*user.Group, error)
}

// NewSystem creates a caching resolver backed by os/user.
func NewSystem() *System {
	return &System{
		cache:      newNameCache(nameCacheSize),
		lookupUser: user.LookupId,
		lookupGrp:  user.LookupGroupId,
	}
}

// User returns the login name for uid.
func (s *System) User(uid uint32) (string, error) {
	key := cacheKey{id: uid}
	if e, ok := s.cache.Get(key); ok {
		return e.name, e.err
	}
	var name string
	u, err := s.lookupUser(strconv.FormatUint(uint64(uid), 10))
	if err == nil {
		name = u.Username
	}
	s.cache.Set(key, name, err)
	return name, err
}

// Group returns the group name for gid.
func (s *System) Group(gid uint32) (string, error) {
	key := cacheKey{group: true, id: gid}
	if e, ok := s.cache.Get(key); ok {
		return e.name, e.err
	}
	var name string
	g, err := s.lookupGrp(strconv.FormatUint(uint64(gid), 10))
	if err == nil {
		name = g.Name
	}
	s.cache.Set(key, name, err)
	return name, err
}

// UserText returns the user name for uid, or the decimal uid when numeric
// is set or the lookup fails.
func UserText(r Resolver, uid uint32, numeric bool) string {
	if !numeric && r != nil {
		if name, err := r.User(uid); err == nil && name != "" {
			return name
		}
	}
	return strconv.FormatUint(uint64(uid), 10)
}

// GroupText is UserText for groups.
func GroupText(r Resolver, gid uint32, numeric bool) string {
	if !numeric && r != nil {
		if name, err := r.Group(gid); err == nil && name != "" {
			return name
		}
	}
	return strconv.FormatUint(uint64(gid), 10)
}
