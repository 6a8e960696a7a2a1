package scoring

import (
	"peerscore/app_error"
	"peerscore/repository"
	"strconv"
	"strings"
)

// TargetRef is a tagged reference to a rating target: a registered user by id
// or an external participant by free-text name.
type TargetRef struct {
	UserId *int
	Name   string
}

func RegisteredTarget(userId int) TargetRef {
	return TargetRef{UserId: &userId}
}

func ExternalTarget(name string) TargetRef {
	return TargetRef{Name: name}
}

func (t TargetRef) IsRegistered() bool {
	return t.UserId != nil
}

// Identity is a resolved target: the canonical key evaluations group under
// plus the name reports display.
type Identity struct {
	Key         string
	DisplayName string
	UserId      *int
}

const (
	userKeyPrefix     = "user:"
	externalKeyPrefix = "name:"
)

// CanonicalName collapses whitespace runs, trims and lowercases, so
// "  Ann   LEE " and "ann lee" compare equal.
func CanonicalName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// UserKey builds the canonical key for a registered user. Keys derive from
// the stable id, never the name, so renames keep history attached. The prefix
// keeps user keys disjoint from external name keys.
func UserKey(userId int) string {
	return userKeyPrefix + strconv.Itoa(userId)
}

func ExternalKey(name string) string {
	return externalKeyPrefix + CanonicalName(name)
}

func UserIdentity(user *repository.User) Identity {
	userId := user.Id
	return Identity{
		Key:         UserKey(user.Id),
		DisplayName: user.FullName,
		UserId:      &userId,
	}
}

// ExternalIdentity resolves a free-text name. The display name keeps the
// original casing and inner spacing, trimmed at the edges.
func ExternalIdentity(name string) (Identity, error) {
	display := strings.TrimSpace(name)
	if display == "" {
		return Identity{}, app_error.NewValidation("target_name", "target name must not be empty")
	}
	return Identity{
		Key:         ExternalKey(name),
		DisplayName: display,
	}, nil
}
