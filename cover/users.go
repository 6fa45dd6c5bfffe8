package cover

import (
	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// User is anything that can occupy a cover.
type User interface {
	ID() uuid.UUID
	Name() string
}

// Registration is a user of a cover along with the position it last registered from.
type Registration struct {
	User     User
	Position mgl32.Vec3
}

// RegisterUser marks the user as occupying the cover from position. Registering a user again only
// updates its position.
func (c *Cover) RegisterUser(u User, position mgl32.Vec3) {
	c.usersMu.Lock()
	defer c.usersMu.Unlock()
	c.users.Set(u.ID(), Registration{User: u, Position: position})
}

// UnregisterUser removes the user from the cover. Removing a user that is absent has no effect.
func (c *Cover) UnregisterUser(u User) {
	c.usersMu.Lock()
	defer c.usersMu.Unlock()
	c.users.Delete(u.ID())
}

// Users returns the users of the cover in the order they first registered.
func (c *Cover) Users() []Registration {
	c.usersMu.Lock()
	defer c.usersMu.Unlock()

	users := make([]Registration, 0, c.users.Len())
	for el := c.users.Front(); el != nil; el = el.Next() {
		users = append(users, el.Value)
	}
	return users
}

// UserPosition returns the position the user last registered from.
func (c *Cover) UserPosition(u User) (mgl32.Vec3, bool) {
	c.usersMu.Lock()
	defer c.usersMu.Unlock()

	r, ok := c.users.Get(u.ID())
	return r.Position, ok
}

// UserCount returns the number of users of the cover.
func (c *Cover) UserCount() int {
	c.usersMu.Lock()
	defer c.usersMu.Unlock()
	return c.users.Len()
}

// IsUsedByOther returns true if anyone other than u occupies the cover.
func (c *Cover) IsUsedByOther(u User) bool {
	c.usersMu.Lock()
	defer c.usersMu.Unlock()

	for el := c.users.Front(); el != nil; el = el.Next() {
		if el.Key != u.ID() {
			return true
		}
	}
	return false
}

func (c *Cover) clearUsers() {
	c.usersMu.Lock()
	defer c.usersMu.Unlock()
	c.users = orderedmap.NewOrderedMap[uuid.UUID, Registration]()
}
