package pool

// Group is the organizational grouping context for idle entities. It exists
// so idle entities stay structurally grouped for inspection; membership has
// no simulation effect. It also backs the double-release check in debug
// builds, since a released entity is always a member.
type Group struct {
	name    string
	members map[any]struct{}
}

func NewGroup(name string) *Group {
	return &Group{
		name:    name,
		members: make(map[any]struct{}, 128),
	}
}

func (g *Group) Name() string { return g.name }
func (g *Group) Len() int     { return len(g.members) }

func (g *Group) Add(item any) {
	g.members[item] = struct{}{}
}

func (g *Group) Remove(item any) {
	delete(g.members, item)
}

func (g *Group) Contains(item any) bool {
	_, ok := g.members[item]
	return ok
}
