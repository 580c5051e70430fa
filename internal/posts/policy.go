package posts

import "postboard/internal/auth"

// Policy decisions for every post action. These are pure functions over an
// already-resolved user and post; storage errors never reach them.

type DenialKind int

const (
	DenyNone DenialKind = iota
	DenyNotFound
	DenyForbidden
)

type Decision struct {
	Allowed bool
	Denial  DenialKind
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(kind DenialKind) Decision {
	return Decision{Denial: kind}
}

// CanRead reports whether the principal may see the post. A hidden post owned
// by someone else denies with not-found, never forbidden, so its existence is
// not disclosed: the response must be indistinguishable from a post that does
// not exist.
func CanRead(u *auth.User, p *Post) Decision {
	if p == nil {
		return deny(DenyNotFound)
	}
	if u.IsAdmin() {
		return allow()
	}
	if !p.IsHidden {
		return allow()
	}
	if p.AuthorID == u.ID {
		return allow()
	}
	return deny(DenyNotFound)
}

// CanMutate covers update, hide, show and delete; all four share one
// ownership rule. Unlike reads, a mutation on an existing post the principal
// does not own denies with forbidden: the request already named the post by
// id, and ownership is the property being tested.
func CanMutate(u *auth.User, p *Post) Decision {
	if p == nil {
		return deny(DenyNotFound)
	}
	if u.IsAdmin() || p.AuthorID == u.ID {
		return allow()
	}
	return deny(DenyForbidden)
}

// CanCreate allows any authenticated principal. Authorship is fixed to the
// principal and new posts start public; the caller has no say in either.
func CanCreate(u *auth.User) Decision {
	return allow()
}

// ScopeFor returns the list filter for the principal: admins see everything,
// everyone else sees public posts plus their own hidden ones.
func ScopeFor(u *auth.User) ListScope {
	if u.IsAdmin() {
		return ListScope{All: true}
	}
	return ListScope{ViewerID: u.ID}
}
