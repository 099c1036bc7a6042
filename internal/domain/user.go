package domain

import (
	"errors"
	"time"
)

type UserRole string

const (
	RoleArtist    UserRole = "artist"
	RoleClient    UserRole = "client"
	RoleShopOwner UserRole = "shop-owner"
	RoleDual      UserRole = "dual"
	RoleAdmin     UserRole = "admin"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleArtist, RoleClient, RoleShopOwner, RoleDual, RoleAdmin:
		return true
	}
	return false
}

// ActsAsArtist reports whether the role carries an artist profile.
func (r UserRole) ActsAsArtist() bool {
	return r == RoleArtist || r == RoleDual
}

var ErrInvalidUserShape = errors.New("user payload does not match role")

// ClientProfile is the payload of a client account.
type ClientProfile struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// ShopOwnerProfile is the payload of a shop-owner account. ShopID stays nil
// until onboarding has created the owner's shop.
type ShopOwnerProfile struct {
	Name   string  `json:"name"`
	ShopID *string `json:"shopId"`
}

type AdminProfile struct {
	Name string `json:"name"`
}

// User is a tagged union over roles. Exactly one payload is set and it must
// match Role; artist and dual share the Artist payload.
type User struct {
	ID        string            `json:"id"`
	Email     string            `json:"email"`
	Role      UserRole          `json:"type"`
	Artist    *Artist           `json:"artistData,omitempty"`
	Client    *ClientProfile    `json:"clientData,omitempty"`
	ShopOwner *ShopOwnerProfile `json:"shopOwnerData,omitempty"`
	Admin     *AdminProfile     `json:"adminData,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
}

func NewArtistUser(id, email string, a *Artist) *User {
	return &User{ID: id, Email: email, Role: RoleArtist, Artist: a}
}

func NewDualUser(id, email string, a *Artist) *User {
	return &User{ID: id, Email: email, Role: RoleDual, Artist: a}
}

func NewClientUser(id, email string, c *ClientProfile) *User {
	return &User{ID: id, Email: email, Role: RoleClient, Client: c}
}

func NewShopOwnerUser(id, email string, o *ShopOwnerProfile) *User {
	return &User{ID: id, Email: email, Role: RoleShopOwner, ShopOwner: o}
}

func NewAdminUser(id, email string, a *AdminProfile) *User {
	return &User{ID: id, Email: email, Role: RoleAdmin, Admin: a}
}

// Validate checks that exactly the payload belonging to Role is present.
func (u *User) Validate() error {
	if u == nil || !u.Role.Valid() {
		return ErrInvalidUserShape
	}
	set := 0
	for _, ok := range []bool{u.Artist != nil, u.Client != nil, u.ShopOwner != nil, u.Admin != nil} {
		if ok {
			set++
		}
	}
	if set != 1 {
		return ErrInvalidUserShape
	}
	switch u.Role {
	case RoleArtist, RoleDual:
		if u.Artist == nil {
			return ErrInvalidUserShape
		}
	case RoleClient:
		if u.Client == nil {
			return ErrInvalidUserShape
		}
	case RoleShopOwner:
		if u.ShopOwner == nil {
			return ErrInvalidUserShape
		}
	case RoleAdmin:
		if u.Admin == nil {
			return ErrInvalidUserShape
		}
	}
	return nil
}

// DisplayName returns the name carried by whichever payload is set.
func (u *User) DisplayName() string {
	switch {
	case u == nil:
		return ""
	case u.Artist != nil:
		return u.Artist.Name
	case u.Client != nil:
		return u.Client.Name
	case u.ShopOwner != nil:
		return u.ShopOwner.Name
	case u.Admin != nil:
		return u.Admin.Name
	}
	return ""
}
