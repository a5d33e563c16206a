package scoring

import "strings"

// Category is the kind of work an activity represents.
type Category int

// Category values. CategoryUnknown is what ParseCategory returns for any
// label outside the closed set; every table lookup treats it as neutral.
const (
	CategoryUnknown Category = iota
	CategoryCode
	CategoryBiz
	CategoryDesign
	CategoryContent
	CategoryMisc

	numCategories
)

var categoryNames = [numCategories]string{
	CategoryUnknown: "unknown",
	CategoryCode:    "code",
	CategoryBiz:     "biz",
	CategoryDesign:  "design",
	CategoryContent: "content",
	CategoryMisc:    "misc",
}

// Categories lists the recognized categories in display order.
func Categories() []Category {
	return []Category{CategoryCode, CategoryBiz, CategoryContent, CategoryDesign, CategoryMisc}
}

// ParseCategory maps a label to a Category. Matching ignores case and
// surrounding whitespace.
func ParseCategory(s string) Category {
	s = strings.ToLower(strings.TrimSpace(s))
	for c := CategoryCode; c < numCategories; c++ {
		if categoryNames[c] == s {
			return c
		}
	}
	return CategoryUnknown
}

func (c Category) String() string {
	if c < 0 || c >= numCategories {
		return categoryNames[CategoryUnknown]
	}
	return categoryNames[c]
}

// Known reports whether c is one of the five recognized categories.
func (c Category) Known() bool {
	return c > CategoryUnknown && c < numCategories
}

func (c Category) index() int {
	if !c.Known() {
		return int(CategoryUnknown)
	}
	return int(c)
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unrecognized labels
// decode to CategoryUnknown rather than failing.
func (c *Category) UnmarshalText(text []byte) error {
	*c = ParseCategory(string(text))
	return nil
}

// Role is a builder's primary functional identity. It shares its label
// space with Category except that code work is done by a "coder".
type Role int

// Role values.
const (
	RoleUnknown Role = iota
	RoleCoder
	RoleBiz
	RoleDesign
	RoleContent
	RoleMisc

	numRoles
)

var roleNames = [numRoles]string{
	RoleUnknown: "unknown",
	RoleCoder:   "coder",
	RoleBiz:     "biz",
	RoleDesign:  "design",
	RoleContent: "content",
	RoleMisc:    "misc",
}

// Roles lists the recognized roles.
func Roles() []Role {
	return []Role{RoleCoder, RoleBiz, RoleContent, RoleDesign, RoleMisc}
}

// ParseRole maps a label to a Role, ignoring case and surrounding whitespace.
func ParseRole(s string) Role {
	s = strings.ToLower(strings.TrimSpace(s))
	for r := RoleCoder; r < numRoles; r++ {
		if roleNames[r] == s {
			return r
		}
	}
	return RoleUnknown
}

func (r Role) String() string {
	if r < 0 || r >= numRoles {
		return roleNames[RoleUnknown]
	}
	return roleNames[r]
}

// Known reports whether r is one of the five recognized roles.
func (r Role) Known() bool {
	return r > RoleUnknown && r < numRoles
}

func (r Role) index() int {
	if !r.Known() {
		return int(RoleUnknown)
	}
	return int(r)
}

// MarshalText implements encoding.TextMarshaler.
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Role) UnmarshalText(text []byte) error {
	*r = ParseRole(string(text))
	return nil
}
