package account

import "strings"

// Level is the categorical field that assigns an account to a level table.
type Level string

// Known account levels.
const (
	Level1 Level = "Level 1"
	Level2 Level = "Level 2"
)

// Field names understood by Account.Field.
const (
	FieldID                 = "Id"
	FieldName               = "Name"
	FieldPhone              = "Phone"
	FieldOwnerID            = "OwnerId"
	FieldLevel              = "Level__c"
	FieldLastModifiedByName = "LastModifiedBy.Name"
)

// Levels returns the known levels in display order.
func Levels() []Level {
	return []Level{Level1, Level2}
}

// IsKnown reports whether l is one of the known levels.
func (l Level) IsKnown() bool {
	for _, known := range Levels() {
		if l == known {
			return true
		}
	}
	return false
}

// User is the nested reference exposed by LastModifiedBy.
type User struct {
	Name string `json:"Name" yaml:"Name"`
}

// Account is a single account record.
// Optional fields are empty strings; LastModifiedBy may be nil.
type Account struct {
	ID             string `json:"Id"                       yaml:"Id"`
	Name           string `json:"Name,omitempty"           yaml:"Name,omitempty"`
	Phone          string `json:"Phone,omitempty"          yaml:"Phone,omitempty"`
	OwnerID        string `json:"OwnerId,omitempty"        yaml:"OwnerId,omitempty"`
	Level          Level  `json:"Level__c,omitempty"       yaml:"Level__c,omitempty"`
	LastModifiedBy *User  `json:"LastModifiedBy,omitempty" yaml:"LastModifiedBy,omitempty"`
}

// Field resolves a column field name to its string value.
// Dotted paths walk into nested references. The second return value is false
// when the field is unknown or a nested reference is nil.
func (a Account) Field(name string) (string, bool) {
	head, rest, nested := strings.Cut(name, ".")
	if nested {
		if head != "LastModifiedBy" || rest != "Name" || a.LastModifiedBy == nil {
			return "", false
		}
		return a.LastModifiedBy.Name, true
	}

	switch name {
	case FieldID:
		return a.ID, true
	case FieldName:
		return a.Name, true
	case FieldPhone:
		return a.Phone, true
	case FieldOwnerID:
		return a.OwnerID, true
	case FieldLevel:
		return string(a.Level), true
	default:
		return "", false
	}
}

// LastModifiedByName returns the name of the last modifier, or "" when unset.
func (a Account) LastModifiedByName() string {
	if a.LastModifiedBy == nil {
		return ""
	}
	return a.LastModifiedBy.Name
}

// Clone returns a deep copy so callers never share the nested reference.
func (a Account) Clone() Account {
	if a.LastModifiedBy != nil {
		u := *a.LastModifiedBy
		a.LastModifiedBy = &u
	}
	return a
}

// CloneAll deep-copies a slice of accounts.
func CloneAll(accounts []Account) []Account {
	out := make([]Account, len(accounts))
	for i, a := range accounts {
		out[i] = a.Clone()
	}
	return out
}
