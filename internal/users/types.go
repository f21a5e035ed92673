package users

// UserType is the closed set of roles a platform account can have.
type UserType string

const (
	TypeClient       UserType = "client"
	TypeCultor       UserType = "cultor"
	TypeManager      UserType = "manager"
	TypeTransport    UserType = "transport"
	TypeEventCreator UserType = "event_creator"
)

func (t UserType) IsValid() bool {
	switch t {
	case TypeClient, TypeCultor, TypeManager, TypeTransport, TypeEventCreator:
		return true
	}
	return false
}

func (t UserType) String() string {
	return string(t)
}

// In returns true when t is contained in the given set. An empty set
// means "any type is eligible".
func (t UserType) In(set []UserType) bool {
	if len(set) == 0 {
		return true
	}
	for _, candidate := range set {
		if t == candidate {
			return true
		}
	}
	return false
}

func IsValidUserType(value string) bool {
	return UserType(value).IsValid()
}
