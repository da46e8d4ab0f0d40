package model

const (
	MemberStatusActive   = "active"
	MemberStatusDisabled = "disabled"
)

type MemberItem struct {
	MemberID     string `dynamodbav:"memberId"`
	Email        string `dynamodbav:"email"`
	Name         string `dynamodbav:"name"`
	Role         string `dynamodbav:"role"`
	Status       string `dynamodbav:"status"`
	PasswordHash string `dynamodbav:"passwordHash"`
	CreatedAt    string `dynamodbav:"createdAt"`
}

// IsAdminRole tolerates the role spellings that exist in member records
// today. Normalizing the stored values is a data migration, not a read-path
// concern.
func IsAdminRole(role string) bool {
	switch role {
	case "Administrator", "Admin", "admin":
		return true
	}
	return false
}

func IsTechDirectorRole(role string) bool {
	return role == "Technical Director"
}
