package chat

import "time"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ParseRole accepts exactly the literal role names; no trimming or case folding.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleUser, RoleAssistant:
		return Role(s), true
	default:
		return "", false
	}
}

// TimestampLayout renders created_at as ISO-8601 UTC with microseconds.
const TimestampLayout = "2006-01-02T15:04:05.000000Z07:00"

type Session struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"session_id"`
	User      string    `gorm:"column:session_user;type:varchar(255);index;not null" json:"session_user"`
	CreatedAt time.Time `json:"created_at"`
}

func (Session) TableName() string { return "chat_sessions" }

type Message struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"-"`
	SessionID int64     `gorm:"not null;index:idx_chat_msg_session_id" json:"-"`
	Role      string    `gorm:"type:varchar(16);not null" json:"role"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"-"`
}

func (Message) TableName() string { return "chat_messages" }
