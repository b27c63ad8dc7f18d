package model

import (
	"encoding/binary"
	"encoding/hex"
	"regexp"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IDLength is the length of a user id in characters.
const IDLength = 24

var idPattern = regexp.MustCompile(`^[0-9a-f]{24}$`)

// User represents an account in the system.
type User struct {
	ID           string    `json:"id" gorm:"type:char(24);primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:15;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"column:password;size:255;not null"` // Never expose in JSON
	Status       bool      `json:"status" gorm:"not null;index"`
	CreatedAt    time.Time `json:"createdAt" gorm:"autoCreateTime;<-:create"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// TableName pins the table name.
func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns an id when none is set.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = NewID()
	}
	return nil
}

// NewID returns a 24 character hex id: 4 bytes of big-endian unix seconds
// followed by 8 random bytes, so ids sort roughly by creation time.
func NewID() string {
	var raw [12]byte
	binary.BigEndian.PutUint32(raw[:4], uint32(time.Now().Unix()))
	r := uuid.New()
	copy(raw[4:], r[:8])
	return hex.EncodeToString(raw[:])
}

// ValidID reports whether id has the store id format.
func ValidID(id string) bool {
	return idPattern.MatchString(id)
}

// UserPatch carries the subset of fields an update touches. Nil means unchanged.
type UserPatch struct {
	Username *string
	Email    *string
	Password *string
	Status   *bool
}

// Empty reports whether the patch changes nothing.
func (p UserPatch) Empty() bool {
	return p.Username == nil && p.Email == nil && p.Password == nil && p.Status == nil
}
