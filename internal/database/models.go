package database

import (
	"time"
)

type User struct {
	ID           string `gorm:"primaryKey"`
	Name         string `gorm:"default:'';not null"`
	CommandCount uint32 `gorm:"default:0;not null"`
	IsBanned     bool   `gorm:"default:false;not null"`
	Language     string `gorm:"default:'';not null"`
	StickerTitle string `gorm:"default:'';not null"`
}

type Group struct {
	ID            string `gorm:"column:id;primaryKey"`
	IsAntiLink    bool   `gorm:"default:false;not null"`
	IsAntiWALink  bool   `gorm:"default:false;not null"`
	IsBotDisabled bool   `gorm:"default:false;not null"`
	Language      string `gorm:"default:'';not null"`
	RemoveUser    bool   `gorm:"default:true;not null"`
}

type GroupParticipant struct {
	GroupID       string `gorm:"column:group_id;primaryKey"`
	UserID        string `gorm:"column:user_id;primaryKey"`
	MessageCount  uint64 `gorm:"default:0;not null"`
	CommandCount  uint64 `gorm:"default:0;not null"`
	WarnCount     uint8  `gorm:"default:0;not null"`
	IsBlacklisted bool   `gorm:"default:false;not null"`

	Group Group `gorm:"foreignKey:GroupID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	User  User  `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// CommandLog is one row per dispatched command, written best-effort after
// the dispatcher returns.
type CommandLog struct {
	ID        uint32    `gorm:"primaryKey;autoIncrement"`
	UserID    string    `gorm:"index;not null"`
	GroupID   string    `gorm:"default:'';not null"`
	Command   string    `gorm:"index;not null"`
	Status    string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP"`
}
