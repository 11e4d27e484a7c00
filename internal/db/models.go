package db

import (
	"time"
)

// User table. Identity fields come from the upstream identity provider;
// this core only reads the id.
type User struct {
	ID           uint64 `gorm:"primaryKey;autoIncrement"`
	Username     string `gorm:"uniqueIndex;size:64;not null"`
	Email        string `gorm:"uniqueIndex;size:128;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Active       bool   `gorm:"default:true"`
	LastLoginAt  time.Time
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

// Profile holds the attributes the discovery feed shows. One row per user.
//
// Invariant: Visible can never be true while Complete is false. The only
// write path (ProfileRepository.Save) recomputes Complete and forces
// Visible off when completeness is lost.
//
// UpdatedAt orders the candidate feed (most recently updated first).
type Profile struct {
	UserID      uint64    `gorm:"primaryKey"`
	DisplayName string    `gorm:"size:64"`
	Expertise   string    `gorm:"size:255"`
	Skills      string    `gorm:"type:text"`
	PhotoURL    string    `gorm:"size:255"`
	Complete    bool      `gorm:"not null;default:false"`
	Visible     bool      `gorm:"not null;default:false;index:idx_visible_updated,priority:1"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime;index:idx_visible_updated,priority:2,sort:desc"`
}

// Swipe represents an actor's like/pass decision on a target.
//
// Composite PK: (ActorID, TargetID)
//   - Ensures a single row per ordered pair (last-write-wins on overwrite).
//
// Indexes:
//   - idx_target_liked_updated_actor(target_id, liked, updated_at DESC, actor_id)
//     Optimizes "who liked me" lists with pagination.
//   - idx_actor_target_liked(actor_id, target_id, liked)
//     Optimizes O(1) lookup for mutual like checks and feed exclusion.
//
// Rows are never deleted by normal flow; unmatching leaves them in place.
type Swipe struct {
	ActorID   uint64    `gorm:"primaryKey;index:idx_actor_target_liked,priority:1"`
	TargetID  uint64    `gorm:"primaryKey;index:idx_target_liked_updated_actor,priority:1;index:idx_actor_target_liked,priority:2"`
	Liked     bool      `gorm:"not null;type:tinyint(1);index:idx_target_liked_updated_actor,priority:2;index:idx_actor_target_liked,priority:3"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;index:idx_target_liked_updated_actor,priority:3,sort:desc"`
}

// Match is an undirected edge over a canonically ordered pair.
//
// Composite PK: (LowID, HighID) with LowID < HighID — the uniqueness
// constraint on the canonical pair is the sole mechanism preventing
// duplicate matches under concurrent mutual likes. Existence of the row
// is the entire match state; there is no status column.
type Match struct {
	LowID     uint64    `gorm:"primaryKey"`
	HighID    uint64    `gorm:"primaryKey;index:idx_match_high"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// Contact is a user's private channel value plus the owner's share opt-in.
// Absence of a row means sharing is enabled by default; an explicit
// Share=false row is an opt-out.
type Contact struct {
	UserID    uint64    `gorm:"primaryKey"`
	Phone     string    `gorm:"size:32"`
	Share     bool      `gorm:"not null;default:true"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// Report statuses. New reports always start open.
const (
	ReportStatusOpen     = "open"
	ReportStatusResolved = "resolved"
)

// Report records a moderation report. Creating one also severs any match
// between the parties (best-effort, handled in the moderation service).
type Report struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement"`
	ReporterID uint64    `gorm:"not null;index"`
	ReportedID uint64    `gorm:"not null;index"`
	Reason     string    `gorm:"size:64;not null"`
	Details    string    `gorm:"type:text"`
	Status     string    `gorm:"size:16;not null;default:'open'"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}
