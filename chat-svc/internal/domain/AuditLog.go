package domain

import "time"

const (
	AuditEntityMatch      = "match"
	AuditEntityMember     = "member_profile"
	AuditEntityWhitelist  = "whitelist"
	AuditEntityInviteCode = "invite_code"
)

const (
	AuditActionMatchConfirm    = "match.confirm"
	AuditActionMatchReject     = "match.reject"
	AuditActionMatchComplete   = "match.complete"
	AuditActionMemberCreate    = "member.create"
	AuditActionMemberApprove   = "member.approve"
	AuditActionMemberReject    = "member.reject"
	AuditActionWhitelistAdd    = "whitelist.add"
	AuditActionWhitelistRemove = "whitelist.remove"
	AuditActionInviteCreate    = "invite.create"
	AuditActionInviteDisable   = "invite.disable"
)

type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ActorID   uint      `gorm:"not null;index" json:"actor_id"` // admin
	Action    string    `gorm:"type:varchar(100);not null" json:"action"`
	Entity    string    `gorm:"type:varchar(100);not null" json:"entity"`
	EntityID  uint      `gorm:"not null;index" json:"entity_id"`
	Note      *string   `gorm:"type:text" json:"note,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
