package model // import "github.com/bookverse/bookverse/model"

// Audit actions. The audits table is append-only: the store exposes no
// update or delete path for it.
const (
	AuditActionPromote = "promote"
	AuditActionDemote  = "demote"
)

type Audit struct {
	ID          int32  `json:"id"`
	Action      string `json:"action"`
	ActorID     int32  `json:"actor_id"`
	TargetID    int32  `json:"target_id"`
	TargetEmail string `json:"target_email"`
	CreatedTs   int64  `json:"created_ts"`
}

type FindAudit struct {
	ActorID  *int32 `json:"actor_id"`
	TargetID *int32 `json:"target_id"`
	Action   *string `json:"action"`

	Limit *int `json:"limit"`
}
