package services

// Operator-facing audit trail and notice text.
const (
	MsgCreatedTable   = "Created table: %s"
	MsgRenamedTable   = "Renamed table: %s to %s"
	MsgNoActions      = "No actions performed."
	MsgObsoleteSchema = "The Repair Action Scheduler could not run because the repair database schema is obsolete."
	MsgRepairFailed   = "Repair failed: %v"

	MsgNoticeHeadline    = "The Repair Action Scheduler process is complete. The following actions have been performed:"
	MsgNoticeDeactivated = "The Repair Action Scheduler has been automatically deactivated."
)
