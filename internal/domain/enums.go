// Package domain holds enums shared across repositories and services.
// Values mirror the corresponding Postgres CHECK constraints.
package domain

// VerificationStatus is the review state of a worker's certified language skill.
type VerificationStatus string

const (
	VerificationVerified VerificationStatus = "verified"
	VerificationPending  VerificationStatus = "pending"
	VerificationRejected VerificationStatus = "rejected"
)

// ApplicationStatus is the lifecycle state of a job application.
type ApplicationStatus string

const (
	ApplicationPending   ApplicationStatus = "pending"
	ApplicationApproved  ApplicationStatus = "approved"
	ApplicationCheckedIn ApplicationStatus = "checked_in"
	ApplicationCompleted ApplicationStatus = "completed"
	ApplicationCancelled ApplicationStatus = "cancelled"
)

// CancelledBy records which side initiated a cancellation.
type CancelledBy string

const (
	CancelledByWorker CancelledBy = "worker"
	CancelledByOwner  CancelledBy = "owner"
)

// Role is the authenticated caller type carried in JWT claims.
type Role string

const (
	RoleWorker Role = "worker"
	RoleOwner  Role = "owner"
)
