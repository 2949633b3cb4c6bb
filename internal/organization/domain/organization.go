// Package domain defines the organization entity. An organization owns one reporting channel
// addressed by its slug and one encryption key that protects all of its reports.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// SubscriptionStatus is the billing state of an organization.
type SubscriptionStatus string

const (
	StatusTrial     SubscriptionStatus = "trial"
	StatusActive    SubscriptionStatus = "active"
	StatusInactive  SubscriptionStatus = "inactive"
	StatusCancelled SubscriptionStatus = "cancelled"
)

// IsValid reports whether s is a known status.
func (s SubscriptionStatus) IsValid() bool {
	switch s {
	case StatusTrial, StatusActive, StatusInactive, StatusCancelled:
		return true
	}
	return false
}

// SubscriptionPlan is the product tier of an organization.
type SubscriptionPlan string

const (
	PlanStarter      SubscriptionPlan = "starter"
	PlanProfessional SubscriptionPlan = "professional"
	PlanEnterprise   SubscriptionPlan = "enterprise"
)

// IsValid reports whether p is a known plan.
func (p SubscriptionPlan) IsValid() bool {
	switch p {
	case PlanStarter, PlanProfessional, PlanEnterprise:
		return true
	}
	return false
}

// Organization is a customer of the platform.
type Organization struct {
	ID                 uuid.UUID
	Name               string
	Slug               string
	ContactEmail       string
	SubscriptionStatus SubscriptionStatus
	SubscriptionPlan   SubscriptionPlan
	// EncryptionKeyHash is hex(sha256(hex(oek))).
	EncryptionKeyHash string
	// EncryptionKeyEnc is the organization key wrapped under the master key.
	EncryptionKeyEnc string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// AcceptsReports reports whether the public channel of the organization is open.
func (o *Organization) AcceptsReports() bool {
	return o.SubscriptionStatus == StatusTrial || o.SubscriptionStatus == StatusActive
}

// Summary is an organization as listed on the admin dashboard. It never carries key material.
type Summary struct {
	ID                 uuid.UUID
	Name               string
	Slug               string
	ContactEmail       string
	SubscriptionStatus SubscriptionStatus
	SubscriptionPlan   SubscriptionPlan
	ReportCount        int
	CreatedAt          time.Time
}
