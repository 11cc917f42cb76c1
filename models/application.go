package models

import "time"

// SocialMetrics holds the follower counts a prospective talent reports on
// application.
type SocialMetrics struct {
	Instagram int `bson:"instagram,omitempty" json:"instagram,omitempty"`
	TikTok    int `bson:"tiktok,omitempty" json:"tiktok,omitempty"`
	Twitter   int `bson:"twitter,omitempty" json:"twitter,omitempty"`
	YouTube   int `bson:"youtube,omitempty" json:"youtube,omitempty"`
}

// TalentApplication governs whether a user may act as talent. Created on
// submission, mutated only by admin review or owner resubmission after a
// rejection.
type TalentApplication struct {
	ID            string            `bson:"id" json:"id"`
	UserID        string            `bson:"user_id" json:"user_id"`
	StageName     string            `bson:"stage_name" json:"stage_name"`
	Category      string            `bson:"category" json:"category"`
	ProposedPrice Money             `bson:"proposed_price" json:"proposed_price"`
	Currency      Currency          `bson:"currency" json:"currency"`
	Social        SocialMetrics     `bson:"social" json:"social"`
	Status        ApplicationStatus `bson:"status" json:"status"`
	AdminNotes    string            `bson:"admin_notes,omitempty" json:"admin_notes,omitempty"`
	CreatedAt     time.Time         `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time         `bson:"updated_at" json:"updated_at"`
	ReviewedAt    *time.Time        `bson:"reviewed_at,omitempty" json:"reviewed_at,omitempty"`
}

// ApplicationInput is the submission body for a talent application.
type ApplicationInput struct {
	StageName     string        `json:"stage_name" binding:"required"`
	Category      string        `json:"category" binding:"required"`
	ProposedPrice string        `json:"proposed_price" binding:"required"`
	Currency      Currency      `json:"currency" binding:"required"`
	Social        SocialMetrics `json:"social"`
}

// ApplicationReviewInput is the admin body for a status transition.
type ApplicationReviewInput struct {
	Status     ApplicationStatus `json:"status" binding:"required"`
	AdminNotes string            `json:"admin_notes"`
}
