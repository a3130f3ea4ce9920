package model

import "time"

// Stats is the admin dashboard summary.
type Stats struct {
	TotalMembers        int64     `json:"total_members"`
	TotalNotices        int64     `json:"total_notices"`
	TotalEvents         int64     `json:"total_events"`
	TotalTournaments    int64     `json:"total_tournaments"`
	TotalGalleryImages  int64     `json:"total_gallery_images"`
	RecentRegistrations int64     `json:"recent_registrations"`
	GeneratedAt         time.Time `json:"generated_at"`
}

// Counts is the raw repository result before tournaments are combined.
type Counts struct {
	Members            int64
	Notices            int64
	Events             int64
	TournamentNotices  int64
	Tournaments        int64
	GalleryImages      int64
	RecentParticipants int64
}
