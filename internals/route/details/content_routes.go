package details

import (
	"github.com/gofiber/fiber/v2"

	dashboardRoutes "skb_backend/internals/features/dashboard/route"
	galleryRoutes "skb_backend/internals/features/gallery/route"
	memberRoutes "skb_backend/internals/features/members/route"
	noticeRoutes "skb_backend/internals/features/notices/route"
	pageRoutes "skb_backend/internals/features/pages/route"
	tournamentRoutes "skb_backend/internals/features/tournaments/route"
)

// PublicRoutes mounts the anonymous surface, e.g. /api/public/notices.
func PublicRoutes(api fiber.Router, h *Handlers) {
	memberRoutes.MemberPublicRoutes(api, h.Members)
	noticeRoutes.NoticePublicRoutes(api, h.Notices)
	galleryRoutes.GalleryPublicRoutes(api, h.Gallery)
	tournamentRoutes.TournamentPublicRoutes(api, h.Tournaments)
	pageRoutes.PagePublicRoutes(api, h.Pages)
}

// AdminRoutes mounts the admin surface, e.g. /api/a/notices/:id/registrations.
func AdminRoutes(api fiber.Router, h *Handlers) {
	memberRoutes.MemberAdminRoutes(api, h.Members)
	noticeRoutes.NoticeAdminRoutes(api, h.Notices)
	galleryRoutes.GalleryAdminRoutes(api, h.Gallery)
	tournamentRoutes.TournamentAdminRoutes(api, h.Tournaments, h.Participants)
	pageRoutes.PageAdminRoutes(api, h.Pages)
	dashboardRoutes.DashboardAdminRoutes(api, h.Dashboard)
}
