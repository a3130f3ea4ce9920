package details

import (
	"gorm.io/gorm"

	"skb_backend/internals/cache"
	"skb_backend/internals/configs"
	dashboardController "skb_backend/internals/features/dashboard/controller"
	dashboardRepository "skb_backend/internals/features/dashboard/repository"
	dashboardService "skb_backend/internals/features/dashboard/service"
	galleryController "skb_backend/internals/features/gallery/controller"
	galleryRepository "skb_backend/internals/features/gallery/repository"
	galleryService "skb_backend/internals/features/gallery/service"
	memberController "skb_backend/internals/features/members/controller"
	memberRepository "skb_backend/internals/features/members/repository"
	memberService "skb_backend/internals/features/members/service"
	noticeController "skb_backend/internals/features/notices/controller"
	noticeRepository "skb_backend/internals/features/notices/repository"
	noticeService "skb_backend/internals/features/notices/service"
	pageController "skb_backend/internals/features/pages/controller"
	pageRepository "skb_backend/internals/features/pages/repository"
	pageService "skb_backend/internals/features/pages/service"
	paymentController "skb_backend/internals/features/payments/controller"
	paymentService "skb_backend/internals/features/payments/service"
	tournamentController "skb_backend/internals/features/tournaments/controller"
	tournamentRepository "skb_backend/internals/features/tournaments/repository"
	tournamentService "skb_backend/internals/features/tournaments/service"
	authController "skb_backend/internals/features/users/auth/controller"
	authRepository "skb_backend/internals/features/users/auth/repository"
	authService "skb_backend/internals/features/users/auth/service"
	"skb_backend/internals/helpers/media"
	"skb_backend/internals/metrics"
)

// Deps are the shared resources every feature is built from.
type Deps struct {
	DB      *gorm.DB
	Config  configs.Config
	Cache   cache.Cache
	Store   media.Storage
	Metrics metrics.Recorder
}

type Handlers struct {
	AuthService  *authService.Service
	Blacklist    authRepository.BlacklistRepository
	Auth         *authController.AuthController
	Members      *memberController.MemberController
	Tournaments  *tournamentController.TournamentController
	Participants *tournamentController.ParticipantController
	Notices      *noticeController.NoticeController
	Gallery      *galleryController.GalleryController
	Pages        *pageController.PageController
	Dashboard    *dashboardController.DashboardController
	Payments     *paymentController.WebhookController
}

func NewHandlers(d Deps) *Handlers {
	if d.Metrics == nil {
		d.Metrics = metrics.Nop{}
	}
	if d.Cache == nil {
		d.Cache = cache.Noop{}
	}
	images := media.DefaultWebPOptions(d.Config.Upload.MaxWidth, d.Config.Upload.Quality)

	blacklist := authRepository.NewBlacklistRepository(d.DB)
	authSvc := authService.New(authRepository.NewAdminRepository(d.DB), blacklist, d.Config.JWT)

	gateway := paymentService.NewGateway(d.Config.Midtrans)
	tournamentSvc := tournamentService.New(tournamentRepository.New(d.DB), gateway, d.Metrics)

	return &Handlers{
		AuthService:  authSvc,
		Blacklist:    blacklist,
		Auth:         authController.NewAuthController(authSvc),
		Members:      memberController.NewMemberController(memberService.New(memberRepository.New(d.DB))),
		Tournaments:  tournamentController.NewTournamentController(tournamentSvc),
		Participants: tournamentController.NewParticipantController(tournamentSvc),
		Notices:      noticeController.NewNoticeController(noticeService.New(noticeRepository.New(d.DB), d.Store, d.Metrics)),
		Gallery:      galleryController.NewGalleryController(galleryService.New(galleryRepository.New(d.DB), d.Store, images)),
		Pages:        pageController.NewPageController(pageService.New(pageRepository.New(d.DB), d.Cache, d.Store, images)),
		Dashboard:    dashboardController.NewDashboardController(dashboardService.New(dashboardRepository.New(d.DB), d.Cache)),
		Payments:     paymentController.NewWebhookController(paymentService.NewWebhookService(d.Config.Midtrans.ServerKey, tournamentSvc)),
	}
}
