package main

import (
	"log"
	"net/http"

	"github.com/veleo-lab/backend/internal/middleware"
	"github.com/veleo-lab/backend/pkg/router"

	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(ct *cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()
	s.loadRedis()
	s.loadStorage()
	s.loadEndpoint()
	s.loadRepos()
	s.loadDomains()
	s.loadRouter()

	s.server = &http.Server{
		Addr:    s.configs.ApiServer.Address(),
		Handler: s.router.Handler(),
	}

	log.Printf("Starting server on port: %s\n", s.configs.ApiServer.Port)
	if err := s.server.ListenAndServe(); err != nil {
		panic(err)
	}
	log.Printf("server stop")
	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.ctx)
	s.router.AddCloser(middleware.Logger())
	s.router.Before(middleware.NewAuthVerifier().Middleware())

	// Public API
	publicRouter := s.router.Branch()
	{
		router.POST(publicRouter, "/signup", s.authDomain.Register)
		router.POST(publicRouter, "/login", s.authDomain.Login)
		router.POST(publicRouter, "/oauth2/verify", s.authDomain.OAuth2Verify)

		router.GET(publicRouter, "/getEvent", s.eventDomain.GetEvent)
		router.GET(publicRouter, "/getLeaderboard", s.statisticDomain.GetLeaderboard)
		router.GET(publicRouter, "/getAleoPrice", s.priceDomain.GetAleoPrice)
		router.GET(publicRouter, "/validateClaimCode", s.claimCodeDomain.ValidateClaimCode)
	}

	// These following APIs need authentication with an Access Token.
	authRouter := s.router.Branch()
	authRouter.Before(middleware.Authenticate())
	{
		// User API
		router.GET(authRouter, "/getUser", s.userDomain.GetUser)
		router.POST(authRouter, "/connectWallet", s.authDomain.ConnectWallet)

		// Event API
		router.POST(authRouter, "/createEvent", s.eventDomain.CreateEvent)
		router.POST(authRouter, "/updateEvent", s.eventDomain.UpdateEvent)
		router.POST(authRouter, "/deleteEvent", s.eventDomain.DeleteEvent)
		router.POST(authRouter, "/setEventActive", s.eventDomain.SetEventActive)
		router.GET(authRouter, "/getMyEvents", s.eventDomain.GetMyEvents)
		router.POST(authRouter, "/uploadEventImage", s.fileDomain.UploadEventImage)

		// Claim code API
		router.POST(authRouter, "/generateClaimCodes", s.claimCodeDomain.GenerateClaimCodes)
		router.GET(authRouter, "/getClaimCodes", s.claimCodeDomain.GetClaimCodes)
		router.GET(authRouter, "/getClaimCodeQR", s.claimCodeDomain.GetClaimCodeQR)
		router.POST(authRouter, "/claim", s.claimCodeDomain.Claim)

		// Badge API
		router.GET(authRouter, "/getMyBadges", s.badgeDomain.GetMyBadges)
		router.GET(authRouter, "/getEventBadges", s.badgeDomain.GetEventBadges)
	}
}
