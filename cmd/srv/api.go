package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/birdsofspace/spacebirdz-backend/internal/middleware"
	"github.com/birdsofspace/spacebirdz-backend/pkg/router"
	"github.com/birdsofspace/spacebirdz-backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

func (s *srv) startApi(*cli.Context) error {
	s.ctx = context.Background()
	s.loadConfig()
	s.ctx = xcontext.WithConfigs(s.ctx, *s.configs)
	s.loadLogger()
	s.loadDatabase()
	s.loadRedis()
	s.loadPublisher()
	s.loadVaultCaller()
	s.loadRepos()
	s.loadDomains()
	s.loadRouter()

	s.server = &http.Server{
		Addr:    s.configs.ApiServer.Address(),
		Handler: s.router.Handler(),
	}

	eg, ctx := errgroup.WithContext(s.ctx)
	eg.Go(func() error {
		s.logger.Infof("Starting server on %s", s.server.Addr)
		if err := s.server.ListenAndServe(); err != http.ErrServerClosed {
			return err
		}

		return nil
	})

	eg.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case <-ctx.Done():
		case sig := <-quit:
			s.logger.Infof("Received signal %s, shutting down", sig)
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.publisher.Stop(shutdownCtx); err != nil {
			s.logger.Warnf("Cannot stop the publisher: %v", err)
		}
		s.vaultCaller.Close()

		return s.server.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

func (s *srv) loadRouter() {
	s.router = router.New(s.db, *s.configs, s.logger)
	s.router.AddCloser(middleware.Logger())

	// Every API needs authentication with Access Token.
	authRouter := s.router.Branch()
	authVerifier := middleware.NewAuthVerifier(s.configs.Auth.AccessToken)
	authRouter.Before(authVerifier.Middleware())
	{
		// Quest API
		router.GET(authRouter, "/getTotalQuest", s.questDomain.GetTotal)
		router.GET(authRouter, "/getActiveQuests", s.questDomain.GetActive)
		router.GET(authRouter, "/getInactiveQuests", s.questDomain.GetInactive)
		router.POST(authRouter, "/addOrUpdateQuest", s.questDomain.AddOrUpdate)
		router.POST(authRouter, "/setQuestStatus", s.questDomain.SetStatus)

		// Participation API
		router.POST(authRouter, "/participateInQuest", s.participationDomain.Participate)
		router.POST(authRouter, "/completeQuest", s.participationDomain.Complete)

		// Reward API
		router.GET(authRouter, "/getMyRewards", s.rewardDomain.GetMyRewards)
		router.GET(authRouter, "/getBalance", s.rewardDomain.GetBalance)
		router.POST(authRouter, "/requestWithdrawal", s.rewardDomain.RequestWithdrawal)
		router.POST(authRouter, "/approveWithdrawal", s.rewardDomain.ApproveWithdrawal)
		router.POST(authRouter, "/rejectWithdrawal", s.rewardDomain.RejectWithdrawal)

		// Admin API
		router.POST(authRouter, "/updateAdmin", s.ledgerDomain.UpdateAdmin)
	}
}
