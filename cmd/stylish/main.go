// Command stylish runs the wallet and game core behind a local HTTP bridge.
//
// @title        Stylish Go API
// @version      1.0
// @description  Local bridge between the game UI and the wallet and game contract.
// @host         localhost:8080
// @BasePath     /
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/LevanIlashvili/stylish-go-app/docs"
	"github.com/LevanIlashvili/stylish-go-app/internal/api"
	"github.com/LevanIlashvili/stylish-go-app/internal/board"
	"github.com/LevanIlashvili/stylish-go-app/internal/chain"
	"github.com/LevanIlashvili/stylish-go-app/internal/config"
	"github.com/LevanIlashvili/stylish-go-app/internal/crypto"
	"github.com/LevanIlashvili/stylish-go-app/internal/game"
	"github.com/LevanIlashvili/stylish-go-app/internal/handler"
	"github.com/LevanIlashvili/stylish-go-app/internal/keystore"
	"github.com/LevanIlashvili/stylish-go-app/internal/leaderboard"
	"github.com/LevanIlashvili/stylish-go-app/internal/move"
	"github.com/LevanIlashvili/stylish-go-app/internal/notify"
	"github.com/LevanIlashvili/stylish-go-app/internal/wallet"

	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.Init(); err != nil {
		return err
	}
	cfg := config.Get()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	if err := config.PromptForPassword("Keystore password: "); err != nil {
		return err
	}
	password, err := config.GetKeystorePasswordBytes()
	if err != nil {
		return err
	}
	files, err := keystore.NewFileStore(config.GetKeystoreDir(), password, crypto.DefaultParams, logger)
	clear(password)
	if err != nil {
		return err
	}
	defer files.Close()

	feed := notify.NewFeed(100)
	notifier := notify.Multi{feed, notify.NewLogger(logger)}

	conn := chain.NewConnection(config.GetChain(), chain.WithNotifier(notifier), chain.WithLogger(logger))
	defer conn.Close()

	syncer := board.NewSyncer(conn, cfg.BoardSize, logger)
	wallets := wallet.NewManager(keystore.New(files, logger), logger,
		wallet.WithListener(conn.OnWalletChanged),
		wallet.WithListener(syncer.OnWalletChanged),
	)
	if err := wallets.Initialize(); err != nil {
		logger.Warn("starting without a wallet", "error", err)
	}

	orch := move.NewOrchestrator(conn, syncer,
		move.WithNotifier(notifier),
		move.WithLogger(logger),
		move.WithConfirmTimeout(cfg.ConfirmTimeout),
	)
	session := game.NewSession(conn, orch, notifier, logger)

	var source leaderboard.Source = leaderboard.NewChainSource(conn, cfg.LeaderboardSize, cfg.CurrencySymbol)
	if cfg.APIURL != "" {
		source = leaderboard.NewHTTPSource(cfg.APIURL)
	}
	source = leaderboard.NewFallback(source, cfg.CurrencySymbol, logger)

	router := api.SetupRouter(api.Handlers{
		Wallet: handler.NewWalletHandler(wallets, source),
		Game:   handler.NewGameHandler(session, syncer, orch),
		Info:   handler.NewInfoHandler(source, feed),
	}, logger)

	srv := &http.Server{
		Addr:              "127.0.0.1:" + config.GetPort(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server listening", "addr", srv.Addr, "network", cfg.Name, "chainId", cfg.ChainID)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
