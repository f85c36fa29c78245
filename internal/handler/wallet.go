package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/LevanIlashvili/stylish-go-app/evm"
	"github.com/LevanIlashvili/stylish-go-app/internal/leaderboard"
	"github.com/LevanIlashvili/stylish-go-app/internal/model"
	"github.com/LevanIlashvili/stylish-go-app/internal/wallet"
)

// Wallets is the wallet lifecycle as seen by the bridge; *wallet.Manager implements it.
type Wallets interface {
	State() model.SessionState
	Create() (model.Wallet, error)
	Import(mnemonic string) (model.Wallet, error)
	Reset() error
}

// WalletHandler serves the wallet screens.
type WalletHandler struct {
	wallets  Wallets
	balances leaderboard.Source
}

// NewWalletHandler creates a new WalletHandler
func NewWalletHandler(wallets Wallets, balances leaderboard.Source) *WalletHandler {
	return &WalletHandler{wallets: wallets, balances: balances}
}

func walletResponse(state model.SessionState) model.WalletResponse {
	resp := model.WalletResponse{Loaded: state.WalletLoaded}
	if state.Wallet != nil {
		resp.Address = state.Wallet.Address
		resp.Short = evm.FormatAddress(state.Wallet.Address)
	}
	return resp
}

func (h *WalletHandler) active() (*model.Wallet, error) {
	state := h.wallets.State()
	if state.Wallet == nil {
		return nil, wallet.ErrNoWallet
	}
	return state.Wallet, nil
}

// State handles GET /wallet
// @Summary      Wallet session state
// @Description  Reports whether the wallet has been loaded and its address. Never returns key material.
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.WalletResponse
// @Router       /wallet [get]
func (h *WalletHandler) State(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, walletResponse(h.wallets.State()))
}

// Create handles POST /wallet/create
// @Summary      Create wallet
// @Description  Generates a new recovery phrase, stores the wallet encrypted and activates it
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.WalletResponse
// @Failure      409  {object}  model.ErrorResponse
// @Failure      500  {object}  model.ErrorResponse
// @Router       /wallet/create [post]
func (h *WalletHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	if _, err := h.wallets.Create(); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, walletResponse(h.wallets.State()))
}

// Import handles POST /wallet/import
// @Summary      Import wallet
// @Description  Restores a wallet from a 12-word recovery phrase
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.ImportRequest  true  "Recovery phrase"
// @Success      200      {object}  model.WalletResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      409      {object}  model.ErrorResponse
// @Router       /wallet/import [post]
func (h *WalletHandler) Import(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}

	var req model.ImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if _, err := h.wallets.Import(req.Mnemonic); err != nil {
		if errors.Is(err, evm.ErrInvalidMnemonic) {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, walletResponse(h.wallets.State()))
}

// Reset handles POST /wallet/reset
// @Summary      Reset wallet
// @Description  Deletes the stored wallet and clears it from memory
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.WalletResponse
// @Failure      500  {object}  model.ErrorResponse
// @Router       /wallet/reset [post]
func (h *WalletHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	if err := h.wallets.Reset(); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, walletResponse(h.wallets.State()))
}

// Backup handles GET /wallet/backup
// @Summary      Recovery phrase
// @Description  Returns the recovery phrase of the active wallet for backup
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.BackupResponse
// @Failure      412  {object}  model.ErrorResponse
// @Router       /wallet/backup [get]
func (h *WalletHandler) Backup(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}
	active, err := h.active()
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, model.BackupResponse{Address: active.Address, Mnemonic: active.Mnemonic})
}

// QR handles GET /wallet/qr
// @Summary      Address QR code
// @Description  PNG QR code of the wallet address for receiving funds
// @Tags         wallet
// @Produce      png
// @Success      200
// @Failure      412  {object}  model.ErrorResponse
// @Router       /wallet/qr [get]
func (h *WalletHandler) QR(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}
	active, err := h.active()
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	png, err := evm.AddressQR(active.Address)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// Balance handles GET /wallet/balance
// @Summary      Wallet balance
// @Description  Native balance of the active wallet. Zero when the network cannot be reached.
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.BalanceResponse
// @Failure      412  {object}  model.ErrorResponse
// @Router       /wallet/balance [get]
func (h *WalletHandler) Balance(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}
	active, err := h.active()
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	balance, err := h.balances.GetBalance(r.Context(), active.Address)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, balance)
}
