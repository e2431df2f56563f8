package wallet

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/trunorth/platform/internal/auth"
)

// Handler exposes wallet HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a wallet HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type depositRequest struct {
	Amount        int64  `json:"amount"`
	PaymentMethod string `json:"paymentMethod"`
	Description   string `json:"description"`
}

type withdrawRequest struct {
	Amount        int64  `json:"amount"`
	BankAccount   string `json:"bankAccount"`
	AccountName   string `json:"accountName"`
	AccountNumber string `json:"accountNumber"`
}

type transferRequest struct {
	RecipientID string `json:"recipientId"`
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
}

type payRequest struct {
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
	ServiceType string `json:"serviceType"`
	ServiceID   string `json:"serviceId"`
}

type freezeRequest struct {
	Frozen bool `json:"frozen"`
}

func callerID(c *fiber.Ctx) (string, error) {
	uid, _ := c.Locals(auth.LocalUserID).(string)
	if uid == "" {
		return "", fiber.NewError(http.StatusUnauthorized, "authentication required")
	}
	return uid, nil
}

func mapLedgerError(err error) error {
	switch {
	case errors.Is(err, ErrWalletNotFound):
		return fiber.NewError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrWalletFrozen):
		return fiber.NewError(http.StatusForbidden, err.Error())
	case errors.Is(err, ErrInsufficientBalance), errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrSelfTransfer):
		return fiber.NewError(http.StatusBadRequest, err.Error())
	default:
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
}

// Get returns the caller's wallet, creating it lazily on first access.
func (h *Handler) Get(c *fiber.Ctx) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	w, err := h.service.GetOrCreate(c.UserContext(), uid)
	if err != nil {
		return mapLedgerError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"wallet": w})
}

// Transactions returns the caller's transaction history, newest first.
func (h *Handler) Transactions(c *fiber.Ctx) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	txs, err := h.service.Transactions(c.UserContext(), uid)
	if err != nil {
		return mapLedgerError(err)
	}
	if txs == nil {
		txs = []Transaction{}
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"transactions": txs})
}

// Deposit credits the caller's wallet.
func (h *Handler) Deposit(c *fiber.Ctx) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	var req depositRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	tx, w, err := h.service.Deposit(c.UserContext(), uid, DepositInput{
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		Description:   req.Description,
	})
	if err != nil {
		return mapLedgerError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message":     "Deposit successful",
		"transaction": tx,
		"newBalance":  w.Balance,
	})
}

// Withdraw debits the caller's wallet toward a bank account.
func (h *Handler) Withdraw(c *fiber.Ctx) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	var req withdrawRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	tx, w, err := h.service.Withdraw(c.UserContext(), uid, req.Amount, BankDetails{
		BankAccount:   req.BankAccount,
		AccountName:   req.AccountName,
		AccountNumber: req.AccountNumber,
	})
	if err != nil {
		return mapLedgerError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message":     "Withdrawal initiated",
		"transaction": tx,
		"newBalance":  w.Balance,
	})
}

// Transfer moves funds from the caller to another user.
func (h *Handler) Transfer(c *fiber.Ctx) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	var req transferRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	tx, w, err := h.service.Transfer(c.UserContext(), uid, TransferInput{
		RecipientID: req.RecipientID,
		Amount:      req.Amount,
		Description: req.Description,
	})
	if err != nil {
		return mapLedgerError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message":     "Transfer successful",
		"transaction": tx,
		"newBalance":  w.Balance,
	})
}

// Pay debits the caller's wallet for an in-app service.
func (h *Handler) Pay(c *fiber.Ctx) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	var req payRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	tx, w, err := h.service.Pay(c.UserContext(), uid, PayInput{
		Amount:      req.Amount,
		Description: req.Description,
		ServiceType: req.ServiceType,
		ServiceID:   req.ServiceID,
	})
	if err != nil {
		return mapLedgerError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message":     "Payment successful",
		"transaction": tx,
		"newBalance":  w.Balance,
	})
}

// SetFrozen toggles the frozen flag on a user's wallet. Admin only; the
// target user id comes from the path.
func (h *Handler) SetFrozen(c *fiber.Ctx) error {
	userID := c.Params("userId")
	var req freezeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	w, err := h.service.SetFrozen(c.UserContext(), userID, req.Frozen)
	if err != nil {
		return mapLedgerError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"wallet": w})
}
