package user

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes user account endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a user HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type registerRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	CountryCode string `json:"country_code"`
	PhoneNumber string `json:"phone_number"`
	Role        string `json:"role"`
}

type changeEmailRequest struct {
	NewEmail string `json:"new_email"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type changePhoneRequest struct {
	CountryCode    string `json:"country_code"`
	NewPhoneNumber string `json:"new_phone_number"`
}

type changeNameRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Register handles account creation.
func (h *Handler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	code, err := ParseCountryCode(req.CountryCode)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	role, err := ParseRole(req.Role)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	created, err := h.service.Register(c.UserContext(), RegistrationInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Password:    req.Password,
		CountryCode: code,
		PhoneNumber: req.PhoneNumber,
		Role:        role,
	})
	if err != nil {
		return respondError(c, err)
	}

	c.Set(fiber.HeaderLocation, fmt.Sprintf("%s/%d", c.Path(), created.ID))
	return c.Status(http.StatusCreated).JSON(created)
}

// List returns a page of users ordered by first name.
func (h *Handler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 0)
	size := c.QueryInt("size", 10)
	if page < 0 || size <= 0 {
		return fiber.NewError(http.StatusBadRequest, "page must be >= 0 and size > 0")
	}

	users, err := h.service.List(c.UserContext(), page, size)
	if err != nil {
		return respondError(c, err)
	}
	if users == nil {
		users = []Public{}
	}
	return c.Status(http.StatusOK).JSON(users)
}

// Get returns the public projection of one user.
func (h *Handler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	u, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(u)
}

// GetEmailInfo returns the email address and its verification status.
func (h *Handler) GetEmailInfo(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	info, err := h.service.EmailInfo(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(info)
}

// ChangeEmail updates the email address.
func (h *Handler) ChangeEmail(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req changeEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := h.service.ChangeEmail(c.UserContext(), id, req.NewEmail); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// ChangePassword rotates the password after verifying the current one.
func (h *Handler) ChangePassword(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req changePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := h.service.ChangePassword(c.UserContext(), id, req.CurrentPassword, req.NewPassword); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// ChangePhone updates the phone number and country code.
func (h *Handler) ChangePhone(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req changePhoneRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	code, err := ParseCountryCode(req.CountryCode)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := h.service.ChangePhone(c.UserContext(), id, code, req.NewPhoneNumber); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// ChangeName applies a partial name update.
func (h *Handler) ChangeName(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req changeNameRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := h.service.ChangeName(c.UserContext(), id, req.FirstName, req.LastName); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// Delete removes an account.
func (h *Handler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

func parseID(c *fiber.Ctx) (int, error) {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return 0, fiber.NewError(http.StatusBadRequest, fmt.Sprintf("invalid user id: %s", c.Params("id")))
	}
	return id, nil
}

// respondError maps domain errors onto HTTP responses. Validation failures
// carry the full per-field map; everything unexpected stays opaque.
func respondError(c *fiber.Ctx, err error) error {
	var validationErrs ValidationErrors
	if errors.As(err, &validationErrs) {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"errors": validationErrs})
	}

	var notFound NotFoundError
	if errors.As(err, &notFound) {
		return fiber.NewError(http.StatusNotFound, notFound.Error())
	}

	var emailTaken EmailTakenError
	if errors.As(err, &emailTaken) {
		return fiber.NewError(http.StatusConflict, emailTaken.Error())
	}
	var phoneTaken PhoneTakenError
	if errors.As(err, &phoneTaken) {
		return fiber.NewError(http.StatusConflict, phoneTaken.Error())
	}

	switch {
	case errors.Is(err, ErrEmailNotChanged),
		errors.Is(err, ErrPasswordNotChanged),
		errors.Is(err, ErrPhoneNotChanged),
		errors.Is(err, ErrNameNotChanged),
		errors.Is(err, ErrIncorrectPassword):
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	return fiber.NewError(http.StatusInternalServerError, "internal server error")
}
